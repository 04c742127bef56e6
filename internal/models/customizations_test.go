package models

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestCustomizationsJSONOmitsUnsetFields(t *testing.T) {
	custom := Customizations{
		PrimaryColor: Some("#ff0000"),
		Spacing:      Some(1.5),
		Animations:   Some(false),
	}

	raw, err := json.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal customizations: %v", err)
	}
	got := string(raw)
	if got != `{"primaryColor":"#ff0000","spacing":1.5,"animations":false}` {
		t.Fatalf("unexpected JSON: %s", got)
	}

	var decoded Customizations
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal customizations: %v", err)
	}
	if decoded != custom {
		t.Fatalf("decoded = %+v, want %+v", decoded, custom)
	}

	empty, err := json.Marshal(Customizations{})
	if err != nil {
		t.Fatalf("marshal empty customizations: %v", err)
	}
	if string(empty) != "{}" {
		t.Fatalf("empty customizations JSON = %s", empty)
	}
}

func TestCustomizationsPatchJSON(t *testing.T) {
	var patch CustomizationsPatch
	if err := json.Unmarshal([]byte(`{"primaryColor":null,"spacing":2,"borderRadius":"rounded"}`), &patch); err != nil {
		t.Fatalf("unmarshal patch: %v", err)
	}

	current := Customizations{
		PrimaryColor: Some("#00ff00"),
		FontFamily:   Some("Inter"),
	}
	merged := current.Merge(patch)

	if merged.PrimaryColor.IsSet() {
		t.Fatalf("null primaryColor should clear the field")
	}
	if family, ok := merged.FontFamily.Get(); !ok || family != "Inter" {
		t.Fatalf("absent fontFamily should be kept, got %q (%t)", family, ok)
	}
	if spacing, _ := merged.Spacing.Get(); spacing != 2 {
		t.Fatalf("spacing = %v, want 2", spacing)
	}
	if radius, _ := merged.BorderRadius.Get(); radius != RadiusRounded {
		t.Fatalf("borderRadius = %q, want rounded", radius)
	}
	if current.PrimaryColor.OrElse("") != "#00ff00" {
		t.Fatalf("Merge must not modify the receiver")
	}
}

func TestCustomizationsPatchValidate(t *testing.T) {
	tests := []struct {
		name    string
		patch   CustomizationsPatch
		wantErr string
	}{
		{name: "empty", patch: CustomizationsPatch{}},
		{name: "valid", patch: CustomizationsPatch{Spacing: Update(1.25), BorderRadius: Update(RadiusSquare)}},
		{name: "clear_is_valid", patch: CustomizationsPatch{PrimaryColor: Clear[string]()}},
		{name: "blank_primary", patch: CustomizationsPatch{PrimaryColor: Update(" ")}, wantErr: "primaryColor"},
		{name: "blank_font", patch: CustomizationsPatch{FontFamily: Update("")}, wantErr: "fontFamily"},
		{name: "bad_radius", patch: CustomizationsPatch{BorderRadius: Update(RadiusStyle("pill"))}, wantErr: "borderRadius"},
		{name: "zero_spacing", patch: CustomizationsPatch{Spacing: Update(0.0)}, wantErr: "spacing"},
		{name: "nan_spacing", patch: CustomizationsPatch{Spacing: Update(math.NaN())}, wantErr: "spacing"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.patch.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("Validate() error = %v, want %q", err, test.wantErr)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, raw := range []string{"light", " Dark ", "SYSTEM"} {
		if _, err := ParseMode(raw); err != nil {
			t.Fatalf("ParseMode(%q) error = %v", raw, err)
		}
	}
	if _, err := ParseMode("sepia"); err == nil {
		t.Fatalf("expected error for unsupported mode")
	}
}

func TestRadiusStyleMultiplier(t *testing.T) {
	if RadiusRounded.Multiplier() != 1.5 || RadiusSquare.Multiplier() != 0.5 || RadiusDefault.Multiplier() != 1 {
		t.Fatalf("unexpected radius multipliers")
	}
	if RadiusStyle("").Multiplier() != 1 {
		t.Fatalf("unset radius style should not scale")
	}
}
