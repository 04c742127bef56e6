package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "empty", value: "", want: false},
		{name: "whitespace", value: "   ", want: false},
		{name: "missing_hash", value: "AABBCC", want: false},
		{name: "short_hex", value: "#ABC", want: false},
		{name: "long_hex", value: "#AABBCCDD", want: false},
		{name: "invalid_char", value: "#AABBCG", want: false},
		{name: "lowercase_hex", value: "#aabbcc", want: true},
		{name: "uppercase_hex", value: "#AABBCC", want: true},
		{name: "trimmed_hex", value: "  #AABBCC  ", want: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsHexColor(test.value); got != test.want {
				t.Fatalf("IsHexColor(%q) = %t, want %t", test.value, got, test.want)
			}
		})
	}
}

func TestThemeColorsRoles(t *testing.T) {
	roles := testPalette("#111111").Roles()
	if len(roles) != 24 {
		t.Fatalf("role count = %d, want 24", len(roles))
	}
	if roles[0].Key != "background" || roles[3].Key != "cardForeground" || roles[23].Key != "chart5" {
		t.Fatalf("unexpected role order: %+v", roles)
	}

	raw, err := json.Marshal(testPalette("#111111"))
	if err != nil {
		t.Fatalf("marshal palette: %v", err)
	}
	var keyed map[string]string
	if err := json.Unmarshal(raw, &keyed); err != nil {
		t.Fatalf("unmarshal palette: %v", err)
	}
	for _, role := range roles {
		if _, ok := keyed[role.Key]; !ok {
			t.Fatalf("role %q does not match a JSON key", role.Key)
		}
	}
}

func TestThemeConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ThemeConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*ThemeConfig) {}},
		{name: "missing_id", mutate: func(c *ThemeConfig) { c.ID = "" }, wantErr: "id is required"},
		{name: "bad_id", mutate: func(c *ThemeConfig) { c.ID = "has space" }, wantErr: "id may only contain"},
		{name: "blank_name", mutate: func(c *ThemeConfig) { c.Name = "  " }, wantErr: "name is required"},
		{name: "bad_category", mutate: func(c *ThemeConfig) { c.Category = "retro" }, wantErr: "category"},
		{name: "missing_dark_role", mutate: func(c *ThemeConfig) { c.Colors.Dark.CardForeground = "" }, wantErr: "colors.dark.cardForeground is required"},
		{name: "missing_sans", mutate: func(c *ThemeConfig) { c.Fonts.Sans = nil }, wantErr: "fonts.sans"},
		{name: "zero_scale", mutate: func(c *ThemeConfig) { c.Spacing.Scale = 0 }, wantErr: "spacing.scale"},
		{name: "missing_radius", mutate: func(c *ThemeConfig) { c.BorderRadius.XL = "" }, wantErr: "borderRadius.xl is required"},
		{name: "bad_hover", mutate: func(c *ThemeConfig) { c.Ecommerce.ProductCard.HoverEffect = "spin" }, wantErr: "hoverEffect"},
		{name: "missing_currency", mutate: func(c *ThemeConfig) { c.Ecommerce.Pricing.Currency = "" }, wantErr: "currency"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			theme := testTheme("validate")
			test.mutate(&theme)
			err := theme.Validate()
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

func TestThemeConfigCloneDoesNotAlias(t *testing.T) {
	theme := testTheme("clone")
	theme.Components.Button.Styles = map[string]string{"radius": "md"}

	clone := theme.Clone()
	clone.Fonts.Sans[0] = "Changed"
	clone.Components.Button.Styles["radius"] = "xl"

	if theme.Fonts.Sans[0] == "Changed" {
		t.Fatalf("clone shares sans font slice")
	}
	if theme.Components.Button.Styles["radius"] != "md" {
		t.Fatalf("clone shares component styles map")
	}
}

func TestPrimaryContrast(t *testing.T) {
	theme := testTheme("contrast")
	theme.Colors.Light.PrimaryForeground = "#FFFFFF"
	theme.Colors.Dark.PrimaryForeground = "#000000"

	checks, err := PrimaryContrast(theme, "#1f2937")
	if err != nil {
		t.Fatalf("PrimaryContrast() error = %v", err)
	}
	if len(checks) != 2 {
		t.Fatalf("checks = %d, want 2", len(checks))
	}
	if !checks[0].Passes || checks[0].Mode != ModeLight {
		t.Fatalf("light check should pass: %+v", checks[0])
	}
	if checks[1].Passes {
		t.Fatalf("dark check should fail for dark primary on black text: %+v", checks[1])
	}

	if _, err := PrimaryContrast(theme, "hsl(0 0% 0%)"); err == nil {
		t.Fatalf("expected error for non-hex primary")
	}
}

func testPalette(value string) ThemeColors {
	var colors ThemeColors
	fields := []*string{
		&colors.Background, &colors.Foreground, &colors.Card, &colors.CardForeground,
		&colors.Popover, &colors.PopoverForeground, &colors.Primary, &colors.PrimaryForeground,
		&colors.Secondary, &colors.SecondaryForeground, &colors.Muted, &colors.MutedForeground,
		&colors.Accent, &colors.AccentForeground, &colors.Destructive, &colors.DestructiveForeground,
		&colors.Border, &colors.Input, &colors.Ring, &colors.Chart1, &colors.Chart2,
		&colors.Chart3, &colors.Chart4, &colors.Chart5,
	}
	for _, field := range fields {
		*field = value
	}
	return colors
}

func testTheme(id string) ThemeConfig {
	return ThemeConfig{
		ID:       id,
		Name:     "Test " + id,
		Category: CategoryDefault,
		Colors: ThemePalettes{
			Light: testPalette("#ffffff"),
			Dark:  testPalette("#000000"),
		},
		Fonts: ThemeFonts{
			Sans: []string{"Inter", "sans-serif"},
			Mono: []string{"monospace"},
		},
		Spacing: ThemeSpacing{Scale: 1, ContainerPadding: "1rem", SectionSpacing: "4rem"},
		BorderRadius: ThemeBorderRadius{
			SM: "0.25rem", MD: "0.5rem", LG: "0.75rem", XL: "1rem",
		},
		Animations: ThemeAnimations{Duration: "200ms", Easing: "ease-out", Enabled: true},
		Ecommerce: EcommerceOptions{
			ProductCard: ProductCardOptions{HoverEffect: "lift", BadgeStyle: "modern", ImageAspectRatio: "4/5"},
			Pricing:     PricingOptions{Currency: "USD", ShowOriginalPrice: true, DiscountStyle: "percentage"},
			Cart:        CartOptions{Style: "sidebar", Animation: "slide"},
		},
	}
}
