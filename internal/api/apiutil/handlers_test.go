package apiutil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
)

func TestDecodeJSONRejectsTrailingAndUnknown(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"x"}`},
		{name: "unknown field", body: `{"name":"x","other":1}`, wantErr: true},
		{name: "trailing document", body: `{"name":"x"}{"name":"y"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst struct {
				Name string `json:"name"`
			}
			err := DecodeJSON(req, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestIsJSONRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if !IsJSONRequest(req) {
		t.Fatalf("expected JSON request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if IsJSONRequest(req) {
		t.Fatalf("form request detected as JSON")
	}
}

func TestRenderHTMLComponent(t *testing.T) {
	ok := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hi</p>")
		return err
	})
	recorder := httptest.NewRecorder()
	if !RenderHTMLComponent(context.Background(), recorder, ok, map[string]string{"HX-Trigger": "themeChanged"}, "log", "err") {
		t.Fatalf("expected render to succeed")
	}
	if recorder.Body.String() != "<p>hi</p>" || recorder.Header().Get("HX-Trigger") != "themeChanged" {
		t.Fatalf("unexpected response: %q %v", recorder.Body.String(), recorder.Header())
	}

	failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("boom")
	})
	recorder = httptest.NewRecorder()
	if RenderHTMLComponent(context.Background(), recorder, failing, nil, "log", "Failed to render") {
		t.Fatalf("expected render to fail")
	}
	if recorder.Code != http.StatusInternalServerError || strings.Contains(recorder.Body.String(), "partial") {
		t.Fatalf("unexpected failure response: %d %q", recorder.Code, recorder.Body.String())
	}
}

func TestWriteHTMLFeedbackEscapes(t *testing.T) {
	recorder := httptest.NewRecorder()
	WriteHTMLFeedback(recorder, http.StatusBadRequest, "<script>")
	if strings.Contains(recorder.Body.String(), "<script>") {
		t.Fatalf("message not escaped: %s", recorder.Body.String())
	}
}

func TestWriteRetryAfterRoundsUp(t *testing.T) {
	recorder := httptest.NewRecorder()
	WriteRetryAfter(recorder, 1500*time.Millisecond)
	if got := recorder.Header().Get("Retry-After"); got != "2" {
		t.Fatalf("Retry-After = %q", got)
	}
}

func TestParsePositiveFloatField(t *testing.T) {
	if v, err := ParsePositiveFloatField(" 1.2 ", "spacing"); err != nil || v != 1.2 {
		t.Fatalf("unexpected result %v %v", v, err)
	}
	for _, raw := range []string{"", "0", "-1", "abc", "NaN"} {
		_, err := ParsePositiveFloatField(raw, "spacing")
		var fieldErr FieldError
		if !errors.As(err, &fieldErr) || fieldErr.Field != "spacing" {
			t.Fatalf("expected spacing field error for %q, got %v", raw, err)
		}
	}
}
