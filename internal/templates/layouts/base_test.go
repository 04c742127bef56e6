package layouts

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/codr1/storefront/internal/themes"
)

func TestBaseInlinesThemeVariables(t *testing.T) {
	style := NewThemeStyle(themes.Result{
		Dark:      true,
		Variables: []themes.Variable{{Name: "--primary", Value: "#123456"}},
	})
	content := templ.Raw(`<p>hello</p>`)

	var buf bytes.Buffer
	if err := Base("Shop", content, style).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{`class="dark"`, `:root{--primary:#123456;}`, `<p>hello</p>`, `<title>Shop</title>`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %s", want, html)
		}
	}
}

func TestBaseLightHasNoClass(t *testing.T) {
	var buf bytes.Buffer
	if err := Base("Shop", templ.Raw(""), ThemeStyle{CSS: ":root{}"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), `class="dark"`) {
		t.Fatalf("expected no dark class in light mode")
	}
}

func TestThemeUpdateIsOutOfBand(t *testing.T) {
	var buf bytes.Buffer
	if err := ThemeUpdate(ThemeStyle{CSS: ":root{--a:1;}", Dark: false}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, `hx-swap-oob="true"`) || !strings.Contains(html, `toggle("dark",`) || !strings.Contains(html, "false") {
		t.Fatalf("unexpected update fragment %s", html)
	}
}
