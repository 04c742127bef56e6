package themes

import (
	"strings"
	"testing"
)

func TestStyleRootKeepsFirstWriteOrder(t *testing.T) {
	root := NewStyleRoot()
	root.SetProperty("--b", "1")
	root.SetProperty("--a", "2")
	root.SetProperty("--b", "3")

	props := root.Properties()
	if len(props) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(props))
	}
	if props[0].Name != "--b" || props[0].Value != "3" || props[1].Name != "--a" {
		t.Fatalf("unexpected properties: %+v", props)
	}
	if got := root.Stylesheet(); got != ":root{--b:3;--a:2;}" {
		t.Fatalf("unexpected stylesheet %q", got)
	}
}

func TestStyleRootRemoveProperty(t *testing.T) {
	root := NewStyleRoot()
	root.SetProperty("--font-heading", "Georgia")
	root.SetProperty("--font-sans", "Inter")
	root.RemoveProperty("--font-heading")
	root.RemoveProperty("--missing")

	if _, ok := root.Property("--font-heading"); ok {
		t.Fatalf("expected --font-heading removed")
	}
	if got := root.Stylesheet(); got != ":root{--font-sans:Inter;}" {
		t.Fatalf("unexpected stylesheet %q", got)
	}
}

func TestStyleRootClasses(t *testing.T) {
	root := NewStyleRoot()
	root.SetClass("dark", true)
	root.SetClass("contrast", true)
	root.SetClass("contrast", false)

	if !root.HasClass("dark") || root.HasClass("contrast") {
		t.Fatalf("unexpected classes %v", root.Classes())
	}
}

func TestRenderStylesheetStripsBreakouts(t *testing.T) {
	got := RenderStylesheet([]Variable{{Name: "--primary", Value: "red;}</style><script>{x}"}})
	if strings.ContainsAny(strings.TrimSuffix(strings.TrimPrefix(got, ":root{"), ";}"), ";{}<>") {
		t.Fatalf("expected value sanitized, got %q", got)
	}
}

func TestStyleRootETagTracksOutput(t *testing.T) {
	root := NewStyleRoot()
	root.SetProperty("--primary", "#000000")
	first := root.ETag()
	if first != root.ETag() {
		t.Fatalf("expected stable ETag")
	}

	root.SetClass(DarkClass, true)
	second := root.ETag()
	if second == first {
		t.Fatalf("expected ETag to change with classes")
	}

	root.SetProperty("--primary", "#ffffff")
	if root.ETag() == second {
		t.Fatalf("expected ETag to change with properties")
	}
}
