package layouts

import (
	"github.com/codr1/storefront/internal/themes"
)

// ThemeStyle is the computed theme as the page head needs it.
type ThemeStyle struct {
	CSS  string
	Dark bool
}

func NewThemeStyle(result themes.Result) ThemeStyle {
	return ThemeStyle{
		CSS:  themes.RenderStylesheet(result.Variables),
		Dark: result.Dark,
	}
}

func htmlClass(style ThemeStyle) string {
	if style.Dark {
		return themes.DarkClass
	}
	return ""
}
