package themes

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/codr1/storefront/internal/models"
)

// DeriveCustomTheme bakes custom into a copy of current, so that applying the
// derived theme without customizations renders what the shopper saw.
func DeriveCustomTheme(current models.ThemeConfig, custom models.Customizations, now time.Time) models.ThemeConfig {
	theme := current.Clone()
	theme.ID = fmt.Sprintf("custom-%d", now.UnixMilli())
	theme.Name = "Custom " + current.Name
	theme.Category = models.CategoryCustom
	theme.IsActive = false
	theme.CreatedAt = now
	theme.UpdatedAt = now

	if primary := strings.TrimSpace(custom.PrimaryColor.OrElse("")); primary != "" {
		theme.Colors.Light.Primary = primary
		theme.Colors.Dark.Primary = primary
	}
	if family := strings.TrimSpace(custom.FontFamily.OrElse("")); family != "" {
		theme.Fonts.Sans = slices.Insert(theme.Fonts.Sans, 0, family)
	}
	if spacing, ok := custom.Spacing.Get(); ok {
		theme.Spacing.Scale *= spacing
	}
	if style, ok := custom.BorderRadius.Get(); ok && style != models.RadiusDefault {
		m := formatNumber(style.Multiplier())
		theme.BorderRadius = models.ThemeBorderRadius{
			SM: "calc(" + current.BorderRadius.SM + " * " + m + ")",
			MD: "calc(" + current.BorderRadius.MD + " * " + m + ")",
			LG: "calc(" + current.BorderRadius.LG + " * " + m + ")",
			XL: "calc(" + current.BorderRadius.XL + " * " + m + ")",
		}
	}
	theme.Animations.Enabled = current.Animations.Enabled && custom.Animations.OrElse(true)
	return theme
}

// SaveCustomTheme derives a custom theme from the current state, records it
// locally and sends it to the theme API. The derived theme is returned even
// when the remote save fails.
func (s *Store) SaveCustomTheme(ctx context.Context) (models.ThemeConfig, error) {
	state := s.State()
	theme := DeriveCustomTheme(state.CurrentTheme, state.Customizations, s.clock.Now())
	s.AddCustomTheme(theme)
	if err := s.SaveThemeToAPI(ctx, theme); err != nil {
		return theme, err
	}
	return theme, nil
}

// SelectOption is one entry of a customizer select control.
type SelectOption struct {
	Value string
	Label string
}

var (
	FontFamilyOptions = []SelectOption{
		{Value: "Inter", Label: "Inter"},
		{Value: "Poppins", Label: "Poppins"},
		{Value: "Playfair Display", Label: "Playfair Display"},
		{Value: "Roboto", Label: "Roboto"},
		{Value: "Open Sans", Label: "Open Sans"},
	}
	BorderRadiusOptions = []SelectOption{
		{Value: string(models.RadiusSquare), Label: "Square"},
		{Value: string(models.RadiusDefault), Label: "Default"},
		{Value: string(models.RadiusRounded), Label: "Rounded"},
	}
	ModeOptions = []SelectOption{
		{Value: string(models.ModeLight), Label: "Light"},
		{Value: string(models.ModeDark), Label: "Dark"},
		{Value: string(models.ModeSystem), Label: "System"},
	}
)

const (
	SpacingMin  = 0.8
	SpacingMax  = 1.5
	SpacingStep = 0.1
)

// PanelView is what the customizer panel renders.
type PanelView struct {
	Presets        []models.ThemeConfig
	CustomThemes   []models.ThemeConfig
	CurrentThemeID string
	Mode           models.Mode
	PrimaryColor   string
	FontFamily     string
	BorderRadius   models.RadiusStyle
	Spacing        float64
	Animations     bool
	Contrast       []models.ContrastCheck
}

// Panel reads the store into a PanelView. Unset customizations show the
// current theme's values.
func (s *Store) Panel() PanelView {
	state := s.State()
	current := state.CurrentTheme
	custom := state.Customizations

	view := PanelView{
		Presets:        s.Presets(),
		CustomThemes:   state.CustomThemes,
		CurrentThemeID: current.ID,
		Mode:           state.Mode,
		PrimaryColor:   custom.PrimaryColor.OrElse(current.Colors.Light.Primary),
		FontFamily:     custom.FontFamily.OrElse(""),
		BorderRadius:   custom.BorderRadius.OrElse(models.RadiusDefault),
		Spacing:        custom.Spacing.OrElse(1),
		Animations:     custom.Animations.OrElse(true),
	}
	if view.FontFamily == "" && len(current.Fonts.Sans) > 0 {
		view.FontFamily = current.Fonts.Sans[0]
	}
	if checks, err := models.PrimaryContrast(current, view.PrimaryColor); err == nil {
		view.Contrast = checks
	}
	return view
}
