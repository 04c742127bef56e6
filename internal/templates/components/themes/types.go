package themes

import (
	"strconv"

	"github.com/codr1/storefront/internal/models"
	"github.com/codr1/storefront/internal/themes"
)

type ThemeOption struct {
	ID          string
	Name        string
	Description string
	Category    models.Category
	Swatch      string
	IsActive    bool
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type ContrastResult struct {
	Mode   string
	Ratio  string
	Passes bool
}

// PanelData is the customizer panel's view model.
type PanelData struct {
	Presets      []ThemeOption
	CustomThemes []ThemeOption
	Modes        []Option
	Fonts        []Option
	Radii        []Option
	PrimaryColor string
	Spacing      string
	SpacingMin   string
	SpacingMax   string
	SpacingStep  string
	Animations   bool
	Contrast     []ContrastResult
}

func NewThemeOption(theme models.ThemeConfig, currentID string) ThemeOption {
	return ThemeOption{
		ID:          theme.ID,
		Name:        theme.Name,
		Description: theme.Description,
		Category:    theme.Category,
		Swatch:      theme.Colors.Light.Primary,
		IsActive:    theme.ID == currentID,
	}
}

func NewThemeOptions(rows []models.ThemeConfig, currentID string) []ThemeOption {
	options := make([]ThemeOption, len(rows))
	for i, row := range rows {
		options[i] = NewThemeOption(row, currentID)
	}
	return options
}

func newOptions(choices []themes.SelectOption, selected string) []Option {
	options := make([]Option, len(choices))
	found := false
	for i, choice := range choices {
		options[i] = Option{Value: choice.Value, Label: choice.Label, Selected: choice.Value == selected}
		found = found || options[i].Selected
	}
	if !found && selected != "" {
		options = append(options, Option{Value: selected, Label: selected, Selected: true})
	}
	return options
}

// NewPanelData converts the store's panel view into template data.
func NewPanelData(view themes.PanelView) PanelData {
	data := PanelData{
		Presets:      NewThemeOptions(view.Presets, view.CurrentThemeID),
		CustomThemes: NewThemeOptions(view.CustomThemes, view.CurrentThemeID),
		Modes:        newOptions(themes.ModeOptions, string(view.Mode)),
		Fonts:        newOptions(themes.FontFamilyOptions, view.FontFamily),
		Radii:        newOptions(themes.BorderRadiusOptions, string(view.BorderRadius)),
		PrimaryColor: view.PrimaryColor,
		Spacing:      formatFloat(view.Spacing),
		SpacingMin:   formatFloat(themes.SpacingMin),
		SpacingMax:   formatFloat(themes.SpacingMax),
		SpacingStep:  formatFloat(themes.SpacingStep),
		Animations:   view.Animations,
	}
	for _, check := range view.Contrast {
		data.Contrast = append(data.Contrast, ContrastResult{
			Mode:   string(check.Mode),
			Ratio:  strconv.FormatFloat(check.Ratio, 'f', 2, 64),
			Passes: check.Passes,
		})
	}
	return data
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
