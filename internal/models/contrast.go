package models

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Primary colors back buttons and badges, not body text, so we use the AA large-text threshold.
const wcagAAMinContrastRatio = 3.0

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// ContrastCheck reports how a primary color reads against its foreground in one mode.
type ContrastCheck struct {
	Mode   Mode    `json:"mode"`
	Ratio  float64 `json:"ratio"`
	Passes bool    `json:"passes"`
}

// PrimaryContrast checks primary against the primaryForeground of both palettes.
// Palettes whose foreground is not a hex color are skipped.
func PrimaryContrast(theme ThemeConfig, primary string) ([]ContrastCheck, error) {
	primary = strings.TrimSpace(primary)
	if !IsHexColor(primary) {
		return nil, fmt.Errorf("invalid hex color: %s", primary)
	}

	palettes := []struct {
		mode   Mode
		colors ThemeColors
	}{
		{ModeLight, theme.Colors.Light},
		{ModeDark, theme.Colors.Dark},
	}

	checks := make([]ContrastCheck, 0, len(palettes))
	for _, palette := range palettes {
		foreground := strings.TrimSpace(palette.colors.PrimaryForeground)
		if !IsHexColor(foreground) {
			continue
		}
		ratio, err := ContrastRatio(foreground, primary)
		if err != nil {
			return nil, err
		}
		checks = append(checks, ContrastCheck{
			Mode:   palette.mode,
			Ratio:  math.Round(ratio*100) / 100,
			Passes: ratio >= wcagAAMinContrastRatio,
		})
	}
	return checks, nil
}

func ContrastRatio(textColor, backgroundColor string) (float64, error) {
	textL, err := relativeLuminance(textColor)
	if err != nil {
		return 0, err
	}
	backgroundL, err := relativeLuminance(backgroundColor)
	if err != nil {
		return 0, err
	}
	lightest := math.Max(textL, backgroundL)
	darkest := math.Min(textL, backgroundL)
	return (lightest + 0.05) / (darkest + 0.05), nil
}

func relativeLuminance(hexColor string) (float64, error) {
	if !hexColorRegex.MatchString(hexColor) {
		return 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}
	color, err := colorful.Hex(hexColor)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}
	r, g, b := color.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, nil
}
