package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codr1/storefront/internal/db"
	"github.com/codr1/storefront/internal/models"
)

const minPrimaryContrast = 3.0

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in theme presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		presets, err := db.ParsePresetsFile()
		if err != nil {
			return fmt.Errorf("load presets: %w", err)
		}
		return writePresets(cmd.OutOrStdout(), presets)
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func writePresets(w io.Writer, presets []models.ThemeConfig) error {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Theme presets"))
	b.WriteString("\n\n")
	for i, preset := range presets {
		b.WriteString(idStyle.Render(preset.ID))
		b.WriteString(nameStyle.Render(preset.Name))
		b.WriteString(swatch(preset.Colors.Light.Primary))
		b.WriteString(" ")
		b.WriteString(swatch(preset.Colors.Dark.Primary))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(string(preset.Category)))
		if i == 0 {
			b.WriteString(dimStyle.Render(" (default)"))
		}
		b.WriteString("\n")
		for _, check := range contrastChecks(preset) {
			b.WriteString("    ")
			b.WriteString(check)
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// contrastChecks compares each palette's primary with its own foreground.
func contrastChecks(theme models.ThemeConfig) []string {
	palettes := []struct {
		mode   models.Mode
		colors models.ThemeColors
	}{
		{models.ModeLight, theme.Colors.Light},
		{models.ModeDark, theme.Colors.Dark},
	}

	lines := make([]string, 0, len(palettes))
	for _, palette := range palettes {
		ratio, err := models.ContrastRatio(palette.colors.PrimaryForeground, palette.colors.Primary)
		if err != nil {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("%s contrast unavailable: %v", palette.mode, err)))
			continue
		}
		line := fmt.Sprintf("%s primary contrast %.2f:1", palette.mode, ratio)
		if ratio >= minPrimaryContrast {
			lines = append(lines, okStyle.Render(line))
		} else {
			lines = append(lines, warnStyle.Render(line+" (below 3:1)"))
		}
	}
	return lines
}
