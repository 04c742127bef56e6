package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codr1/storefront/internal/db"
	"github.com/codr1/storefront/internal/models"
	"github.com/codr1/storefront/internal/themes"
)

type cssOptions struct {
	mode       string
	primary    string
	font       string
	radius     string
	spacing    float64
	animations bool
}

var cssOpts cssOptions

var cssCmd = &cobra.Command{
	Use:   "css <theme-id>",
	Short: "Print the CSS variables a preset produces",
	Long: `css computes the variables the storefront would apply for a preset,
with optional customizations layered on top. Only flags that are set count
as customizations.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := db.ParsePresetsFile()
		if err != nil {
			return fmt.Errorf("load presets: %w", err)
		}
		custom, err := cssOpts.customizations(cmd)
		if err != nil {
			return err
		}
		mode, err := models.ParseMode(cssOpts.mode)
		if err != nil {
			return err
		}
		result, err := computeCSS(presets, args[0], mode, custom)
		if err != nil {
			return err
		}
		return writeCSS(cmd.OutOrStdout(), result)
	},
}

func init() {
	flags := cssCmd.Flags()
	flags.StringVar(&cssOpts.mode, "mode", string(models.ModeLight), "light or dark (system renders as light)")
	flags.StringVar(&cssOpts.primary, "primary", "", "primary color override")
	flags.StringVar(&cssOpts.font, "font", "", "font family prepended to the sans stack")
	flags.StringVar(&cssOpts.radius, "radius", "", "border radius style: default, square, rounded")
	flags.Float64Var(&cssOpts.spacing, "spacing", 1, "spacing multiplier")
	flags.BoolVar(&cssOpts.animations, "animations", true, "enable animations")
	rootCmd.AddCommand(cssCmd)
}

func (o cssOptions) customizations(cmd *cobra.Command) (models.Customizations, error) {
	var patch models.CustomizationsPatch
	flags := cmd.Flags()
	if flags.Changed("primary") {
		patch.PrimaryColor = models.Update(o.primary)
	}
	if flags.Changed("font") {
		patch.FontFamily = models.Update(o.font)
	}
	if flags.Changed("radius") {
		patch.BorderRadius = models.Update(models.RadiusStyle(o.radius))
	}
	if flags.Changed("spacing") {
		patch.Spacing = models.Update(o.spacing)
	}
	if flags.Changed("animations") {
		patch.Animations = models.Update(o.animations)
	}
	if err := patch.Validate(); err != nil {
		return models.Customizations{}, err
	}
	return models.Customizations{}.Merge(patch), nil
}

func computeCSS(presets []models.ThemeConfig, id string, mode models.Mode, custom models.Customizations) (themes.Result, error) {
	if len(presets) == 0 {
		return themes.Result{}, themes.ErrNoPresets
	}
	for _, preset := range presets {
		if preset.ID == id {
			return themes.NewApplier(presets[0]).Compute(preset, mode, custom, false), nil
		}
	}
	return themes.Result{}, fmt.Errorf("preset %q: %w", id, themes.ErrThemeNotFound)
}

func writeCSS(w io.Writer, result themes.Result) error {
	var b strings.Builder
	if result.Dark {
		b.WriteString("/* html." + themes.DarkClass + " */\n")
	}
	b.WriteString(":root {\n")
	for _, v := range result.Variables {
		fmt.Fprintf(&b, "  %s: %s;\n", v.Name, v.Value)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
