package themes

import (
	"math"
	"strconv"
	"strings"

	"github.com/codr1/storefront/internal/models"
)

type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Result is the computed root state for one (theme, mode, customizations) triple.
type Result struct {
	Dark      bool
	Variables []Variable
	// Removed lists variables a previous theme may have set that this one must not leave behind.
	Removed []string
}

// Lookup returns the value computed for name.
func (r Result) Lookup(name string) (string, bool) {
	for _, v := range r.Variables {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// ApplyTo writes the result onto target. Applying the same result twice is a no-op.
func (r Result) ApplyTo(target RenderTarget) {
	for _, v := range r.Variables {
		target.SetProperty(v.Name, v.Value)
	}
	for _, name := range r.Removed {
		target.RemoveProperty(name)
	}
	target.SetClass(DarkClass, r.Dark)
}

// Applier computes root variables. Values missing from a theme fall back to defaults,
// so a partial theme never leaves a variable unset.
type Applier struct {
	defaults models.ThemeConfig
}

func NewApplier(defaults models.ThemeConfig) *Applier {
	return &Applier{defaults: defaults}
}

// IsDark resolves the display mode against the current system preference.
func IsDark(mode models.Mode, systemDark bool) bool {
	return mode == models.ModeDark || (mode == models.ModeSystem && systemDark)
}

func (a *Applier) Compute(theme models.ThemeConfig, mode models.Mode, custom models.Customizations, systemDark bool) Result {
	dark := IsDark(mode, systemDark)
	vars := &variableSet{}

	fallback := a.defaults.Palette(dark).Roles()
	for i, role := range theme.Palette(dark).Roles() {
		value := role.Value
		if strings.TrimSpace(value) == "" {
			value = fallback[i].Value
		}
		vars.set(cssVarName(role.Key), value)
	}

	sans := orDefaultList(theme.Fonts.Sans, a.defaults.Fonts.Sans)
	vars.set("--font-sans", strings.Join(sans, ", "))
	vars.set("--font-mono", strings.Join(orDefaultList(theme.Fonts.Mono, a.defaults.Fonts.Mono), ", "))
	var removed []string
	if len(theme.Fonts.Heading) > 0 {
		vars.set("--font-heading", strings.Join(theme.Fonts.Heading, ", "))
	} else {
		removed = append(removed, "--font-heading")
	}

	scale := theme.Spacing.Scale
	if math.IsNaN(scale) || scale <= 0 {
		scale = a.defaults.Spacing.Scale
	}
	vars.set("--spacing-scale", formatNumber(scale*custom.Spacing.OrElse(1)))
	vars.set("--container-padding", orDefault(theme.Spacing.ContainerPadding, a.defaults.Spacing.ContainerPadding))
	vars.set("--section-spacing", orDefault(theme.Spacing.SectionSpacing, a.defaults.Spacing.SectionSpacing))

	multiplier := formatNumber(custom.BorderRadius.OrElse(models.RadiusDefault).Multiplier())
	defaultRadii := a.defaults.BorderRadius.Tokens()
	for i, token := range theme.BorderRadius.Tokens() {
		value := orDefault(token.Value, defaultRadii[i].Value)
		vars.set("--radius-"+token.Key, "calc("+value+" * "+multiplier+")")
	}

	duration := "0ms"
	if custom.Animations.OrElse(true) && theme.Animations.Enabled {
		duration = orDefault(theme.Animations.Duration, a.defaults.Animations.Duration)
	}
	vars.set("--animation-duration", duration)
	vars.set("--animation-easing", orDefault(theme.Animations.Easing, a.defaults.Animations.Easing))

	if primary := strings.TrimSpace(custom.PrimaryColor.OrElse("")); primary != "" {
		vars.set("--primary", primary)
	}
	if family := strings.TrimSpace(custom.FontFamily.OrElse("")); family != "" {
		vars.set("--font-sans", family+", "+strings.Join(sans, ", "))
	}

	return Result{Dark: dark, Variables: vars.list, Removed: removed}
}

// Apply computes and writes in one step.
func (a *Applier) Apply(target RenderTarget, theme models.ThemeConfig, mode models.Mode, custom models.Customizations, systemDark bool) Result {
	result := a.Compute(theme, mode, custom, systemDark)
	result.ApplyTo(target)
	return result
}

// variableSet keeps first-write order; a later write replaces the value in place.
type variableSet struct {
	list []Variable
}

func (s *variableSet) set(name, value string) {
	for i := range s.list {
		if s.list[i].Name == name {
			s.list[i].Value = value
			return
		}
	}
	s.list = append(s.list, Variable{Name: name, Value: value})
}

// cssVarName turns a palette key into a custom property name: cardForeground -> --card-foreground.
func cssVarName(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	b.WriteString("--")
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func orDefaultList(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}
