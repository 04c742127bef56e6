// internal/models/themes.go
package models

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"time"
)

const maxThemeNameLength = 100
const maxThemeIDLength = 100

var themeIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

type Category string

const (
	CategoryDefault   Category = "default"
	CategoryEcommerce Category = "ecommerce"
	CategorySeasonal  Category = "seasonal"
	CategoryBrand     Category = "brand"
	CategoryCustom    Category = "custom"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryDefault, CategoryEcommerce, CategorySeasonal, CategoryBrand, CategoryCustom:
		return true
	}
	return false
}

// ThemeColors holds one palette. Field order is the order variables are written.
type ThemeColors struct {
	Background            string `json:"background" yaml:"background"`
	Foreground            string `json:"foreground" yaml:"foreground"`
	Card                  string `json:"card" yaml:"card"`
	CardForeground        string `json:"cardForeground" yaml:"cardForeground"`
	Popover               string `json:"popover" yaml:"popover"`
	PopoverForeground     string `json:"popoverForeground" yaml:"popoverForeground"`
	Primary               string `json:"primary" yaml:"primary"`
	PrimaryForeground     string `json:"primaryForeground" yaml:"primaryForeground"`
	Secondary             string `json:"secondary" yaml:"secondary"`
	SecondaryForeground   string `json:"secondaryForeground" yaml:"secondaryForeground"`
	Muted                 string `json:"muted" yaml:"muted"`
	MutedForeground       string `json:"mutedForeground" yaml:"mutedForeground"`
	Accent                string `json:"accent" yaml:"accent"`
	AccentForeground      string `json:"accentForeground" yaml:"accentForeground"`
	Destructive           string `json:"destructive" yaml:"destructive"`
	DestructiveForeground string `json:"destructiveForeground" yaml:"destructiveForeground"`
	Border                string `json:"border" yaml:"border"`
	Input                 string `json:"input" yaml:"input"`
	Ring                  string `json:"ring" yaml:"ring"`
	Chart1                string `json:"chart1" yaml:"chart1"`
	Chart2                string `json:"chart2" yaml:"chart2"`
	Chart3                string `json:"chart3" yaml:"chart3"`
	Chart4                string `json:"chart4" yaml:"chart4"`
	Chart5                string `json:"chart5" yaml:"chart5"`
}

// ColorRole pairs a palette key (the JSON field name) with its value.
type ColorRole struct {
	Key   string
	Value string
}

func (c ThemeColors) Roles() []ColorRole {
	return []ColorRole{
		{"background", c.Background},
		{"foreground", c.Foreground},
		{"card", c.Card},
		{"cardForeground", c.CardForeground},
		{"popover", c.Popover},
		{"popoverForeground", c.PopoverForeground},
		{"primary", c.Primary},
		{"primaryForeground", c.PrimaryForeground},
		{"secondary", c.Secondary},
		{"secondaryForeground", c.SecondaryForeground},
		{"muted", c.Muted},
		{"mutedForeground", c.MutedForeground},
		{"accent", c.Accent},
		{"accentForeground", c.AccentForeground},
		{"destructive", c.Destructive},
		{"destructiveForeground", c.DestructiveForeground},
		{"border", c.Border},
		{"input", c.Input},
		{"ring", c.Ring},
		{"chart1", c.Chart1},
		{"chart2", c.Chart2},
		{"chart3", c.Chart3},
		{"chart4", c.Chart4},
		{"chart5", c.Chart5},
	}
}

type ThemePalettes struct {
	Light ThemeColors `json:"light" yaml:"light"`
	Dark  ThemeColors `json:"dark" yaml:"dark"`
}

type ThemeFonts struct {
	Sans    []string `json:"sans" yaml:"sans"`
	Mono    []string `json:"mono" yaml:"mono"`
	Heading []string `json:"heading,omitempty" yaml:"heading,omitempty"`
}

type ThemeSpacing struct {
	Scale            float64 `json:"scale" yaml:"scale"`
	ContainerPadding string  `json:"containerPadding" yaml:"containerPadding"`
	SectionSpacing   string  `json:"sectionSpacing" yaml:"sectionSpacing"`
}

type ThemeBorderRadius struct {
	SM string `json:"sm" yaml:"sm"`
	MD string `json:"md" yaml:"md"`
	LG string `json:"lg" yaml:"lg"`
	XL string `json:"xl" yaml:"xl"`
}

// RadiusToken is one named border radius, e.g. {"md", "0.5rem"}.
type RadiusToken struct {
	Key   string
	Value string
}

func (r ThemeBorderRadius) Tokens() []RadiusToken {
	return []RadiusToken{
		{"sm", r.SM},
		{"md", r.MD},
		{"lg", r.LG},
		{"xl", r.XL},
	}
}

type ThemeAnimations struct {
	Duration string `json:"duration" yaml:"duration"`
	Easing   string `json:"easing" yaml:"easing"`
	Enabled  bool   `json:"enabled" yaml:"enabled"`
}

type ComponentTheme struct {
	Variants     map[string]any    `json:"variants" yaml:"variants"`
	DefaultProps map[string]any    `json:"defaultProps" yaml:"defaultProps"`
	Styles       map[string]string `json:"styles" yaml:"styles"`
}

type ThemeComponents struct {
	Button ComponentTheme `json:"button" yaml:"button"`
	Card   ComponentTheme `json:"card" yaml:"card"`
	Input  ComponentTheme `json:"input" yaml:"input"`
	Header ComponentTheme `json:"header" yaml:"header"`
	Footer ComponentTheme `json:"footer" yaml:"footer"`
}

type ProductCardOptions struct {
	HoverEffect      string `json:"hoverEffect" yaml:"hoverEffect"`
	BadgeStyle       string `json:"badgeStyle" yaml:"badgeStyle"`
	ImageAspectRatio string `json:"imageAspectRatio" yaml:"imageAspectRatio"`
}

type PricingOptions struct {
	Currency          string `json:"currency" yaml:"currency"`
	ShowOriginalPrice bool   `json:"showOriginalPrice" yaml:"showOriginalPrice"`
	DiscountStyle     string `json:"discountStyle" yaml:"discountStyle"`
}

type CartOptions struct {
	Style     string `json:"style" yaml:"style"`
	Animation string `json:"animation" yaml:"animation"`
}

type EcommerceOptions struct {
	ProductCard ProductCardOptions `json:"productCard" yaml:"productCard"`
	Pricing     PricingOptions     `json:"pricing" yaml:"pricing"`
	Cart        CartOptions        `json:"cart" yaml:"cart"`
}

var (
	hoverEffects   = []string{"scale", "lift", "glow", "none"}
	badgeStyles    = []string{"modern", "classic", "minimal"}
	discountStyles = []string{"percentage", "amount", "both"}
	cartStyles     = []string{"sidebar", "dropdown", "page"}
	cartAnimations = []string{"slide", "fade", "bounce"}
)

// ThemeConfig is a complete visual theme for both light and dark modes.
type ThemeConfig struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	Description  string            `json:"description" yaml:"description"`
	Category     Category          `json:"category" yaml:"category"`
	Colors       ThemePalettes     `json:"colors" yaml:"colors"`
	Fonts        ThemeFonts        `json:"fonts" yaml:"fonts"`
	Spacing      ThemeSpacing      `json:"spacing" yaml:"spacing"`
	BorderRadius ThemeBorderRadius `json:"borderRadius" yaml:"borderRadius"`
	Animations   ThemeAnimations   `json:"animations" yaml:"animations"`
	Components   ThemeComponents   `json:"components" yaml:"components"`
	Ecommerce    EcommerceOptions  `json:"ecommerce" yaml:"ecommerce"`
	IsActive     bool              `json:"isActive" yaml:"isActive"`
	CreatedAt    time.Time         `json:"createdAt" yaml:"createdAt,omitempty"`
	UpdatedAt    time.Time         `json:"updatedAt" yaml:"updatedAt,omitempty"`
}

// Palette returns the color set for the resolved mode.
func (t ThemeConfig) Palette(dark bool) ThemeColors {
	if dark {
		return t.Colors.Dark
	}
	return t.Colors.Light
}

// Clone returns a copy that shares no slices or maps with t.
func (t ThemeConfig) Clone() ThemeConfig {
	clone := t
	clone.Fonts = ThemeFonts{
		Sans:    slices.Clone(t.Fonts.Sans),
		Mono:    slices.Clone(t.Fonts.Mono),
		Heading: slices.Clone(t.Fonts.Heading),
	}
	clone.Components = ThemeComponents{
		Button: t.Components.Button.clone(),
		Card:   t.Components.Card.clone(),
		Input:  t.Components.Input.clone(),
		Header: t.Components.Header.clone(),
		Footer: t.Components.Footer.clone(),
	}
	return clone
}

func (c ComponentTheme) clone() ComponentTheme {
	return ComponentTheme{
		Variants:     maps.Clone(c.Variants),
		DefaultProps: maps.Clone(c.DefaultProps),
		Styles:       maps.Clone(c.Styles),
	}
}

// Validate checks that the theme is complete enough to be applied without fallbacks.
func (t ThemeConfig) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required")
	}
	if len(t.ID) > maxThemeIDLength {
		return fmt.Errorf("id must be %d characters or fewer", maxThemeIDLength)
	}
	if !themeIDRegex.MatchString(t.ID) {
		return fmt.Errorf("id may only contain letters, numbers, hyphens, and underscores")
	}

	trimmedName := strings.TrimSpace(t.Name)
	if trimmedName == "" {
		return fmt.Errorf("name is required")
	}
	if len(trimmedName) > maxThemeNameLength {
		return fmt.Errorf("name must be %d characters or fewer", maxThemeNameLength)
	}
	if !t.Category.Valid() {
		return fmt.Errorf("category %q is not supported", t.Category)
	}

	if err := validatePalette("colors.light", t.Colors.Light); err != nil {
		return err
	}
	if err := validatePalette("colors.dark", t.Colors.Dark); err != nil {
		return err
	}

	if len(t.Fonts.Sans) == 0 {
		return fmt.Errorf("fonts.sans requires at least one family")
	}
	if len(t.Fonts.Mono) == 0 {
		return fmt.Errorf("fonts.mono requires at least one family")
	}

	if !(t.Spacing.Scale > 0) {
		return fmt.Errorf("spacing.scale must be greater than 0")
	}
	if strings.TrimSpace(t.Spacing.ContainerPadding) == "" {
		return fmt.Errorf("spacing.containerPadding is required")
	}
	if strings.TrimSpace(t.Spacing.SectionSpacing) == "" {
		return fmt.Errorf("spacing.sectionSpacing is required")
	}

	for _, token := range t.BorderRadius.Tokens() {
		if strings.TrimSpace(token.Value) == "" {
			return fmt.Errorf("borderRadius.%s is required", token.Key)
		}
	}

	if strings.TrimSpace(t.Animations.Duration) == "" {
		return fmt.Errorf("animations.duration is required")
	}
	if strings.TrimSpace(t.Animations.Easing) == "" {
		return fmt.Errorf("animations.easing is required")
	}

	return t.Ecommerce.validate()
}

func validatePalette(prefix string, colors ThemeColors) error {
	for _, role := range colors.Roles() {
		if strings.TrimSpace(role.Value) == "" {
			return fmt.Errorf("%s.%s is required", prefix, role.Key)
		}
	}
	return nil
}

func (e EcommerceOptions) validate() error {
	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"ecommerce.productCard.hoverEffect", e.ProductCard.HoverEffect, hoverEffects},
		{"ecommerce.productCard.badgeStyle", e.ProductCard.BadgeStyle, badgeStyles},
		{"ecommerce.pricing.discountStyle", e.Pricing.DiscountStyle, discountStyles},
		{"ecommerce.cart.style", e.Cart.Style, cartStyles},
		{"ecommerce.cart.animation", e.Cart.Animation, cartAnimations},
	}
	for _, check := range checks {
		if !slices.Contains(check.allowed, check.value) {
			return fmt.Errorf("%s must be one of %s", check.field, strings.Join(check.allowed, ", "))
		}
	}
	if strings.TrimSpace(e.Pricing.Currency) == "" {
		return fmt.Errorf("ecommerce.pricing.currency is required")
	}
	return nil
}
