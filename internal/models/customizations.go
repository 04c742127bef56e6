package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeDark || m == ModeSystem
}

func ParseMode(raw string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if !mode.Valid() {
		return "", fmt.Errorf("mode must be one of light, dark, system")
	}
	return mode, nil
}

type RadiusStyle string

const (
	RadiusDefault RadiusStyle = "default"
	RadiusSquare  RadiusStyle = "square"
	RadiusRounded RadiusStyle = "rounded"
)

func (r RadiusStyle) Valid() bool {
	return r == RadiusDefault || r == RadiusSquare || r == RadiusRounded
}

// Multiplier is the factor applied to every radius token.
func (r RadiusStyle) Multiplier() float64 {
	switch r {
	case RadiusRounded:
		return 1.5
	case RadiusSquare:
		return 0.5
	default:
		return 1
	}
}

// Opt is an optional value. The zero Opt is unset.
type Opt[T any] struct {
	value T
	set   bool
}

func Some[T any](value T) Opt[T] {
	return Opt[T]{value: value, set: true}
}

func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Opt[T]) IsSet() bool {
	return o.set
}

// IsZero lets `omitzero` drop unset fields when encoding.
func (o Opt[T]) IsZero() bool {
	return !o.set
}

func (o Opt[T]) OrElse(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.value
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if isJSONNull(data) {
		*o = Opt[T]{}
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*o = Some(value)
	return nil
}

// Customizations is the sparse overlay applied on top of the active theme.
type Customizations struct {
	PrimaryColor Opt[string]      `json:"primaryColor,omitzero"`
	FontFamily   Opt[string]      `json:"fontFamily,omitzero"`
	BorderRadius Opt[RadiusStyle] `json:"borderRadius,omitzero"`
	Spacing      Opt[float64]     `json:"spacing,omitzero"`
	Animations   Opt[bool]        `json:"animations,omitzero"`
}

func (c Customizations) IsEmpty() bool {
	return c == Customizations{}
}

// Merge applies a patch field by field and returns the result; c is not modified.
func (c Customizations) Merge(patch CustomizationsPatch) Customizations {
	return Customizations{
		PrimaryColor: patch.PrimaryColor.apply(c.PrimaryColor),
		FontFamily:   patch.FontFamily.apply(c.FontFamily),
		BorderRadius: patch.BorderRadius.apply(c.BorderRadius),
		Spacing:      patch.Spacing.apply(c.Spacing),
		Animations:   patch.Animations.apply(c.Animations),
	}
}

type patchOp uint8

const (
	patchKeep patchOp = iota
	patchSet
	patchClear
)

// Patch is a three-state field update: keep (zero value), set, or clear.
// In JSON an absent key keeps, null clears, and any other value sets.
type Patch[T any] struct {
	op    patchOp
	value T
}

func Update[T any](value T) Patch[T] {
	return Patch[T]{op: patchSet, value: value}
}

func Clear[T any]() Patch[T] {
	return Patch[T]{op: patchClear}
}

func (p Patch[T]) IsKeep() bool {
	return p.op == patchKeep
}

func (p Patch[T]) Value() (T, bool) {
	return p.value, p.op == patchSet
}

func (p Patch[T]) apply(current Opt[T]) Opt[T] {
	switch p.op {
	case patchSet:
		return Some(p.value)
	case patchClear:
		return Opt[T]{}
	default:
		return current
	}
}

func (p Patch[T]) IsZero() bool {
	return p.op == patchKeep
}

func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if p.op != patchSet {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	if isJSONNull(data) {
		*p = Clear[T]()
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*p = Update(value)
	return nil
}

type CustomizationsPatch struct {
	PrimaryColor Patch[string]      `json:"primaryColor,omitzero"`
	FontFamily   Patch[string]      `json:"fontFamily,omitzero"`
	BorderRadius Patch[RadiusStyle] `json:"borderRadius,omitzero"`
	Spacing      Patch[float64]     `json:"spacing,omitzero"`
	Animations   Patch[bool]        `json:"animations,omitzero"`
}

// Validate rejects values that would produce a broken stylesheet.
func (p CustomizationsPatch) Validate() error {
	color, colorSet := p.PrimaryColor.Value()
	family, familySet := p.FontFamily.Value()
	radius, radiusSet := p.BorderRadius.Value()
	spacing, spacingSet := p.Spacing.Value()
	if err := validateFields(color, colorSet, family, familySet, radius, radiusSet, spacing, spacingSet); err != nil {
		return fmt.Errorf("%w; send null to clear it", err)
	}
	return nil
}

// Validate applies the patch rules to every set field.
func (c Customizations) Validate() error {
	color, colorSet := c.PrimaryColor.Get()
	family, familySet := c.FontFamily.Get()
	radius, radiusSet := c.BorderRadius.Get()
	spacing, spacingSet := c.Spacing.Get()
	return validateFields(color, colorSet, family, familySet, radius, radiusSet, spacing, spacingSet)
}

func validateFields(color string, colorSet bool, family string, familySet bool, radius RadiusStyle, radiusSet bool, spacing float64, spacingSet bool) error {
	if colorSet && strings.TrimSpace(color) == "" {
		return fmt.Errorf("primaryColor must not be empty")
	}
	if familySet && strings.TrimSpace(family) == "" {
		return fmt.Errorf("fontFamily must not be empty")
	}
	if radiusSet && !radius.Valid() {
		return fmt.Errorf("borderRadius must be one of default, square, rounded")
	}
	if spacingSet && (math.IsNaN(spacing) || math.IsInf(spacing, 0) || spacing <= 0) {
		return fmt.Errorf("spacing must be a number greater than 0")
	}
	return nil
}

func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
