// Package themes holds the theme store and projects the active theme, mode and
// customizations onto a render target as CSS custom properties.
package themes

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
	"sync"
)

// DarkClass is toggled on the root element while the dark palette is applied.
const DarkClass = "dark"

// RenderTarget is the document root as seen by the applier.
type RenderTarget interface {
	SetProperty(name, value string)
	RemoveProperty(name string)
	SetClass(name string, enabled bool)
}

// StyleRoot is an in-memory root element. It renders its properties as a
// `:root{...}` stylesheet for delivery to browsers.
type StyleRoot struct {
	mu      sync.RWMutex
	props   map[string]string
	order   []string
	classes map[string]struct{}
}

func NewStyleRoot() *StyleRoot {
	return &StyleRoot{
		props:   make(map[string]string),
		classes: make(map[string]struct{}),
	}
}

func (r *StyleRoot) SetProperty(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.props[name]; !ok {
		r.order = append(r.order, name)
	}
	r.props[name] = value
}

func (r *StyleRoot) RemoveProperty(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.props[name]; !ok {
		return
	}
	delete(r.props, name)
	r.order = slices.DeleteFunc(r.order, func(existing string) bool { return existing == name })
}

func (r *StyleRoot) SetClass(name string, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if enabled {
		r.classes[name] = struct{}{}
		return
	}
	delete(r.classes, name)
}

func (r *StyleRoot) Property(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.props[name]
	return value, ok
}

func (r *StyleRoot) HasClass(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.classes[name]
	return ok
}

// Classes returns the root classes sorted by name.
func (r *StyleRoot) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classes := make([]string, 0, len(r.classes))
	for name := range r.classes {
		classes = append(classes, name)
	}
	slices.Sort(classes)
	return classes
}

// Properties returns the properties in first-write order.
func (r *StyleRoot) Properties() []Variable {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vars := make([]Variable, 0, len(r.order))
	for _, name := range r.order {
		vars = append(vars, Variable{Name: name, Value: r.props[name]})
	}
	return vars
}

// Stylesheet renders the properties as a single :root rule.
func (r *StyleRoot) Stylesheet() string {
	return RenderStylesheet(r.Properties())
}

// ETag identifies the current stylesheet and class list.
func (r *StyleRoot) ETag() string {
	sum := sha256.Sum256([]byte(r.Stylesheet() + "|" + strings.Join(r.Classes(), " ")))
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}

var cssValueReplacer = strings.NewReplacer(";", "", "{", "", "}", "", "<", "", ">", "", "\\", "")

// RenderStylesheet writes vars as one :root rule. Characters that could end the
// declaration or the enclosing style element are dropped from values.
func RenderStylesheet(vars []Variable) string {
	var b strings.Builder
	b.WriteString(":root{")
	for _, v := range vars {
		b.WriteString(v.Name)
		b.WriteByte(':')
		b.WriteString(cssValueReplacer.Replace(v.Value))
		b.WriteByte(';')
	}
	b.WriteString("}")
	return b.String()
}
