package db

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/codr1/storefront/assets"
	"github.com/codr1/storefront/internal/models"
)

type presetsFile struct {
	Default string               `yaml:"default"`
	Presets []models.ThemeConfig `yaml:"presets"`
}

// ParsePresetsFile reads assets/presets.yaml and returns the preset catalog in order.
// The default preset is always first.
func ParsePresetsFile() ([]models.ThemeConfig, error) {
	file, err := assets.PresetsFS.Open(assets.PresetsPath)
	if err != nil {
		return nil, fmt.Errorf("open embedded presets file: %w", err)
	}
	defer file.Close()

	return ParsePresets(file)
}

// ParsePresets decodes and validates a preset catalog.
func ParsePresets(r io.Reader) ([]models.ThemeConfig, error) {
	var parsed presetsFile
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse presets file: %w", err)
	}

	if len(parsed.Presets) == 0 {
		return nil, fmt.Errorf("presets file defines no presets")
	}
	if parsed.Default == "" {
		return nil, fmt.Errorf("presets file must name a default preset")
	}
	if parsed.Presets[0].ID != parsed.Default {
		return nil, fmt.Errorf("default preset %q must be listed first, found %q", parsed.Default, parsed.Presets[0].ID)
	}

	seen := make(map[string]struct{}, len(parsed.Presets))
	for i, preset := range parsed.Presets {
		if _, ok := seen[preset.ID]; ok {
			return nil, fmt.Errorf("duplicate preset id %q at position %d", preset.ID, i+1)
		}
		seen[preset.ID] = struct{}{}

		if preset.Category == models.CategoryCustom {
			return nil, fmt.Errorf("preset %q must not use the custom category", preset.ID)
		}
		if err := preset.Validate(); err != nil {
			return nil, fmt.Errorf("invalid preset %q: %w", preset.ID, err)
		}
	}

	return parsed.Presets, nil
}
