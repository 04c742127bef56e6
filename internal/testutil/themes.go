package testutil

import (
	"testing"

	"github.com/codr1/storefront/internal/db"
	"github.com/codr1/storefront/internal/models"
)

// Presets returns the embedded preset catalog.
func Presets(t *testing.T) []models.ThemeConfig {
	t.Helper()

	presets, err := db.ParsePresetsFile()
	if err != nil {
		t.Fatalf("parse presets: %v", err)
	}
	return presets
}

// Preset returns the preset with the given id.
func Preset(t *testing.T, id string) models.ThemeConfig {
	t.Helper()

	for _, preset := range Presets(t) {
		if preset.ID == id {
			return preset
		}
	}
	t.Fatalf("preset %q not found", id)
	return models.ThemeConfig{}
}
