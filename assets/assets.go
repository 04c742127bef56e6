// Package assets embeds files shipped inside the binary.
package assets

import "embed"

// PresetsPath is the preset catalog inside PresetsFS.
const PresetsPath = "presets.yaml"

//go:embed presets.yaml
var PresetsFS embed.FS
