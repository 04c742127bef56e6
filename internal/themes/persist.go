package themes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/codr1/storefront/internal/models"
)

// snapshotVersion is bumped when the persisted layout changes incompatibly.
const snapshotVersion = 0

// Persister stores one opaque snapshot. Load returns nil when nothing was saved.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

type snapshot struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}

// persistedState mirrors State with every field optional, so a partial
// snapshot merges over defaults field by field.
type persistedState struct {
	CurrentTheme   *models.ThemeConfig    `json:"currentTheme,omitempty"`
	CustomThemes   []models.ThemeConfig   `json:"customThemes"`
	Mode           models.Mode            `json:"mode,omitempty"`
	Customizations *models.Customizations `json:"customizations,omitempty"`
}

func encodeSnapshot(state State) ([]byte, error) {
	current := state.CurrentTheme
	custom := state.Customizations
	themes := state.CustomThemes
	if themes == nil {
		themes = []models.ThemeConfig{}
	}
	data, err := json.Marshal(snapshot{
		State: persistedState{
			CurrentTheme:   &current,
			CustomThemes:   themes,
			Mode:           state.Mode,
			Customizations: &custom,
		},
		Version: snapshotVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("encode theme snapshot: %w", err)
	}
	return data, nil
}

// decodeSnapshot merges a stored snapshot over defaults. On any error the
// defaults are returned unchanged along with the error.
func decodeSnapshot(data []byte, defaults State) (State, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return defaults, fmt.Errorf("decode theme snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return defaults, fmt.Errorf("theme snapshot version %d is not supported", snap.Version)
	}

	if mode := snap.State.Mode; mode != "" && !mode.Valid() {
		return defaults, fmt.Errorf("theme snapshot mode %q is not supported", mode)
	}
	if custom := snap.State.Customizations; custom != nil {
		if err := custom.Validate(); err != nil {
			return defaults, fmt.Errorf("theme snapshot customizations: %w", err)
		}
	}

	state := defaults
	if current := snap.State.CurrentTheme; current != nil && current.ID != "" {
		state.CurrentTheme = *current
	}
	if snap.State.CustomThemes != nil {
		state.CustomThemes = snap.State.CustomThemes
	}
	if snap.State.Mode != "" {
		state.Mode = snap.State.Mode
	}
	if snap.State.Customizations != nil {
		state.Customizations = *snap.State.Customizations
	}
	return state, nil
}
