package themes

import "sync"

// Provider keeps a store's target in sync with the system color scheme.
// While mounted and in system mode, a preference change re-applies the theme.
type Provider struct {
	store     *Store
	cancels   []func()
	closeOnce sync.Once
}

// Mount applies the current state and starts following the store's scheme source.
// Every committed state change is logged until Close.
func Mount(store *Store) *Provider {
	p := &Provider{store: store}
	store.Reapply()
	p.cancels = append(p.cancels,
		store.scheme.Subscribe(func(bool) {
			store.reapplyIfSystem()
		}),
		store.Subscribe(func(state State) {
			store.logger.Info().
				Str("theme_id", state.CurrentTheme.ID).
				Str("mode", string(state.Mode)).
				Bool("customized", !state.Customizations.IsEmpty()).
				Int("custom_themes", len(state.CustomThemes)).
				Msg("Theme state changed")
		}),
	)
	return p
}

// Close stops following scheme and state changes. It is safe to call more than once.
func (p *Provider) Close() {
	p.closeOnce.Do(func() {
		for _, cancel := range p.cancels {
			cancel()
		}
	})
}
