package themes

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/codr1/storefront/internal/models"
)

var (
	ErrNoPresets     = errors.New("theme store requires at least one preset")
	ErrNoThemeAPI    = errors.New("theme store has no theme API configured")
	ErrThemeNotFound = errors.New("theme not found")
	// ErrStaleTheme is returned by LoadThemeFromAPI when a newer theme change
	// superseded the load before it finished. The fetched theme was discarded.
	ErrStaleTheme = errors.New("theme load superseded by a newer theme change")
)

const (
	defaultPersistTimeout = 5 * time.Second
	defaultFetchTimeout   = 10 * time.Second
)

// ThemeAPI is the remote theme endpoint.
type ThemeAPI interface {
	FetchTheme(ctx context.Context, id string) (models.ThemeConfig, error)
	SaveTheme(ctx context.Context, theme models.ThemeConfig) error
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// State is the persisted theme selection.
type State struct {
	CurrentTheme   models.ThemeConfig    `json:"currentTheme"`
	CustomThemes   []models.ThemeConfig  `json:"customThemes"`
	Mode           models.Mode           `json:"mode"`
	Customizations models.Customizations `json:"customizations"`
}

func (s State) clone() State {
	clone := s
	clone.CurrentTheme = s.CurrentTheme.Clone()
	clone.CustomThemes = make([]models.ThemeConfig, len(s.CustomThemes))
	for i, theme := range s.CustomThemes {
		clone.CustomThemes[i] = theme.Clone()
	}
	return clone
}

type Options struct {
	// Presets is the built-in catalog. The first preset is the default theme.
	Presets   []models.ThemeConfig
	Target    RenderTarget
	Scheme    SchemeSource
	Persister Persister
	API       ThemeAPI
	Clock     Clock
	Logger    *zerolog.Logger
	// PersistTimeout bounds each snapshot write.
	PersistTimeout time.Duration
	// FetchTimeout bounds a shared theme fetch, which outlives any single caller.
	FetchTimeout time.Duration
}

// Store is the single source of truth for the active theme. Every mutation is
// persisted and, where it changes the rendered output, applied to the target
// before the method returns.
type Store struct {
	mu         sync.Mutex
	state      State
	generation uint64

	presets        []models.ThemeConfig
	applier        *Applier
	target         RenderTarget
	scheme         SchemeSource
	persister      Persister
	api            ThemeAPI
	clock          Clock
	logger         zerolog.Logger
	persistTimeout time.Duration
	fetchTimeout   time.Duration

	loads singleflight.Group

	listenersMu  sync.Mutex
	nextListener int
	listeners    map[int]func(State)
}

// NewStore builds a store and rehydrates it from the persister. A missing or
// unreadable snapshot leaves the defaults in place. The target is not written
// until the store is mounted or mutated.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	if len(opts.Presets) == 0 {
		return nil, ErrNoPresets
	}

	s := &Store{
		presets:        make([]models.ThemeConfig, len(opts.Presets)),
		applier:        NewApplier(opts.Presets[0]),
		target:         opts.Target,
		scheme:         opts.Scheme,
		persister:      opts.Persister,
		api:            opts.API,
		clock:          opts.Clock,
		logger:         log.Logger,
		persistTimeout: opts.PersistTimeout,
		fetchTimeout:   opts.FetchTimeout,
		listeners:      make(map[int]func(State)),
	}
	for i, preset := range opts.Presets {
		s.presets[i] = preset.Clone()
	}
	if s.target == nil {
		s.target = NewStyleRoot()
	}
	if s.scheme == nil {
		s.scheme = NewScheme(false)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	}
	if s.persistTimeout <= 0 {
		s.persistTimeout = defaultPersistTimeout
	}
	if s.fetchTimeout <= 0 {
		s.fetchTimeout = defaultFetchTimeout
	}

	s.state = s.defaultState()
	if s.persister == nil {
		return s, nil
	}

	data, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load persisted theme state")
		return s, nil
	}
	if len(data) == 0 {
		return s, nil
	}
	state, err := decodeSnapshot(data, s.state)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Ignoring persisted theme state")
	}
	s.state = state
	s.logger.Debug().
		Str("theme_id", s.state.CurrentTheme.ID).
		Str("mode", string(s.state.Mode)).
		Int("custom_themes", len(s.state.CustomThemes)).
		Msg("Rehydrated theme state")
	return s, nil
}

func (s *Store) defaultState() State {
	return State{
		CurrentTheme:   s.presets[0].Clone(),
		CustomThemes:   []models.ThemeConfig{},
		Mode:           models.ModeSystem,
		Customizations: models.Customizations{},
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Presets returns a copy of the built-in catalog.
func (s *Store) Presets() []models.ThemeConfig {
	presets := make([]models.ThemeConfig, len(s.presets))
	for i, preset := range s.presets {
		presets[i] = preset.Clone()
	}
	return presets
}

// FindTheme looks up id among the presets, then the custom themes.
func (s *Store) FindTheme(id string) (models.ThemeConfig, bool) {
	for _, preset := range s.presets {
		if preset.ID == id {
			return preset.Clone(), true
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, theme := range s.state.CustomThemes {
		if theme.ID == id {
			return theme.Clone(), true
		}
	}
	return models.ThemeConfig{}, false
}

// Target returns the render target the store applies to.
func (s *Store) Target() RenderTarget {
	return s.target
}

// Compute returns what the store would apply for its current state.
func (s *Store) Compute() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computeLocked()
}

// SetTheme makes theme current and applies it. Any theme load still in flight
// is superseded.
func (s *Store) SetTheme(theme models.ThemeConfig) {
	s.mu.Lock()
	s.generation++
	s.state.CurrentTheme = theme.Clone()
	state := s.commitLocked(true)
	s.mu.Unlock()

	s.logger.Info().Str("theme_id", theme.ID).Msg("Theme changed")
	s.notify(state)
}

// SetThemeByID activates a preset or custom theme by id.
func (s *Store) SetThemeByID(id string) error {
	theme, ok := s.FindTheme(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrThemeNotFound, id)
	}
	s.SetTheme(theme)
	return nil
}

func (s *Store) SetMode(mode models.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid mode %q", mode)
	}

	s.mu.Lock()
	s.state.Mode = mode
	state := s.commitLocked(true)
	s.mu.Unlock()

	s.logger.Info().Str("mode", string(mode)).Msg("Theme mode changed")
	s.notify(state)
	return nil
}

// AddCustomTheme records a custom theme. The applied output is unchanged.
func (s *Store) AddCustomTheme(theme models.ThemeConfig) {
	s.mu.Lock()
	s.state.CustomThemes = append(s.state.CustomThemes, theme.Clone())
	state := s.commitLocked(false)
	s.mu.Unlock()

	s.logger.Info().Str("theme_id", theme.ID).Msg("Custom theme added")
	s.notify(state)
}

// UpdateCustomizations merges patch into the current customizations and applies the result.
func (s *Store) UpdateCustomizations(patch models.CustomizationsPatch) {
	s.mu.Lock()
	s.state.Customizations = s.state.Customizations.Merge(patch)
	state := s.commitLocked(true)
	s.mu.Unlock()

	s.notify(state)
}

func (s *Store) ResetCustomizations() {
	s.mu.Lock()
	s.state.Customizations = models.Customizations{}
	state := s.commitLocked(true)
	s.mu.Unlock()

	s.logger.Info().Msg("Theme customizations reset")
	s.notify(state)
}

// Reapply writes the current state to the target again.
func (s *Store) Reapply() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.computeLocked()
	result.ApplyTo(s.target)
	return result
}

// reapplyIfSystem follows a system preference change when mode is system.
func (s *Store) reapplyIfSystem() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Mode != models.ModeSystem {
		return
	}
	s.computeLocked().ApplyTo(s.target)
	s.logger.Debug().Msg("Reapplied theme after system color scheme change")
}

// LoadThemeFromAPI fetches id and makes it current. Concurrent loads of the same
// id share one request. If SetTheme or another load starts after this call, the
// fetched theme is dropped and ErrStaleTheme is returned. A caller whose ctx ends
// stops waiting without failing the others sharing the request.
func (s *Store) LoadThemeFromAPI(ctx context.Context, id string) error {
	if s.api == nil {
		return ErrNoThemeAPI
	}

	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	results := s.loads.DoChan(id, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		return s.api.FetchTheme(fetchCtx, id)
	})

	var res singleflight.Result
	select {
	case res = <-results:
	case <-ctx.Done():
		s.logger.Debug().Err(ctx.Err()).Str("theme_id", id).Msg("Stopped waiting for theme load")
		return fmt.Errorf("load theme %s: %w", id, ctx.Err())
	}
	if res.Err != nil {
		s.logger.Error().Err(res.Err).Str("theme_id", id).Msg("Failed to load theme from API")
		return fmt.Errorf("load theme %s: %w", id, res.Err)
	}
	theme := res.Val.(models.ThemeConfig)
	shared := res.Shared

	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		s.logger.Debug().Str("theme_id", id).Msg("Dropping superseded theme load")
		return ErrStaleTheme
	}
	s.generation++
	s.state.CurrentTheme = theme.Clone()
	state := s.commitLocked(true)
	s.mu.Unlock()

	s.logger.Info().Str("theme_id", id).Bool("shared", shared).Msg("Theme loaded from API")
	s.notify(state)
	return nil
}

// SaveThemeToAPI sends theme to the remote endpoint. Local state is not touched.
func (s *Store) SaveThemeToAPI(ctx context.Context, theme models.ThemeConfig) error {
	if s.api == nil {
		return ErrNoThemeAPI
	}
	if err := s.api.SaveTheme(ctx, theme); err != nil {
		s.logger.Error().Err(err).Str("theme_id", theme.ID).Msg("Failed to save theme to API")
		return fmt.Errorf("save theme %s: %w", theme.ID, err)
	}
	s.logger.Info().Str("theme_id", theme.ID).Msg("Theme saved to API")
	return nil
}

// Subscribe registers fn to receive the state after every mutation.
func (s *Store) Subscribe(fn func(State)) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) notify(state State) {
	s.listenersMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]func(State), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(state.clone())
	}
}

func (s *Store) computeLocked() Result {
	return s.applier.Compute(s.state.CurrentTheme, s.state.Mode, s.state.Customizations, s.scheme.PrefersDark())
}

// commitLocked persists the state and, when apply is set, writes it to the
// target. It returns a copy for listeners.
func (s *Store) commitLocked(apply bool) State {
	s.persistLocked()
	if apply {
		s.computeLocked().ApplyTo(s.target)
	}
	return s.state.clone()
}

func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	data, err := encodeSnapshot(s.state)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode theme state")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()
	if err := s.persister.Save(ctx, data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist theme state")
	}
}
