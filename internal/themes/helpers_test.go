package themes

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/codr1/storefront/internal/models"
	"github.com/codr1/storefront/internal/testutil"
)

type memPersister struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	loadErr error
}

func (p *memPersister) Load(context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return p.data, nil
}

func (p *memPersister) Save(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = append([]byte(nil), data...)
	p.saves++
	return nil
}

func (p *memPersister) snapshot() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data
}

type fakeAPI struct {
	mu      sync.Mutex
	themes  map[string]models.ThemeConfig
	gates   map[string]chan struct{}
	started chan string
	fetches int
	saved   []models.ThemeConfig
	saveErr error
}

func newFakeAPI(themes ...models.ThemeConfig) *fakeAPI {
	api := &fakeAPI{
		themes:  make(map[string]models.ThemeConfig),
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 8),
	}
	for _, theme := range themes {
		api.themes[theme.ID] = theme
	}
	return api
}

// gate blocks fetches of id until the returned func is called.
func (f *fakeAPI) gate(id string) func() {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[id] = ch
	f.mu.Unlock()
	return func() { close(ch) }
}

func (f *fakeAPI) FetchTheme(ctx context.Context, id string) (models.ThemeConfig, error) {
	f.mu.Lock()
	f.fetches++
	gate := f.gates[id]
	theme, ok := f.themes[id]
	f.mu.Unlock()

	f.started <- id
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return models.ThemeConfig{}, ctx.Err()
		}
	}
	if !ok {
		return models.ThemeConfig{}, ErrThemeNotFound
	}
	return theme, nil
}

func (f *fakeAPI) SaveTheme(_ context.Context, theme models.ThemeConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, theme)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type storeFixture struct {
	store     *Store
	root      *StyleRoot
	scheme    *Scheme
	persister *memPersister
	api       *fakeAPI
	presets   []models.ThemeConfig
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()

	f := &storeFixture{
		root:      NewStyleRoot(),
		scheme:    NewScheme(false),
		persister: &memPersister{},
		api:       newFakeAPI(),
		presets:   testutil.Presets(t),
	}
	f.store = f.open(t)
	return f
}

// open builds another store over the fixture's persister, as a page reload would.
func (f *storeFixture) open(t *testing.T) *Store {
	t.Helper()

	logger := zerolog.Nop()
	store, err := NewStore(context.Background(), Options{
		Presets:   f.presets,
		Target:    f.root,
		Scheme:    f.scheme,
		Persister: f.persister,
		API:       f.api,
		Clock:     fixedClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)},
		Logger:    &logger,
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func (f *storeFixture) preset(t *testing.T, id string) models.ThemeConfig {
	t.Helper()

	for _, preset := range f.presets {
		if preset.ID == id {
			return preset
		}
	}
	t.Fatalf("preset %q not found", id)
	return models.ThemeConfig{}
}

func mustProperty(t *testing.T, root *StyleRoot, name string) string {
	t.Helper()

	value, ok := root.Property(name)
	if !ok {
		t.Fatalf("expected %s to be set", name)
	}
	return value
}
