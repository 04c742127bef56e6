package themes

import "sync"

// SchemeSource reports the system color-scheme preference and its changes.
type SchemeSource interface {
	PrefersDark() bool
	// Subscribe registers fn for preference changes. The returned func unsubscribes.
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

// Scheme is a SchemeSource whose preference is set explicitly, for example from
// the Sec-CH-Prefers-Color-Scheme client hint.
type Scheme struct {
	mu        sync.Mutex
	dark      bool
	nextID    int
	listeners map[int]func(bool)
}

func NewScheme(dark bool) *Scheme {
	return &Scheme{dark: dark, listeners: make(map[int]func(bool))}
}

func (s *Scheme) PrefersDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Set records the preference and notifies subscribers when it changed.
func (s *Scheme) Set(dark bool) {
	s.mu.Lock()
	if s.dark == dark {
		s.mu.Unlock()
		return
	}
	s.dark = dark
	listeners := make([]func(bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(dark)
	}
}

func (s *Scheme) Subscribe(fn func(dark bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}
