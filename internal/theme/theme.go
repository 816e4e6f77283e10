// Package theme holds the light/dark presentation preference.
//
// A Manager is initialized once from a Store and mutated only through Toggle,
// which persists the new value back to the same Store.
package theme

import (
	"fmt"
	"strings"
	"sync"
)

// Theme is a presentation palette.
type Theme string

// Supported themes.
const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse parses "light" or "dark".
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// Store persists a theme preference.
type Store interface {
	// Load returns the stored theme; ok is false when nothing valid is stored.
	Load() (t Theme, ok bool, err error)
	Save(t Theme) error
}

// Manager is the single owner of the current theme.
type Manager struct {
	mu      sync.RWMutex
	store   Store
	current Theme
}

// NewManager creates an uninitialized manager. Current reports Dark until Init is called.
func NewManager() *Manager {
	return &Manager{current: Dark}
}

// Init loads the persisted preference, falling back when none is stored or the store fails.
// The store error, if any, is returned after the fallback is applied.
func (m *Manager) Init(store Store, fallback Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = store
	if fallback != Light {
		fallback = Dark
	}
	m.current = fallback
	if store == nil {
		return nil
	}
	t, ok, err := store.Load()
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	if ok {
		m.current = t
	}
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Toggle flips the theme and persists it. The in-memory value changes even if saving fails.
func (m *Manager) Toggle() (Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = m.current.Toggle()
	if m.store == nil {
		return m.current, nil
	}
	if err := m.store.Save(m.current); err != nil {
		return m.current, fmt.Errorf("save theme: %w", err)
	}
	return m.current, nil
}
