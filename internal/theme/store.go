package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.yaml.in/yaml/v3"
)

// MemoryStore keeps the preference in memory.
type MemoryStore struct {
	mu    sync.Mutex
	theme Theme
}

// Load implements Store.
func (s *MemoryStore) Load() (Theme, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme, s.theme != "", nil
}

// Save implements Store.
func (s *MemoryStore) Save(t Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	return nil
}

// FileName is the preferences file written by FileStore inside the data directory.
const FileName = "preferences.yaml"

type preferences struct {
	Theme string `yaml:"theme"`
}

// FileStore keeps the preference in a YAML file.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing FileName under dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, FileName)}
}

// Path returns the preferences file path.
func (s *FileStore) Path() string { return s.path }

// Load implements Store. A missing file or an unknown value is not an error.
func (s *FileStore) Load() (Theme, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", s.path, err)
	}
	var p preferences
	if err := yaml.Unmarshal(data, &p); err != nil {
		return "", false, fmt.Errorf("parse %s: %w", s.path, err)
	}
	t, err := Parse(p.Theme)
	if err != nil {
		return "", false, nil
	}
	return t, true, nil
}

// Save implements Store.
func (s *FileStore) Save(t Theme) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := yaml.Marshal(preferences{Theme: t.String()})
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// CookieName is the cookie carrying the web preference.
const CookieName = "theme"

const cookieMaxAge = 365 * 24 * time.Hour

// CookieStore reads the preference from a request and writes it to the response.
type CookieStore struct {
	w http.ResponseWriter
	r *http.Request
}

// NewCookieStore binds a store to one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{w: w, r: r}
}

// Load implements Store.
func (s *CookieStore) Load() (Theme, bool, error) {
	c, err := s.r.Cookie(CookieName)
	if err != nil {
		return "", false, nil
	}
	t, err := Parse(c.Value)
	if err != nil {
		return "", false, nil
	}
	return t, true, nil
}

// Save implements Store.
func (s *CookieStore) Save(t Theme) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    t.String(),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
