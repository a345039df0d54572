// Package settings holds the subtitle rendering configuration of the
// editing session and tracks whether it changed since the last apply.
package settings

import (
	"fmt"
	"sync"

	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/models"
)

// Store owns the settings snapshot. All mutation goes through Merge,
// MergeFormatting or Replace.
type Store struct {
	mu       sync.Mutex
	settings models.Settings
	dirty    bool
}

// New creates a store seeded with initial
func New(initial models.Settings) *Store {
	return &Store{settings: initial}
}

// Snapshot returns a copy of the current settings
func (s *Store) Snapshot() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Merge replaces a single key within one category and returns the new
// snapshot. Sibling keys and categories are left untouched. Range checks
// are the caller's responsibility; unknown keys are rejected.
func (s *Store) Merge(category constants.Category, key string, value any) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	if err := next.Set(category, key, value); err != nil {
		return s.settings, err
	}
	s.settings = next
	s.dirty = true
	return s.settings, nil
}

// MergeFormatting rewrites the formatting toggles so that exactly the keys
// in enabled are on. Keys outside the toggle catalog are ignored.
func (s *Store) MergeFormatting(enabled []string) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.Formatting.SetEnabled(enabled)
	s.dirty = true
	return s.settings
}

// ApplyPreset selects a preset from the catalog
func (s *Store) ApplyPreset(id string) (models.Settings, error) {
	if _, ok := models.LookupPreset(id); !ok {
		return s.Snapshot(), fmt.Errorf("%w: preset %q", models.ErrInvalidValue, id)
	}
	return s.Merge(constants.CategoryFont, constants.KeyPreset, id)
}

// Replace swaps the whole snapshot, as when the editor resets to the
// defaults. The store turns dirty when next differs from the current
// settings.
func (s *Store) Replace(next models.Settings) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next != s.settings {
		s.settings = next
		s.dirty = true
	}
	return s.settings
}

// Dirty reports whether settings changed since the last successful apply
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// MarkClean clears the dirty flag after a successful apply
func (s *Store) MarkClean() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}
