package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/hermione/internal/models"
)

// LoadSettings returns the saved settings profile. ok is false when no
// profile has been saved yet. Fields missing from an older profile are
// filled with defaults.
func (s *Store) LoadSettings(ctx context.Context) (settings models.Settings, ok bool, err error) {
	var data string
	err = s.db.QueryRowContext(ctx, "SELECT data FROM settings_profile WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), false, nil
	}
	if err != nil {
		return models.Settings{}, false, fmt.Errorf("failed to load settings: %w", err)
	}

	settings = models.DefaultSettings()
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return models.Settings{}, false, fmt.Errorf("parsing settings profile: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, true, nil
}

// SaveSettings replaces the saved settings profile
func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO settings_profile (id, data, updated_at) VALUES (1, ?, ?)",
		string(data), formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// ResetSettings deletes the saved profile
func (s *Store) ResetSettings(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM settings_profile")
	return err
}
