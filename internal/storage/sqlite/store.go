package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/hermione/internal/logger"
	"github.com/julianstephens/hermione/internal/migration"
	"github.com/julianstephens/hermione/migrations"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// fixed width so stored timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the SQLite-backed local design document and editor state
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Open connects and applies pending migrations. Calling Open on an open
// store only applies migrations.
func (s *Store) Open(ctx context.Context) error {
	if err := s.Connect(ctx); err != nil {
		return err
	}
	if _, err := s.Migrate(ctx, func(msg string, keyvals ...interface{}) {
		logger.Debug(msg, keyvals...)
	}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Connect creates the database file if needed and applies the connection
// pragmas. The schema is left as found.
func (s *Store) Connect(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// pragmas are per connection
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	s.db = db
	return nil
}

// Migrate applies pending migrations and returns how many ran
func (s *Store) Migrate(ctx context.Context, logFn func(msg string, keyvals ...interface{})) (int, error) {
	if s.db == nil {
		return 0, errors.New("store is not connected")
	}
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.Apply(ctx, logFn)
}

// Ping runs a trivial query against the database
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return errors.New("store is not connected")
	}
	var one int
	return s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

// SchemaStatus reports the applied and bundled schema versions
func (s *Store) SchemaStatus(ctx context.Context) (migration.Status, error) {
	if s.db == nil {
		return migration.Status{}, errors.New("store is not connected")
	}
	runner, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return runner.Status(ctx)
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", v, err)
	}
	return t, nil
}
