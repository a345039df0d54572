// Package backup keeps point-in-time snapshots of the local design
// document next to the database file.
package backup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/logger"
)

const (
	// MaxSnapshots is how many snapshots rotation keeps
	MaxSnapshots = 10
	DirName      = "snapshots"

	filePrefix = constants.AppName + "-"
	fileSuffix = ".db"
	stampFmt   = "20060102-150405"
)

// ErrNoDocument is returned when there is no database file to snapshot
var ErrNoDocument = errors.New("design document does not exist")

// Snapshot describes one snapshot file
type Snapshot struct {
	Path    string
	TakenAt time.Time
	Size    int64
}

func (s Snapshot) Name() string {
	return filepath.Base(s.Path)
}

// Manager takes, lists, and restores snapshots of one database file
type Manager struct {
	dbPath string
	dir    string
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Take writes a snapshot of the database and rotates old ones
func (m *Manager) Take(ctx context.Context) (Snapshot, error) {
	snap, err := m.take(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("failed to rotate snapshots", "error", err)
	}
	return snap, nil
}

func (m *Manager) take(ctx context.Context) (Snapshot, error) {
	if _, err := os.Stat(m.dbPath); errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrNoDocument, m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return Snapshot{}, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	now := time.Now()
	dest, err := m.freePath(now)
	if err != nil {
		return Snapshot{}, err
	}

	db, err := sql.Open("sqlite", m.dbPath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to open design document: %w", err)
	}
	defer db.Close()

	// VACUUM INTO produces a consistent copy even while the store is open
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		return Snapshot{}, fmt.Errorf("failed to write snapshot: %w", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return Snapshot{}, err
	}
	logger.Debug("snapshot taken", "path", dest)
	return Snapshot{Path: dest, TakenAt: now.Truncate(time.Second), Size: info.Size()}, nil
}

// freePath names a snapshot after every existing one taken in the same
// second, so names keep sorting in the order snapshots were taken.
func (m *Manager) freePath(at time.Time) (string, error) {
	stamp := at.Format(stampFmt)
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return "", fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	next := 0
	for _, e := range entries {
		t, seq, ok := parseName(e.Name())
		if ok && t.Format(stampFmt) == stamp && seq >= next {
			next = seq + 1
		}
	}

	name := filePrefix + stamp + fileSuffix
	if next > 0 {
		name = fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, next, fileSuffix)
	}
	return filepath.Join(m.dir, name), nil
}

// List returns the snapshots, newest first. Files that do not follow the
// snapshot naming scheme are ignored.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var out []Snapshot
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		at, seq, ok := parseName(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Snapshot{
			Path: filepath.Join(m.dir, e.Name()),
			// the sequence suffix orders snapshots taken within one second
			TakenAt: at.Add(time.Duration(seq)),
			Size:    info.Size(),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].TakenAt.After(out[j].TakenAt)
	})
	for i := range out {
		out[i].TakenAt = out[i].TakenAt.Truncate(time.Second)
	}
	return out, nil
}

func parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)

	seq := 0
	if len(stamp) > len(stampFmt) {
		n, err := strconv.Atoi(strings.TrimPrefix(stamp[len(stampFmt):], "-"))
		if err != nil {
			return time.Time{}, 0, false
		}
		seq = n
		stamp = stamp[:len(stampFmt)]
	}

	at, err := time.ParseInLocation(stampFmt, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return at, seq, true
}

func (m *Manager) rotate() error {
	snaps, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxSnapshots; i < len(snaps); i++ {
		if err := os.Remove(snaps[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snaps[i].Name(), err)
		}
	}
	return nil
}

// Restore replaces the database with the named snapshot. The current
// database is snapshotted first; that snapshot is returned so callers can
// report it. The store must be closed.
func (m *Manager) Restore(ctx context.Context, name string) (Snapshot, error) {
	src := name
	if !filepath.IsAbs(src) {
		src = filepath.Join(m.dir, name)
	}
	if err := verify(ctx, src); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s is not a usable database: %w", filepath.Base(src), err)
	}

	var current Snapshot
	if _, err := os.Stat(m.dbPath); err == nil {
		// rotation is skipped so the snapshot being restored cannot be removed
		if current, err = m.take(ctx); err != nil {
			return Snapshot{}, fmt.Errorf("failed to snapshot current document: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(src, tmp); err != nil {
		return Snapshot{}, fmt.Errorf("failed to copy snapshot: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		_ = os.Remove(tmp)
		return Snapshot{}, fmt.Errorf("failed to restore snapshot: %w", err)
	}
	// stale WAL files would be replayed over the restored file
	for _, ext := range []string{"-wal", "-shm"} {
		if err := os.Remove(m.dbPath + ext); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("failed to remove stale journal", "path", m.dbPath+ext, "error", err)
		}
	}
	return current, nil
}

func verify(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var n int
	return db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master").Scan(&n)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
