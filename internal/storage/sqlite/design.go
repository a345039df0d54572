package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/hermione/internal/models"
)

// Dimensions returns the design's page size. ok is false when the design
// has no dimensions.
func (s *Store) Dimensions(ctx context.Context) (width, height int, ok bool, err error) {
	var w, h sql.NullInt64
	err = s.db.QueryRowContext(ctx, "SELECT width, height FROM design WHERE id = 1").Scan(&w, &h)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to read design: %w", err)
	}
	if !w.Valid || !h.Valid || w.Int64 <= 0 || h.Int64 <= 0 {
		return 0, 0, false, nil
	}
	return int(w.Int64), int(h.Int64), true, nil
}

// SetDimensions sets the page size. Zero values clear the dimensions.
func (s *Store) SetDimensions(ctx context.Context, width, height int) error {
	var w, h any
	if width > 0 && height > 0 {
		w, h = width, height
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO design (id, width, height) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET width = excluded.width, height = excluded.height`,
		w, h,
	)
	if err != nil {
		return fmt.Errorf("failed to update design: %w", err)
	}
	return nil
}

// AddAsset registers an asset. A blank Ref is assigned a new one, which is
// returned.
func (s *Store) AddAsset(ctx context.Context, asset models.Asset) (string, error) {
	if asset.Ref == "" {
		asset.Ref = uuid.NewString()
	}
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assets (ref, url, thumbnail_url, mime_type, parent_ref, width, height, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		asset.Ref, asset.URL, asset.ThumbnailURL, asset.MimeType, asset.ParentRef,
		asset.Width, asset.Height, formatTime(asset.CreatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("failed to add asset: %w", err)
	}
	return asset.Ref, nil
}

const assetColumns = "ref, url, thumbnail_url, mime_type, parent_ref, width, height, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (models.Asset, error) {
	var a models.Asset
	var created string
	if err := row.Scan(&a.Ref, &a.URL, &a.ThumbnailURL, &a.MimeType, &a.ParentRef, &a.Width, &a.Height, &created); err != nil {
		return models.Asset{}, err
	}
	t, err := parseTime(created)
	if err != nil {
		return models.Asset{}, err
	}
	a.CreatedAt = t
	return a, nil
}

// GetAsset returns the asset with the given ref
func (s *Store) GetAsset(ctx context.Context, ref string) (models.Asset, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+assetColumns+" FROM assets WHERE ref = ?", ref)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Asset{}, fmt.Errorf("asset %s: %w", ref, ErrNotFound)
	}
	if err != nil {
		return models.Asset{}, fmt.Errorf("failed to get asset: %w", err)
	}
	return a, nil
}

// ListAssets returns every asset, newest first
func (s *Store) ListAssets(ctx context.Context) ([]models.Asset, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+assetColumns+" FROM assets ORDER BY created_at DESC, ref")
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// SetSelection replaces the current selection. Every ref must be a known
// asset.
func (s *Store) SetSelection(ctx context.Context, refs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM selection"); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	for i, ref := range refs {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM assets WHERE ref = ?", ref).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("asset %s: %w", ref, ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO selection (position, asset_ref) VALUES (?, ?)", i, ref); err != nil {
			return fmt.Errorf("failed to select asset: %w", err)
		}
	}
	return tx.Commit()
}

// Selection returns the selected asset refs in selection order
func (s *Store) Selection(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT asset_ref FROM selection ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// AddElement places an asset on the page and returns the element id
func (s *Store) AddElement(ctx context.Context, assetRef string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO elements (id, asset_ref, created_at) VALUES (?, ?, ?)",
		id, assetRef, formatTime(time.Now()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to add element: %w", err)
	}
	return id, nil
}

// CountElements returns the number of elements on the page
func (s *Store) CountElements(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM elements").Scan(&n)
	return n, err
}

// SaveDraft records a save of the design and returns the draft id
func (s *Store) SaveDraft(ctx context.Context) (int64, error) {
	n, err := s.CountElements(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count elements: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO drafts (element_count, saved_at) VALUES (?, ?)",
		n, formatTime(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save draft: %w", err)
	}
	return res.LastInsertId()
}
