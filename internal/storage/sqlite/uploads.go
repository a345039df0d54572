package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/hermione/internal/models"
)

// AddUpload records a completed upload
func (s *Store) AddUpload(ctx context.Context, rec models.UploadRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (id, asset_ref, parent_ref, url, preset, width, height, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.AssetRef, rec.ParentRef, rec.URL, rec.Preset, rec.Width, rec.Height,
		formatTime(rec.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to record upload: %w", err)
	}
	return nil
}

// ListUploads returns the most recent uploads first. limit <= 0 means all.
func (s *Store) ListUploads(ctx context.Context, limit int) ([]models.UploadRecord, error) {
	query := `SELECT id, asset_ref, parent_ref, url, preset, width, height, completed_at
		FROM uploads ORDER BY completed_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	var out []models.UploadRecord
	for rows.Next() {
		var rec models.UploadRecord
		var completed string
		if err := rows.Scan(&rec.ID, &rec.AssetRef, &rec.ParentRef, &rec.URL, &rec.Preset, &rec.Width, &rec.Height, &completed); err != nil {
			return nil, err
		}
		if rec.CompletedAt, err = parseTime(completed); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
