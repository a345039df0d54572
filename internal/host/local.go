package host

import (
	"context"
	"fmt"

	"github.com/julianstephens/hermione/internal/logger"
	"github.com/julianstephens/hermione/internal/models"
)

// Repository is the persistence LocalDocument needs
type Repository interface {
	Selection(ctx context.Context) ([]string, error)
	Dimensions(ctx context.Context) (width, height int, ok bool, err error)
	GetAsset(ctx context.Context, ref string) (models.Asset, error)
	AddAsset(ctx context.Context, asset models.Asset) (string, error)
	AddElement(ctx context.Context, assetRef string) (string, error)
	SaveDraft(ctx context.Context) (int64, error)
}

// LocalDocument is a Document stored on disk
type LocalDocument struct {
	repo Repository
}

func NewLocalDocument(repo Repository) *LocalDocument {
	return &LocalDocument{repo: repo}
}

func (d *LocalDocument) ReadSelection(ctx context.Context) (Selection, error) {
	refs, err := d.repo.Selection(ctx)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Refs: refs}, nil
}

func (d *LocalDocument) PageContext(ctx context.Context) (PageContext, error) {
	w, h, ok, err := d.repo.Dimensions(ctx)
	if err != nil {
		return PageContext{}, err
	}
	return PageContext{Width: w, Height: h, HasDimensions: ok}, nil
}

// TemporaryURL returns the asset's source URL. Local assets are already
// addressable, so no signing step is involved.
func (d *LocalDocument) TemporaryURL(ctx context.Context, ref string) (string, error) {
	a, err := d.repo.GetAsset(ctx, ref)
	if err != nil {
		return "", err
	}
	if a.URL == "" {
		return "", fmt.Errorf("asset %s has no url", ref)
	}
	return a.URL, nil
}

func (d *LocalDocument) UploadAsset(ctx context.Context, req UploadRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	ref, err := d.repo.AddAsset(ctx, req.Asset())
	if err != nil {
		return "", err
	}
	logger.Debug("asset uploaded", "ref", ref, "parent", req.ParentRef, "mime", req.MimeType)
	return ref, nil
}

func (d *LocalDocument) AddElement(ctx context.Context, ref string) error {
	id, err := d.repo.AddElement(ctx, ref)
	if err != nil {
		return err
	}
	logger.Debug("element added", "id", id, "ref", ref)
	return nil
}

func (d *LocalDocument) SaveDraft(ctx context.Context) error {
	id, err := d.repo.SaveDraft(ctx)
	if err != nil {
		return err
	}
	logger.Debug("draft saved", "id", id)
	return nil
}
