// Package host models the design document the editor writes into. The
// Document interface is the seam the orchestrator depends on; LocalDocument
// backs it with the local SQLite store.
package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/models"
)

// Selection is the set of content refs currently selected in the design
type Selection struct {
	Refs []string
}

// Count returns the number of selected items
func (s Selection) Count() int {
	return len(s.Refs)
}

// First returns the first selected ref, or "" when nothing is selected
func (s Selection) First() string {
	if len(s.Refs) == 0 {
		return ""
	}
	return s.Refs[0]
}

// PageContext describes the current page. HasDimensions is false for
// designs without a fixed size.
type PageContext struct {
	Width         int
	Height        int
	HasDimensions bool
}

// UploadRequest describes a video to add to the design as a new asset
type UploadRequest struct {
	Type         constants.AssetType
	URL          string
	ThumbnailURL string
	MimeType     constants.MimeType
	ParentRef    string
	Width        int
	Height       int
}

// Document is the host design document API
type Document interface {
	ReadSelection(ctx context.Context) (Selection, error)
	PageContext(ctx context.Context) (PageContext, error)
	// TemporaryURL resolves a content ref to a URL the backend can fetch
	TemporaryURL(ctx context.Context, ref string) (string, error)
	// UploadAsset registers a new asset and returns its ref
	UploadAsset(ctx context.Context, req UploadRequest) (string, error)
	AddElement(ctx context.Context, ref string) error
	SaveDraft(ctx context.Context) error
}

// ErrInvalidUpload is returned for upload requests the document rejects
var ErrInvalidUpload = errors.New("invalid upload request")

// Validate checks an upload request before it reaches the document
func (r UploadRequest) Validate() error {
	if r.Type != constants.AssetVideo {
		return fmt.Errorf("%w: unsupported asset type %q", ErrInvalidUpload, r.Type)
	}
	if r.URL == "" {
		return fmt.Errorf("%w: missing url", ErrInvalidUpload)
	}
	if !r.MimeType.Valid() {
		return fmt.Errorf("%w: unsupported mime type %q", ErrInvalidUpload, r.MimeType)
	}
	return nil
}

// Asset converts the request into the stored asset shape
func (r UploadRequest) Asset() models.Asset {
	return models.Asset{
		URL:          r.URL,
		ThumbnailURL: r.ThumbnailURL,
		MimeType:     string(r.MimeType),
		ParentRef:    r.ParentRef,
		Width:        r.Width,
		Height:       r.Height,
	}
}
