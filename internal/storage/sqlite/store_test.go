package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenAppliesMigrations(t *testing.T) {
	store := setupTestStore(t)

	st, err := store.SchemaStatus(context.Background())
	if err != nil {
		t.Fatalf("SchemaStatus failed: %v", err)
	}
	if !st.UpToDate() || st.Current != st.Latest || st.Latest < 2 {
		t.Errorf("unexpected schema status %+v", st)
	}

	// reopening is a no-op
	if err := store.Open(context.Background()); err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
}

func TestConnectLeavesSchemaUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "test.db"))
	t.Cleanup(func() { store.Close() })

	if _, err := store.SchemaStatus(ctx); err == nil {
		t.Error("expected SchemaStatus to fail before Connect")
	}
	if err := store.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	st, err := store.SchemaStatus(ctx)
	if err != nil {
		t.Fatalf("SchemaStatus failed: %v", err)
	}
	if st.Current != 0 || st.UpToDate() {
		t.Fatalf("fresh database reported %+v", st)
	}

	var msgs []string
	applied, err := store.Migrate(ctx, func(msg string, _ ...interface{}) {
		msgs = append(msgs, msg)
	})
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if applied != st.Latest {
		t.Errorf("applied %d migrations, want %d", applied, st.Latest)
	}
	if len(msgs) == 0 {
		t.Error("expected migration progress messages")
	}
}

func TestSettingsProfile(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	got, ok, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if ok {
		t.Error("expected no saved profile on a fresh database")
	}
	if got != models.DefaultSettings() {
		t.Error("expected defaults when no profile is saved")
	}

	want := models.DefaultSettings()
	want.Font.Preset = "mr_beast"
	want.Chunk.MaxWordsPerLine = 3
	want.Formatting.Capitalize = false
	if err := store.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, ok, err = store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if !ok {
		t.Fatal("expected saved profile")
	}
	if got != want {
		t.Errorf("LoadSettings() = %+v, want %+v", got, want)
	}

	if err := store.ResetSettings(ctx); err != nil {
		t.Fatalf("ResetSettings failed: %v", err)
	}
	if _, ok, _ := store.LoadSettings(ctx); ok {
		t.Error("expected profile to be gone after reset")
	}
}

func TestDimensions(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	w, h, ok, err := store.Dimensions(ctx)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if !ok || w != 1080 || h != 1920 {
		t.Errorf("Dimensions() = %d, %d, %v; want seeded 1080x1920", w, h, ok)
	}

	if err := store.SetDimensions(ctx, 0, 0); err != nil {
		t.Fatalf("SetDimensions failed: %v", err)
	}
	if _, _, ok, _ := store.Dimensions(ctx); ok {
		t.Error("expected dimensions to be cleared")
	}
}

func TestAssetsAndSelection(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	ref, err := store.AddAsset(ctx, models.Asset{
		URL:      "https://cdn.example.com/a.mp4",
		MimeType: string(constants.MimeMP4),
	})
	if err != nil {
		t.Fatalf("AddAsset failed: %v", err)
	}
	if ref == "" {
		t.Fatal("expected a generated ref")
	}

	a, err := store.GetAsset(ctx, ref)
	if err != nil {
		t.Fatalf("GetAsset failed: %v", err)
	}
	if a.URL != "https://cdn.example.com/a.mp4" || a.CreatedAt.IsZero() {
		t.Errorf("unexpected asset %+v", a)
	}

	if _, err := store.GetAsset(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAsset(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.SetSelection(ctx, []string{"missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetSelection(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.SetSelection(ctx, []string{ref}); err != nil {
		t.Fatalf("SetSelection failed: %v", err)
	}
	sel, err := store.Selection(ctx)
	if err != nil {
		t.Fatalf("Selection failed: %v", err)
	}
	if len(sel) != 1 || sel[0] != ref {
		t.Errorf("Selection() = %v, want [%s]", sel, ref)
	}

	if err := store.SetSelection(ctx, nil); err != nil {
		t.Fatalf("clearing selection failed: %v", err)
	}
	if sel, _ := store.Selection(ctx); len(sel) != 0 {
		t.Errorf("expected empty selection, got %v", sel)
	}

	assets, err := store.ListAssets(ctx)
	if err != nil {
		t.Fatalf("ListAssets failed: %v", err)
	}
	if len(assets) != 1 {
		t.Errorf("expected 1 asset, got %d", len(assets))
	}
}

func TestElementsAndDrafts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	ref, err := store.AddAsset(ctx, models.Asset{URL: "https://cdn.example.com/b.mp4", MimeType: string(constants.MimeWebM)})
	if err != nil {
		t.Fatalf("AddAsset failed: %v", err)
	}
	if _, err := store.AddElement(ctx, ref); err != nil {
		t.Fatalf("AddElement failed: %v", err)
	}
	if _, err := store.AddElement(ctx, "unknown-ref"); err == nil {
		t.Error("expected foreign key violation for unknown asset")
	}

	n, err := store.CountElements(ctx)
	if err != nil {
		t.Fatalf("CountElements failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountElements() = %d, want 1", n)
	}

	id, err := store.SaveDraft(ctx)
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	if id < 1 {
		t.Errorf("SaveDraft() id = %d, want >= 1", id)
	}
}

func TestUploads(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	older := time.Now().Add(-time.Hour)
	if err := store.AddUpload(ctx, models.UploadRecord{AssetRef: "a1", URL: "https://x/1.mp4", CompletedAt: older}); err != nil {
		t.Fatalf("AddUpload failed: %v", err)
	}
	if err := store.AddUpload(ctx, models.UploadRecord{AssetRef: "a2", URL: "https://x/2.mp4", Preset: "tremor"}); err != nil {
		t.Fatalf("AddUpload failed: %v", err)
	}

	all, err := store.ListUploads(ctx, 0)
	if err != nil {
		t.Fatalf("ListUploads failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(all))
	}
	if all[0].AssetRef != "a2" {
		t.Errorf("expected newest upload first, got %s", all[0].AssetRef)
	}
	if all[0].ID == "" {
		t.Error("expected generated upload id")
	}

	limited, err := store.ListUploads(ctx, 1)
	if err != nil {
		t.Fatalf("ListUploads(1) failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 upload with limit, got %d", len(limited))
	}
}
