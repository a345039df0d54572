package assets

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/hermione/internal/cli"
	"github.com/julianstephens/hermione/internal/config"
	"github.com/julianstephens/hermione/internal/models"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "test.db")

	ctx := cli.NewContext(&cfg, "", false)
	out := &bytes.Buffer{}
	ctx.Out = out
	t.Cleanup(ctx.Close)
	return ctx, out
}

func withStore(t *testing.T, ctx *cli.Context, fn func(context.Context)) {
	t.Helper()
	bg := context.Background()
	if err := ctx.Open(bg); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer ctx.Close()
	fn(bg)
}

func TestAssetAddCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	cmd := &AssetAddCmd{URL: " https://cdn.example/clip.mp4 ", Mime: "video/mp4", Select: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("asset add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Added asset") {
		t.Errorf("unexpected output %q", out.String())
	}

	withStore(t, ctx, func(bg context.Context) {
		assets, err := ctx.Store.ListAssets(bg)
		if err != nil {
			t.Fatalf("ListAssets failed: %v", err)
		}
		if len(assets) != 1 || assets[0].URL != "https://cdn.example/clip.mp4" {
			t.Fatalf("unexpected assets %+v", assets)
		}
		sel, err := ctx.Store.Selection(bg)
		if err != nil {
			t.Fatalf("Selection failed: %v", err)
		}
		if len(sel) != 1 || sel[0] != assets[0].Ref {
			t.Errorf("selection = %v, want [%s]", sel, assets[0].Ref)
		}
	})
}

func TestAssetAddCmd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  AssetAddCmd
	}{
		{name: "empty url", cmd: AssetAddCmd{URL: "  ", Mime: "video/mp4"}},
		{name: "unsupported mime", cmd: AssetAddCmd{URL: "https://cdn.example/a.gif", Mime: "image/gif"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAssetListAndSelect(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&AssetListCmd{}).Run(ctx); err != nil {
		t.Fatalf("asset list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No assets") {
		t.Errorf("unexpected empty output %q", out.String())
	}

	var ref string
	withStore(t, ctx, func(bg context.Context) {
		var err error
		ref, err = ctx.Store.AddAsset(bg, models.Asset{URL: "https://cdn.example/a.mp4", MimeType: "video/mp4"})
		if err != nil {
			t.Fatalf("AddAsset failed: %v", err)
		}
	})

	if err := (&AssetSelectCmd{Refs: []string{ref}}).Run(ctx); err != nil {
		t.Fatalf("asset select failed: %v", err)
	}
	if err := (&AssetSelectCmd{Refs: []string{"missing"}}).Run(ctx); err == nil {
		t.Error("expected error selecting unknown asset")
	}

	out.Reset()
	if err := (&AssetListCmd{}).Run(ctx); err != nil {
		t.Fatalf("asset list failed: %v", err)
	}
	if !strings.Contains(out.String(), ref) || !strings.Contains(out.String(), "*") {
		t.Errorf("list missing selected asset:\n%s", out.String())
	}

	out.Reset()
	if err := (&AssetSelectCmd{}).Run(ctx); err != nil {
		t.Fatalf("clearing selection failed: %v", err)
	}
	if !strings.Contains(out.String(), "Selection cleared.") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestDesignSizeCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&DesignSizeCmd{}).Run(ctx); err != nil {
		t.Fatalf("design size failed: %v", err)
	}
	if !strings.Contains(out.String(), "no fixed dimensions") {
		t.Errorf("unexpected output %q", out.String())
	}

	if err := (&DesignSizeCmd{Width: 1080, Height: 1920}).Run(ctx); err != nil {
		t.Fatalf("setting size failed: %v", err)
	}
	out.Reset()
	if err := (&DesignSizeCmd{}).Run(ctx); err != nil {
		t.Fatalf("design size failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != "1080x1920" {
		t.Errorf("size = %q, want 1080x1920", out.String())
	}

	if err := (&DesignSizeCmd{Width: 1080}).Run(ctx); err == nil {
		t.Error("expected error for missing height")
	}

	if err := (&DesignSizeCmd{Clear: true}).Run(ctx); err != nil {
		t.Fatalf("clearing size failed: %v", err)
	}
	withStore(t, ctx, func(bg context.Context) {
		if _, _, ok, err := ctx.Store.Dimensions(bg); err != nil || ok {
			t.Errorf("dimensions still set (ok=%v, err=%v)", ok, err)
		}
	})
}

func TestHistoryCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&HistoryCmd{Limit: 10}).Run(ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out.String(), "No uploads yet.") {
		t.Errorf("unexpected output %q", out.String())
	}

	withStore(t, ctx, func(bg context.Context) {
		recs := []models.UploadRecord{
			{AssetRef: "older", URL: "https://x/1.mp4", CompletedAt: time.Now().Add(-time.Hour)},
			{AssetRef: "newer", URL: "https://x/2.mp4", Preset: "tremor", Width: 1080, Height: 1920},
		}
		for _, r := range recs {
			if err := ctx.Store.AddUpload(bg, r); err != nil {
				t.Fatalf("AddUpload failed: %v", err)
			}
		}
	})

	out.Reset()
	if err := (&HistoryCmd{Limit: 1}).Run(ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "newer") || strings.Contains(got, "older") {
		t.Errorf("expected only the newest upload:\n%s", got)
	}
	if !strings.Contains(got, "1080x1920") || !strings.Contains(got, "tremor") {
		t.Errorf("history missing details:\n%s", got)
	}
}
