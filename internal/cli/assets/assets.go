package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/julianstephens/hermione/internal/cli"
	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/host"
)

type AssetAddCmd struct {
	URL    string `arg:"" help:"Source URL of the video."`
	Mime   string `help:"Video MIME type." default:"video/mp4"`
	Select bool   `help:"Select the new asset." short:"s"`
}

func (c *AssetAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if err := ctx.Open(bg); err != nil {
		return err
	}
	defer ctx.Close()

	doc := host.NewLocalDocument(ctx.Store)
	ref, err := doc.UploadAsset(bg, host.UploadRequest{
		Type:         constants.AssetVideo,
		URL:          strings.TrimSpace(c.URL),
		ThumbnailURL: constants.PlaceholderThumbnail,
		MimeType:     constants.MimeType(c.Mime),
	})
	if err != nil {
		return fmt.Errorf("failed to add asset: %w", err)
	}
	if c.Select {
		if err := ctx.Store.SetSelection(bg, []string{ref}); err != nil {
			return fmt.Errorf("failed to select asset: %w", err)
		}
	}

	ctx.Printf("Added asset %s\n", ref)
	return nil
}

type AssetListCmd struct{}

func (c *AssetListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if err := ctx.Open(bg); err != nil {
		return err
	}
	defer ctx.Close()

	assets, err := ctx.Store.ListAssets(bg)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		ctx.Println("No assets in the design.")
		return nil
	}
	selection, err := ctx.Store.Selection(bg)
	if err != nil {
		return err
	}
	selected := make(map[string]bool, len(selection))
	for _, ref := range selection {
		selected[ref] = true
	}

	t := table.NewWriter()
	t.SetOutputMirror(ctx.Out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"", "Ref", "Type", "Source", "Added"})
	for _, a := range assets {
		mark := ""
		if selected[a.Ref] {
			mark = "*"
		}
		src := a.URL
		if a.ParentRef != "" {
			src = "captioned from " + a.ParentRef
		}
		t.AppendRow(table.Row{mark, a.Ref, a.MimeType, src, humanize.Time(a.CreatedAt)})
	}
	t.Render()
	return nil
}

type AssetSelectCmd struct {
	Refs []string `arg:"" optional:"" help:"Asset refs to select. Omit to clear the selection."`
}

func (c *AssetSelectCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if err := ctx.Open(bg); err != nil {
		return err
	}
	defer ctx.Close()

	if err := ctx.Store.SetSelection(bg, c.Refs); err != nil {
		return fmt.Errorf("failed to update selection: %w", err)
	}
	if len(c.Refs) == 0 {
		ctx.Println("Selection cleared.")
	} else {
		ctx.Printf("Selected %d asset(s).\n", len(c.Refs))
	}
	return nil
}

// DesignSizeCmd shows the page size, or sets it when both dimensions are
// given. --clear removes the dimensions.
type DesignSizeCmd struct {
	Width  int  `arg:"" optional:"" help:"Page width in pixels."`
	Height int  `arg:"" optional:"" help:"Page height in pixels."`
	Clear  bool `help:"Remove the page dimensions."`
}

func (c *DesignSizeCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if err := ctx.Open(bg); err != nil {
		return err
	}
	defer ctx.Close()

	switch {
	case c.Clear:
		if err := ctx.Store.SetDimensions(bg, 0, 0); err != nil {
			return err
		}
		ctx.Println("Design dimensions cleared.")
		return nil
	case c.Width > 0 && c.Height > 0:
		if err := ctx.Store.SetDimensions(bg, c.Width, c.Height); err != nil {
			return err
		}
		ctx.Printf("Design size set to %dx%d.\n", c.Width, c.Height)
		return nil
	case c.Width != 0 || c.Height != 0:
		return errors.New("width and height must both be positive")
	}

	w, h, ok, err := ctx.Store.Dimensions(bg)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Design has no fixed dimensions.")
		return nil
	}
	ctx.Printf("%dx%d\n", w, h)
	return nil
}

type HistoryCmd struct {
	Limit int `help:"Number of uploads to show (0 for all)." default:"10" short:"n"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if err := ctx.Open(bg); err != nil {
		return err
	}
	defer ctx.Close()

	uploads, err := ctx.Store.ListUploads(bg, c.Limit)
	if err != nil {
		return err
	}
	if len(uploads) == 0 {
		ctx.Println("No uploads yet.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(ctx.Out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Asset", "Source", "Preset", "Size", "Completed"})
	for _, u := range uploads {
		size := "-"
		if u.Width > 0 && u.Height > 0 {
			size = fmt.Sprintf("%dx%d", u.Width, u.Height)
		}
		t.AppendRow(table.Row{u.AssetRef, u.ParentRef, u.Preset, size, humanize.Time(u.CompletedAt)})
	}
	t.Render()
	return nil
}
