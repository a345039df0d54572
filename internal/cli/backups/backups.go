package backups

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/julianstephens/hermione/internal/backup"
	"github.com/julianstephens/hermione/internal/cli"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	snap, err := backup.NewManager(ctx.Store.Path()).Take(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	ctx.Printf("Snapshot created: %s (%s)\n", snap.Name(), humanize.Bytes(uint64(snap.Size)))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	snaps, err := mgr.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		ctx.Println("No snapshots found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(ctx.Out)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(mgr.Dir())
	t.AppendHeader(table.Row{"Name", "Taken", "Size"})
	for _, s := range snaps {
		t.AppendRow(table.Row{s.Name(), humanize.Time(s.TakenAt), humanize.Bytes(uint64(s.Size))})
	}
	t.Render()
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Snapshot file name or path."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	// the store must not hold the file while it is replaced
	ctx.Close()

	prev, err := backup.NewManager(ctx.Store.Path()).Restore(context.Background(), c.Name)
	if err != nil {
		return err
	}
	if prev.Path != "" {
		ctx.Printf("Current document saved as %s\n", prev.Name())
	}
	ctx.Printf("Restored design document from %s\n", c.Name)
	return nil
}
