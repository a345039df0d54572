package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/hermione/internal/backup"
	"github.com/julianstephens/hermione/internal/cli"
)

type MigrateCmd struct {
	Status     bool `help:"Show the schema version without applying anything."`
	NoSnapshot bool `help:"Skip the snapshot taken before migrating an existing document."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	if err := ctx.Store.Connect(bg); err != nil {
		return err
	}
	defer ctx.Close()

	st, err := ctx.Store.SchemaStatus(bg)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if c.Status {
		ctx.Printf("Schema version: %d (latest %d)\n", st.Current, st.Latest)
		if !st.UpToDate() {
			ctx.Printf("%d migration(s) pending.\n", len(st.Pending))
		}
		return nil
	}

	if st.Current > 0 && !st.UpToDate() && !c.NoSnapshot {
		snap, err := backup.NewManager(ctx.Store.Path()).Take(bg)
		if err != nil {
			return fmt.Errorf("failed to snapshot before migrating: %w", err)
		}
		ctx.Printf("Snapshot saved: %s\n", snap.Name())
	}

	count, err := ctx.Store.Migrate(bg, func(msg string, keyvals ...interface{}) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
