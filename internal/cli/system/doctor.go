package system

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julianstephens/hermione/internal/backend"
	"github.com/julianstephens/hermione/internal/cli"
	"github.com/julianstephens/hermione/internal/keyring"
)

type DoctorCmd struct {
	Offline bool `help:"Skip the backend connectivity check."`
}

type check struct {
	name        string
	warnOnly    bool
	needsDB     bool
	needsSchema bool
	run         func(ctx context.Context, c *cli.Context) error
}

const (
	checkNameDB         = "Database reachable"
	checkNameMigrations = "Migrations complete"
)

func (cmd *DoctorCmd) checks() []check {
	checks := []check{
		{name: "Configuration", run: checkConfig},
		{name: checkNameDB, run: checkDBReachable},
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: checkNameMigrations, needsDB: true, run: checkMigrationsComplete},
		{name: "Settings profile", needsDB: true, needsSchema: true, run: checkSettingsProfile},
		{name: "Design dimensions", needsDB: true, needsSchema: true, warnOnly: true, run: checkDimensions},
		{name: "Keyring", warnOnly: true, run: checkKeyring},
	}
	if !cmd.Offline {
		checks = append(checks, check{name: "Backend reachable", warnOnly: true, run: checkBackend})
	}
	return checks
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	defer ctx.Close()

	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false
	schemaReady := false

	for _, chk := range cmd.checks() {
		if chk.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", chk.name)
			continue
		}
		if chk.needsSchema && !schemaReady {
			ctx.Printf("⊘ %s: SKIPPED (schema not up to date)\n", chk.name)
			continue
		}

		err := chk.run(bg, ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", chk.name)
		case chk.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", chk.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", chk.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}

		switch chk.name {
		case checkNameDB:
			dbReachable = err == nil
		case checkNameMigrations:
			schemaReady = err == nil
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkConfig(_ context.Context, c *cli.Context) error {
	if c.Config == nil {
		return errors.New("configuration not loaded")
	}
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if !c.ConfigExists {
		c.Printf("   using defaults (no file at %s)\n", c.ConfigPath)
	}
	return nil
}

func checkDBReachable(ctx context.Context, c *cli.Context) error {
	if err := c.Store.Connect(ctx); err != nil {
		return err
	}
	if err := c.Store.Ping(ctx); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx context.Context, c *cli.Context) error {
	st, err := c.Store.SchemaStatus(ctx)
	if err != nil {
		return err
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version %d is newer than supported version %d", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx context.Context, c *cli.Context) error {
	st, err := c.Store.SchemaStatus(ctx)
	if err != nil {
		return err
	}
	if !st.UpToDate() {
		return fmt.Errorf("%d pending migration(s); run 'hermione migrate'", len(st.Pending))
	}
	return nil
}

func checkSettingsProfile(ctx context.Context, c *cli.Context) error {
	if _, _, err := c.Store.LoadSettings(ctx); err != nil {
		return err
	}
	return nil
}

func checkDimensions(ctx context.Context, c *cli.Context) error {
	_, _, ok, err := c.Store.Dimensions(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("the design has no dimensions; videos cannot be loaded")
	}
	return nil
}

func checkKeyring(context.Context, *cli.Context) error {
	if !keyring.IsAvailable() {
		return errors.New("OS keyring unavailable; sign-in will not persist")
	}
	return nil
}

func checkBackend(ctx context.Context, c *cli.Context) error {
	resp, err := c.API().Do(ctx, backend.Request{Method: http.MethodGet, Path: c.Config.Network.ProbePath})
	if err != nil {
		return fmt.Errorf("cannot reach %s: %w", c.Config.Backend.Host, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%s answered %d", c.Config.Backend.Host, resp.StatusCode)
	}
	return nil
}
