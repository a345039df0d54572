package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/hermione/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if ctx.ConfigExists && !c.Force {
		ctx.Printf("Configuration already exists at: %s\n", ctx.ConfigPath)
	} else {
		data, err := ctx.Config.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(ctx.ConfigPath), 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(ctx.ConfigPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write configuration: %w", err)
		}
		ctx.ConfigExists = true
		ctx.Printf("Wrote configuration to: %s\n", ctx.ConfigPath)
	}

	if err := ctx.Config.EnsureDirectories(); err != nil {
		return err
	}

	if err := ctx.Open(context.Background()); err != nil {
		return err
	}
	defer ctx.Close()

	ctx.Printf("Initialized hermione storage at: %s\n", ctx.Store.Path())
	return nil
}
