package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/flock"

	"github.com/julianstephens/hermione/internal/cli"
	"github.com/julianstephens/hermione/internal/logger"
	"github.com/julianstephens/hermione/internal/tui"
)

var ErrAlreadyRunning = errors.New("another hermione session is already running")

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Config.EnsureDirectories(); err != nil {
		return err
	}
	lock := flock.New(ctx.Config.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return ErrAlreadyRunning
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release lock", "error", err)
		}
	}()

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ctx.Open(runCtx); err != nil {
		return err
	}
	defer ctx.Close()

	ctrl := ctx.NewController(runCtx)
	ctrl.Start(runCtx)
	defer ctrl.Teardown()

	logger.Info("editor session started", "backend", ctx.Config.Backend.Host)
	if err := tui.Run(runCtx, ctrl); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}
