package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/julianstephens/hermione/internal/app"
	"github.com/julianstephens/hermione/internal/auth"
	"github.com/julianstephens/hermione/internal/backend"
	"github.com/julianstephens/hermione/internal/captions"
	"github.com/julianstephens/hermione/internal/config"
	"github.com/julianstephens/hermione/internal/host"
	"github.com/julianstephens/hermione/internal/logger"
	"github.com/julianstephens/hermione/internal/models"
	"github.com/julianstephens/hermione/internal/netmon"
	"github.com/julianstephens/hermione/internal/storage/sqlite"
)

type Context struct {
	Config       *config.Config
	ConfigPath   string
	ConfigExists bool
	Store        *sqlite.Store
	HTTP         backend.HTTPDoer
	Out          io.Writer
}

func NewContext(cfg *config.Config, configPath string, exists bool) *Context {
	return &Context{
		Config:       cfg,
		ConfigPath:   configPath,
		ConfigExists: exists,
		Store:        sqlite.NewStore(cfg.Storage.Path),
		Out:          os.Stdout,
	}
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Open opens the local design document, applying pending migrations
func (c *Context) Open(ctx context.Context) error {
	if err := c.Store.Open(ctx); err != nil {
		return fmt.Errorf("failed to open design document: %w", err)
	}
	return nil
}

func (c *Context) Close() {
	if err := c.Store.Close(); err != nil {
		logger.Warn("failed to close store", "error", err)
	}
}

func (c *Context) httpClient() backend.HTTPDoer {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: c.Config.RequestTimeout()}
}

// API returns a client for the backend host
func (c *Context) API() *backend.Client {
	return backend.New(c.Config.Backend.Host, c.Config.RequestTimeout(), c.httpClient())
}

// AuthBackend returns the authentication service of the backend host
func (c *Context) AuthBackend() auth.Backend {
	return auth.NewHTTPBackend(c.API(), auth.KeyringTokens{})
}

// LoadSettings returns the saved settings profile, or the defaults when
// none was saved
func (c *Context) LoadSettings(ctx context.Context) models.Settings {
	s, ok, err := c.Store.LoadSettings(ctx)
	if err != nil {
		logger.Warn("failed to load settings profile", "error", err)
	}
	if err != nil || !ok {
		return models.DefaultSettings()
	}
	return s
}

// NewController wires the editor over the opened store
func (c *Context) NewController(ctx context.Context) *app.Controller {
	api := c.API()
	probe := netmon.NewHTTPProbe(c.httpClient(), c.Config.Backend.Host+c.Config.Network.ProbePath)

	return app.New(app.Deps{
		Settings: c.LoadSettings(ctx),
		Auth:     auth.NewMachine(auth.NewHTTPBackend(api, auth.KeyringTokens{}), auth.KeyringEmails{}),
		Document: host.NewLocalDocument(c.Store),
		Captions: captions.NewClient(api, c.Config.Backend.PreviewModel, c.Config.Backend.TranscribeModel),
		Monitor:  netmon.New(probe, probe, c.Config.SampleInterval(), c.Config.Network.StrongThresholdMbps),
		Library:  c.Store,
	})
}
