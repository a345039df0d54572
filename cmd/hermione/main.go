package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/hermione/internal/cli"
	"github.com/julianstephens/hermione/internal/cli/account"
	"github.com/julianstephens/hermione/internal/cli/assets"
	"github.com/julianstephens/hermione/internal/cli/backups"
	"github.com/julianstephens/hermione/internal/cli/settings"
	"github.com/julianstephens/hermione/internal/cli/system"
	"github.com/julianstephens/hermione/internal/config"
	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`
	Backend string `help:"Override the captioning backend host."`

	Init    system.InitCmd    `cmd:"" help:"Initialize hermione storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive editor." default:"1"`
	Login   struct {
		Status account.LoginStatusCmd `cmd:"" help:"Show the authentication status." default:"1"`
		Logout account.LogoutCmd      `cmd:"" help:"Forget the stored email and sign this device out."`
	} `cmd:"" help:"Manage the account session."`
	Settings struct {
		Show    settings.SettingsShowCmd  `cmd:"" help:"Show the saved settings profile." default:"1"`
		Set     settings.SettingsSetCmd   `cmd:"" help:"Change settings."`
		Reset   settings.SettingsResetCmd `cmd:"" help:"Reset settings to defaults."`
		Presets settings.PresetsCmd       `cmd:"" help:"List subtitle presets."`
	} `cmd:"" help:"Manage subtitle settings."`
	Asset struct {
		Add    assets.AssetAddCmd    `cmd:"" help:"Add a video to the design."`
		List   assets.AssetListCmd   `cmd:"" help:"List videos in the design." default:"1"`
		Select assets.AssetSelectCmd `cmd:"" help:"Select videos."`
	} `cmd:"" help:"Manage design assets."`
	Design struct {
		Size assets.DesignSizeCmd `cmd:"" help:"Show or set the page size." default:"1"`
	} `cmd:"" help:"Manage the design document."`
	History assets.HistoryCmd `cmd:"" help:"Show recent uploads."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Snapshot the design document." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List snapshots."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore the design document from a snapshot."`
	} `cmd:"" help:"Manage design document snapshots."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Subtitle editor for short-form video"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, path, exists, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.Backend != "" {
		cfg.Backend.Host = strings.TrimRight(CLI.Backend, "/")
	}

	if err := logger.Init(logger.Config{
		Debug:   CLI.Debug || cfg.Logging.Debug,
		DataDir: cfg.Logging.Dir,
		Quiet:   ctx.Command() == "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	err = ctx.Run(cli.NewContext(cfg, path, exists))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
