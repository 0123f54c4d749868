package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"

	"sidekick/internal/cli"
	"sidekick/internal/config"
	"sidekick/internal/constants"
	"sidekick/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/sidekick/config.yaml"`
	Debug   bool   `help:"Enable debug logging."`

	Run     cli.RunCmd     `cmd:"" help:"Start the reminder engine with the interactive dashboard." default:"1"`
	Serve   cli.ServeCmd   `cmd:"" help:"Run the reminder engine headless."`
	History cli.HistoryCmd `cmd:"" help:"Show recent notification history."`
	Backup  struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a history snapshot." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available history snapshots."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the history from a snapshot."`
	} `cmd:"" help:"Manage notification history snapshots."`
	Token   struct {
		Set    cli.TokenSetCmd    `cmd:"" help:"Store the backend API token."`
		Clear  cli.TokenClearCmd  `cmd:"" help:"Remove the backend API token."`
		Status cli.TokenStatusCmd `cmd:"" help:"Check keyring and token status."`
		SetDb  cli.TokenSetDbCmd  `cmd:"" name:"set-db" help:"Store the postgres history connection string."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
	Notify cli.NotifyCmd `cmd:"" hidden:"" help:"Send a notification (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Schedule reminder companion for habits, routines and todos"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":           constants.Version,
			"history_page_size": strconv.Itoa(constants.HistoryDefaultPageSize),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: CLI.Config,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
