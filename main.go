package main

import (
	"time"

	"github.com/alecthomas/kong"
	"github.com/gentoomaniac/logging"
	"github.com/rs/zerolog/log"

	"github.com/gentoomaniac/backup-pool/pkg/config"
)

var (
	version = "unset"
	commit  = "unset"
	binName = "backup-pool"
	builtBy = "manual"
	date    = "unset"
)

var cli struct {
	logging.LoggingConfig

	Config string `short:"c" help:"Path to the pool configuration file" default:"/etc/backup-pool/config.yaml" type:"path"`
	Full   bool   `help:"Force a full backup, resetting incremental state"`

	Collect CollectCmd `cmd:"" help:"Collect configured directories into daily archives"`
	Stage   StageCmd   `cmd:"" help:"Copy each ready peer's collected data into the staging tree"`
	Purge   PurgeCmd   `cmd:"" help:"Remove data older than the configured retention"`
	Span    SpanCmd    `cmd:"" help:"Interactively split staged data across multiple discs"`

	Version kong.VersionFlag `short:"v" help:"Display version."`
}

func main() {
	ctx := kong.Parse(&cli, kong.UsageOnError(), kong.Vars{
		"version": version,
		"commit":  commit,
		"binName": binName,
		"builtBy": builtBy,
		"date":    date,
	})
	logging.Setup(&cli.LoggingConfig)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		log.Error().Err(err).Str("path", cli.Config).Msg("failed loading configuration")
		ctx.Exit(1)
	}

	now := time.Now()
	switch ctx.Command() {
	case "collect":
		err = collect(cfg, &cli.Collect, cli.Full, now)
	case "stage":
		err = stage(cfg, &cli.Stage, cli.Full, now)
	case "purge":
		err = purge(cfg, &cli.Purge, now)
	case "span":
		err = span(cfg, &cli.Span)
	}
	if err != nil {
		log.Error().Err(err).Str("action", ctx.Command()).Msg("action failed")
		ctx.Exit(1)
	}
	ctx.Exit(0)
}
