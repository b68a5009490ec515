package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/google/subcommands"
	"github.com/terraincognita07/caixa/internal/cli"
	"github.com/terraincognita07/caixa/internal/config"
	"github.com/terraincognita07/caixa/internal/logging"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stderr))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg, err := config.Load(config.EnvFile())
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return int(subcommands.ExitUsageError)
	}
	logger, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error configuring logger: %v\n", err)
		return int(subcommands.ExitUsageError)
	}
	time.Local = cfg.Location

	flags := flag.NewFlagSet(path.Base(args[0]), flag.ContinueOnError)
	flags.SetOutput(stderr)
	commander := subcommands.NewCommander(flags, flags.Name())
	cli.Register(commander, cli.NewEnv(cfg, logger))
	if err := flags.Parse(args[1:]); err != nil {
		return int(subcommands.ExitUsageError)
	}
	return int(commander.Execute(ctx))
}
