// Package cli implements the caixa subcommands on top of the shared store.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/terraincognita07/caixa/internal/app"
	"github.com/terraincognita07/caixa/internal/config"
	"github.com/terraincognita07/caixa/internal/db"
	"github.com/terraincognita07/caixa/internal/logging"
	"github.com/terraincognita07/caixa/internal/services"
)

var (
	errUsage       = errors.New("usage")
	errNotTerminal = errors.New("stdin is not a terminal")
)

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// Env carries what every command needs: settings, streams and a way to open the store.
type Env struct {
	Config config.Config
	Logger *logging.SlogLogger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Open defaults to app.Open.
	Open func(config.Config, *logging.SlogLogger) (*app.App, error)

	reader *bufio.Reader
}

func NewEnv(cfg config.Config, logger *logging.SlogLogger) *Env {
	return &Env{
		Config: cfg,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Register adds every caixa command to commander, grouped like the help output shows them.
func Register(commander *subcommands.Commander, env *Env) {
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&registerCmd{env: env}, "account")
	commander.Register(&loginCmd{env: env}, "account")
	commander.Register(&logoutCmd{env: env}, "account")
	commander.Register(&whoamiCmd{env: env}, "account")
	commander.Register(&resetPasswordCmd{env: env}, "account")

	commander.Register(&addEntryCmd{env: env}, "ledger")
	commander.Register(&entriesCmd{env: env}, "ledger")
	commander.Register(&removeEntryCmd{env: env}, "ledger")
	commander.Register(&clearEntriesCmd{env: env}, "ledger")
	commander.Register(&summaryCmd{env: env}, "ledger")
	commander.Register(&paySalaryCmd{env: env}, "ledger")

	commander.Register(&addTitleCmd{env: env}, "roster")
	commander.Register(&titlesCmd{env: env}, "roster")
	commander.Register(&removeTitleCmd{env: env}, "roster")
	commander.Register(&addEmployeeCmd{env: env}, "roster")
	commander.Register(&employeesCmd{env: env}, "roster")
	commander.Register(&removeEmployeeCmd{env: env}, "roster")

	commander.Register(&themeCmd{env: env}, "store")
	commander.Register(&exportCmd{env: env}, "store")
	commander.Register(&importCmd{env: env}, "store")
	commander.Register(&serveCmd{env: env}, "store")
}

// run opens the store, hands it to fn and turns the outcome into an exit status.
func (env *Env) run(ctx context.Context, fn func(ctx context.Context, application *app.App) error) subcommands.ExitStatus {
	open := env.Open
	if open == nil {
		open = app.Open
	}
	application, err := open(env.Config, env.Logger)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := application.Close(); err != nil {
			fmt.Fprintf(env.Stderr, "Error closing store: %v\n", err)
		}
	}()

	if err := fn(ctx, application); err != nil {
		fmt.Fprintln(env.Stderr, env.describe(application, err))
		if errors.Is(err, errUsage) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (env *Env) describe(application *app.App, err error) string {
	if code := services.ErrorCode(err); code != "" {
		return application.I18n.Translate(env.Config.DefaultLanguage, "errors."+code)
	}
	var decodeErr *db.DecodeError
	if errors.As(err, &decodeErr) {
		return fmt.Sprintf("%s %v", application.I18n.Translate(env.Config.DefaultLanguage, "errors.storage"), err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// say prints a localized line.
func (env *Env) say(application *app.App, key string, args ...any) {
	fmt.Fprintln(env.Stdout, application.I18n.Translatef(env.Config.DefaultLanguage, key, args...))
}

func (env *Env) text(application *app.App, key string) string {
	return application.I18n.Translate(env.Config.DefaultLanguage, key)
}
