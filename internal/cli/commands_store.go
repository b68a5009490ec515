package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/terraincognita07/caixa/internal/api"
	"github.com/terraincognita07/caixa/internal/app"
	"github.com/terraincognita07/caixa/internal/services"
)

const shutdownTimeout = 10 * time.Second

type themeCmd struct {
	env *Env
}

func (*themeCmd) Name() string     { return "theme" }
func (*themeCmd) Synopsis() string { return "show or switch the dark theme preference" }
func (*themeCmd) Usage() string {
	return `caixa theme [dark|light]

  Without an argument prints the current theme.
`
}

func (*themeCmd) SetFlags(*flag.FlagSet) {}

func (c *themeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		preferences := application.Services.Preferences
		if f.NArg() == 0 {
			enabled, err := preferences.DarkTheme()
			if err != nil {
				return err
			}
			if enabled {
				fmt.Fprintln(c.env.Stdout, "dark")
			} else {
				fmt.Fprintln(c.env.Stdout, "light")
			}
			return nil
		}

		choice, err := singleArg(f, "theme")
		if err != nil {
			return err
		}
		switch strings.ToLower(choice) {
		case "dark", "escuro":
			if err := preferences.SetDarkTheme(true); err != nil {
				return err
			}
			c.env.say(application, "cli.theme_dark")
		case "light", "claro":
			if err := preferences.SetDarkTheme(false); err != nil {
				return err
			}
			c.env.say(application, "cli.theme_light")
		default:
			return usageErrorf("unknown theme %q, expected dark or light", choice)
		}
		return nil
	})
}

type exportCmd struct {
	env    *Env
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write every stored record to a JSON backup" }
func (*exportCmd) Usage() string {
	return `caixa export [-o <file>]

  Writes the backup to stdout unless -o is given.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Backup file to write.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		snapshot, err := application.Services.Backup.Export()
		if err != nil {
			return err
		}
		encoded, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("encode backup: %w", err)
		}
		encoded = append(encoded, '\n')

		if c.output == "" {
			_, err := c.env.Stdout.Write(encoded)
			return err
		}
		if err := os.WriteFile(c.output, encoded, 0o600); err != nil {
			return fmt.Errorf("write %s: %w", c.output, err)
		}
		c.env.say(application, "cli.exported", len(snapshot.Records))
		return nil
	})
}

type importCmd struct {
	env *Env
	yes bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "restore a backup or a browser localStorage dump" }
func (*importCmd) Usage() string {
	return `caixa import [-yes] <file>

  Accepts files written by "caixa export" and flat JSON dumps of the browser
  localStorage. Nothing is written unless every record is valid.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		path, err := singleArg(f, "backup file")
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		snapshot, err := services.ParseSnapshot(data)
		if err != nil {
			return err
		}

		confirmed, err := c.env.confirm(application, "confirm.import", c.yes)
		if err != nil {
			return err
		}
		if !confirmed {
			c.env.say(application, "cli.cancelled")
			return nil
		}

		report, err := application.Services.Backup.Import(snapshot)
		if err != nil {
			return err
		}
		c.env.say(application, "cli.imported", len(report.Keys), report.HashedPasswords)
		return nil
	})
}

type serveCmd struct {
	env  *Env
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the JSON API over the local store" }
func (*serveCmd) Usage() string {
	return `caixa serve [-port <port>]

  Listens until SIGINT or SIGTERM, then shuts down gracefully.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "port", "", "Port to listen on. Defaults to CAIXA_PORT.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(ctx context.Context, application *app.App) error {
		cfg := application.Config
		logger := application.Logger
		if cfg.GeneratedSecret {
			logger.Warn(ctx, "CAIXA_SECRET_KEY is empty, using a random key; sessions end on restart")
		}

		handler, err := api.NewHandler(application.Services, api.Options{
			SecretKey:    cfg.SecretKey,
			CookieSecure: cfg.CookieSecure,
			I18n:         application.I18n,
			Logger:       logger,
		})
		if err != nil {
			return fmt.Errorf("handler init failed: %w", err)
		}
		server := api.NewApp(handler, c.env.Stdout)

		sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stopSignals()

		go func() {
			<-sigCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.ShutdownWithContext(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "server shutdown failed", "error", err)
			}
		}()

		port := cfg.Port
		if c.port != "" {
			port = c.port
		}
		zone := time.UTC
		if cfg.Location != nil {
			zone = cfg.Location
		}
		logger.Info(ctx, "caixa listening",
			"addr", "http://0.0.0.0:"+port,
			"db", cfg.DBPath,
			"ledger_scope", application.Services.Ledger.Scope(),
			"tz", zone.String(),
		)
		if err := server.Listen(":" + port); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	})
}
