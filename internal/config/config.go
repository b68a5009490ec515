// Package config reads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/terraincognita07/caixa/internal/logging"
	"github.com/terraincognita07/caixa/internal/security"
)

type Config struct {
	DBPath          string `env:"CAIXA_DB_PATH" envDefault:"data/caixa.db"`
	Port            string `env:"CAIXA_PORT" envDefault:"8080"`
	SecretKey       string `env:"CAIXA_SECRET_KEY"`
	LedgerScope     string `env:"CAIXA_LEDGER_SCOPE" envDefault:"shared"`
	DefaultLanguage string `env:"CAIXA_DEFAULT_LANGUAGE" envDefault:"pt"`
	LogLevel        string `env:"CAIXA_LOG_LEVEL" envDefault:"info"`
	LogFormat       string `env:"CAIXA_LOG_FORMAT" envDefault:"text"`
	CookieSecure    bool   `env:"CAIXA_COOKIE_SECURE" envDefault:"false"`
	TimeZone        string `env:"TZ" envDefault:"UTC"`

	// GeneratedSecret is set when SecretKey was empty and a random one was made.
	GeneratedSecret bool           `env:"-"`
	Location        *time.Location `env:"-"`
}

// Load reads envFile when it exists, then the process environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return parse(env.Options{})
}

// LoadFrom parses an explicit variable set instead of the process environment.
func LoadFrom(environment map[string]string) (Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(options env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, options); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.SecretKey) == "" {
		secret, err := security.NewSecretKey()
		if err != nil {
			return Config{}, fmt.Errorf("generate secret key: %w", err)
		}
		cfg.SecretKey = secret
		cfg.GeneratedSecret = true
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("CAIXA_PORT: invalid port %q", cfg.Port)
	}

	cfg.LedgerScope = strings.ToLower(strings.TrimSpace(cfg.LedgerScope))
	if cfg.LedgerScope != "shared" && cfg.LedgerScope != "account" {
		return fmt.Errorf("CAIXA_LEDGER_SCOPE: expected shared or account, got %q", cfg.LedgerScope)
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("CAIXA_LOG_LEVEL: %w", err)
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("CAIXA_LOG_FORMAT: expected text or json, got %q", cfg.LogFormat)
	}

	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("TZ: %w", err)
	}
	cfg.Location = location
	return nil
}

// EnvFile returns the .env path to read, honouring CAIXA_ENV_FILE.
func EnvFile() string {
	if path := os.Getenv("CAIXA_ENV_FILE"); path != "" {
		return path
	}
	return ".env"
}
