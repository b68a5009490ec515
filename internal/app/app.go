// Package app opens the store and wires the services shared by the CLI and the HTTP adapter.
package app

import (
	"fmt"

	"github.com/terraincognita07/caixa/internal/config"
	"github.com/terraincognita07/caixa/internal/db"
	"github.com/terraincognita07/caixa/internal/i18n"
	"github.com/terraincognita07/caixa/internal/logging"
	"github.com/terraincognita07/caixa/internal/services"
	"gorm.io/gorm"
)

type App struct {
	Config       config.Config
	Logger       *logging.SlogLogger
	Database     *gorm.DB
	Repositories *db.Repositories
	Services     *services.Set
	I18n         *i18n.Manager
}

func Open(cfg config.Config, logger *logging.SlogLogger) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	scope, err := services.ParseLedgerScope(cfg.LedgerScope)
	if err != nil {
		return nil, err
	}

	messages, err := i18n.NewManager(cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	repos := db.NewRepositories(database)
	return &App{
		Config:       cfg,
		Logger:       logger,
		Database:     database,
		Repositories: repos,
		Services:     services.NewSet(StoresFor(repos), scope),
		I18n:         messages,
	}, nil
}

// StoresFor adapts the typed repositories to the service ports.
func StoresFor(repos *db.Repositories) services.Stores {
	return services.Stores{
		Accounts:    repos.Accounts,
		Sessions:    repos.Sessions,
		Ledger:      repos.Ledger,
		Titles:      repos.Titles,
		Employees:   repos.Employees,
		Preferences: repos.Preferences,
		Records:     repos.Records,
		Validate:    db.ValidateValue,
		AccountsKey: db.AccountsKey,
	}
}

func (a *App) Close() error {
	sqlDB, err := a.Database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
