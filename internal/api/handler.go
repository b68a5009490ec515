// Package api exposes the finance stores as a local JSON API.
package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/caixa/internal/i18n"
	"github.com/terraincognita07/caixa/internal/logging"
	"github.com/terraincognita07/caixa/internal/services"
)

const defaultAuthTokenTTL = 30 * 24 * time.Hour

type Options struct {
	SecretKey    string
	CookieSecure bool
	I18n         *i18n.Manager
	Logger       logging.Logger
	TokenTTL     time.Duration
}

type Handler struct {
	accounts     *services.AccountService
	ledger       *services.LedgerService
	roster       *services.RosterService
	preferences  *services.PreferencesService
	i18n         *i18n.Manager
	logger       logging.Logger
	secretKey    []byte
	cookieSecure bool
	tokenTTL     time.Duration
	loginLimiter *attemptLimiter
	now          func() time.Time
}

func NewHandler(set *services.Set, options Options) (*Handler, error) {
	if set == nil {
		return nil, errors.New("services are required")
	}
	if strings.TrimSpace(options.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}
	if options.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}

	var logger logging.Logger = logging.Discard()
	if options.Logger != nil {
		logger = options.Logger
	}
	ttl := options.TokenTTL
	if ttl <= 0 {
		ttl = defaultAuthTokenTTL
	}

	return &Handler{
		accounts:     set.Accounts,
		ledger:       set.Ledger,
		roster:       set.Roster,
		preferences:  set.Preferences,
		i18n:         options.I18n,
		logger:       logger.With("component", "api"),
		secretKey:    []byte(options.SecretKey),
		cookieSecure: options.CookieSecure,
		tokenTTL:     ttl,
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:          time.Now,
	}, nil
}
