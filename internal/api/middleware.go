package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/caixa/internal/models"
	"github.com/terraincognita07/caixa/internal/services"
)

const (
	authCookieName     = "caixa_auth"
	languageCookieName = "caixa_lang"
	contextSessionKey  = "current_session"
	contextLanguageKey = "current_language"
)

func currentSession(c *fiber.Ctx) (models.Session, bool) {
	session, ok := c.Locals(contextSessionKey).(models.Session)
	return session, ok
}

func (handler *Handler) currentLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(contextLanguageKey).(string); ok && language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	cookieLanguage := c.Cookies(languageCookieName)
	language := handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	}
	if cookieLanguage != language {
		handler.setLanguageCookie(c, language)
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    language,
		Path:     "/",
		HTTPOnly: false,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().AddDate(1, 0, 0),
	})
}

// AuthRequired admits the request only when the cookie token names the account
// of the active store session.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	session, err := handler.authenticateRequest(c)
	if errors.Is(err, services.ErrNotAuthenticated) {
		return handler.respondError(c, services.ErrNotAuthenticated)
	}
	if err != nil {
		return handler.respondError(c, err)
	}
	c.Locals(contextSessionKey, session)
	return c.Next()
}

// EmployeeAccess rejects PF sessions before any roster handler runs.
func (handler *Handler) EmployeeAccess(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return handler.respondError(c, services.ErrNotAuthenticated)
	}
	if err := services.RequireEmployeeAccess(session); err != nil {
		return handler.respondError(c, err)
	}
	return c.Next()
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, session models.Session) error {
	token, err := handler.buildToken(session, handler.tokenTTL)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().Add(handler.tokenTTL),
	})
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().Add(-1 * time.Hour),
	})
}
