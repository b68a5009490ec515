package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/caixa/internal/models"
	"github.com/terraincognita07/caixa/internal/services"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input, err := parseBody[registerInput](c)
	if err != nil {
		return handler.respondError(c, err)
	}

	account, err := handler.accounts.Register(services.RegistrationInput{
		Name:            input.Name,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
		AccountType:     models.AccountType(input.AccountType),
		CompanyName:     input.CompanyName,
		CompanyTaxID:    input.CompanyTaxID,
		CompanyCategory: models.CompanyCategory(input.CompanyCategory),
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"account": models.NewSession(account)})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := clientKey(c)
	if handler.loginLimiter.blocked(limiterKey, handler.now()) {
		return apiError(c, fiber.StatusTooManyRequests, "too_many_attempts",
			handler.i18n.Translate(handler.currentLanguage(c), "errors.too_many_attempts"))
	}

	input, err := parseBody[loginInput](c)
	if err != nil {
		return handler.respondError(c, err)
	}

	session, err := handler.accounts.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.recordFailure(limiterKey, handler.now())
		}
		return handler.respondError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c, session); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"session": session})
}

// Logout ends the store session even without a valid cookie.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	if err := handler.accounts.Logout(); err != nil {
		return handler.respondError(c, err)
	}
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Session(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return handler.respondError(c, services.ErrNotAuthenticated)
	}
	return c.JSON(fiber.Map{
		"session":        session,
		"accountType":    services.AccountKind(session),
		"employeeAccess": services.CanAccessEmployeeFeatures(session),
		"greeting":       handler.i18n.Translatef(handler.currentLanguage(c), "greeting", session.Name),
	})
}
