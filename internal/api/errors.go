package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/caixa/internal/db"
	"github.com/terraincognita07/caixa/internal/services"
)

var errInvalidRequest = errors.New("invalid request body")

func classifyError(err error) (int, string) {
	if errors.Is(err, errInvalidRequest) {
		return fiber.StatusBadRequest, "invalid_request"
	}
	if code := services.ErrorCode(err); code != "" {
		return statusFor(err), code
	}
	var decodeErr *db.DecodeError
	if errors.As(err, &decodeErr) {
		return fiber.StatusInternalServerError, "storage"
	}
	return fiber.StatusInternalServerError, "internal"
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrNotAuthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrEmployeeAccessForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrEmployeeNotFound), errors.Is(err, services.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrCapReached):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func (handler *Handler) respondError(c *fiber.Ctx, err error) error {
	status, code := classifyError(err)
	if status >= fiber.StatusInternalServerError {
		handler.logger.Error(c.UserContext(), "request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}
	return apiError(c, status, code, handler.i18n.Translate(handler.currentLanguage(c), "errors."+code))
}

func apiError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// ErrorHandler answers errors escaping the routes (unknown paths, panics
// turned into errors by the recover middleware) in the API error format.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) {
		return handler.respondError(c, err)
	}

	code := "invalid_request"
	switch {
	case fiberErr.Code == fiber.StatusNotFound:
		code = "not_found"
	case fiberErr.Code >= fiber.StatusInternalServerError:
		code = "internal"
	}
	return apiError(c, fiberErr.Code, code, handler.i18n.Translate(handler.currentLanguage(c), "errors."+code))
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return fiber.ErrNotFound
}
