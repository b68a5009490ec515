package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetTheme(c *fiber.Ctx) error {
	enabled, err := handler.preferences.DarkTheme()
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"darkTheme": enabled})
}

func (handler *Handler) UpdateTheme(c *fiber.Ctx) error {
	input, err := parseBody[themeInput](c)
	if err != nil {
		return handler.respondError(c, err)
	}
	if input.DarkTheme == nil {
		return handler.respondError(c, fmt.Errorf("%w: dark_theme is required", errInvalidRequest))
	}
	if err := handler.preferences.SetDarkTheme(*input.DarkTheme); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"darkTheme": *input.DarkTheme})
}
