package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/caixa/internal/services"
)

func (handler *Handler) ListTitles(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	titles, err := handler.roster.Titles(session)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"titles": titles})
}

func (handler *Handler) CreateTitle(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	input, err := parseBody[titleInput](c)
	if err != nil {
		return handler.respondError(c, err)
	}
	title, err := handler.roster.AddTitle(session, input.Name)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(title)
}

func (handler *Handler) DeleteTitle(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	if err := handler.roster.RemoveTitle(session, c.Params("id")); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListEmployees(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	employees, err := handler.roster.Employees(session)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"employees": employees})
}

func (handler *Handler) CreateEmployee(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	input, err := parseBody[employeeInput](c)
	if err != nil {
		return handler.respondError(c, err)
	}
	employee, err := handler.roster.AddEmployee(session, services.NewEmployeeInput(
		input.Name,
		input.TaxID,
		input.Title,
		input.EmploymentType,
		string(input.Salary),
	))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

func (handler *Handler) DeleteEmployee(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	if err := handler.roster.RemoveEmployee(session, c.Params("id")); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) GetRosterStatus(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	status, err := handler.roster.Status(session)
	if err != nil {
		return handler.respondError(c, err)
	}
	language := handler.currentLanguage(c)
	counter := handler.i18n.Translatef(language, "roster.counter", status.Count)
	if status.Limit > 0 {
		counter = handler.i18n.Translatef(language, "roster.counter_capped", status.Count, status.Limit)
	}
	return c.JSON(fiber.Map{"status": status, "counter": counter})
}
