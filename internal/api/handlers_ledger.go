package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/caixa/internal/services"
)

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	filter, err := services.ParseEntryFilter(c.Query("kind"))
	if err != nil {
		return handler.respondError(c, err)
	}
	entries, err := handler.ledger.Entries(session, filter)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries, "filter": filter})
}

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	payload, err := parseBody[entryInput](c)
	if err != nil {
		return handler.respondError(c, err)
	}
	input, err := services.NewEntryInput(payload.Description, string(payload.Amount), payload.Kind)
	if err != nil {
		return handler.respondError(c, err)
	}
	entry, err := handler.ledger.AddEntry(session, input)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	if err := handler.ledger.RemoveEntry(session, c.Params("id")); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ClearEntries(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	if err := handler.ledger.ClearAll(session); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) GetSummary(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	summary, err := handler.ledger.Summarize(session)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"summary": summary,
		"formatted": fiber.Map{
			"totalIncome":  summary.TotalIncome.Format(),
			"totalExpense": summary.TotalExpense.Format(),
			"balance":      summary.Balance.Format(),
		},
	})
}

func (handler *Handler) GetChart(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	chart, err := handler.ledger.Chart(session)
	if err != nil {
		return handler.respondError(c, err)
	}
	label := fmt.Sprintf("%d%%", chart.IncomePercent)
	if chart.NoData {
		label = handler.i18n.Translate(handler.currentLanguage(c), "chart.no_data")
	}
	return c.JSON(fiber.Map{"chart": chart, "label": label})
}

func (handler *Handler) PaySalary(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	entry, err := handler.ledger.AddSalaryExpense(session, c.Params("employeeID"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}
