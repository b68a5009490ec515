package api

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application. accessLog may be nil to disable access logging.
func NewApp(handler *Handler, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "caixa",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})

	app.Use(recover.New())
	if accessLog != nil {
		app.Use(logger.New(logger.Config{Output: accessLog}))
	}
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/session", handler.AuthRequired, handler.Session)

	ledger := api.Group("/ledger", handler.AuthRequired)
	ledger.Get("", handler.ListEntries)
	ledger.Post("", handler.CreateEntry)
	ledger.Delete("", handler.ClearEntries)
	ledger.Get("/summary", handler.GetSummary)
	ledger.Get("/chart", handler.GetChart)
	ledger.Post("/salary/:employeeID", handler.PaySalary)
	ledger.Delete("/:id", handler.DeleteEntry)

	roster := api.Group("/roster", handler.AuthRequired, handler.EmployeeAccess)
	roster.Get("/titles", handler.ListTitles)
	roster.Post("/titles", handler.CreateTitle)
	roster.Delete("/titles/:id", handler.DeleteTitle)
	roster.Get("/employees", handler.ListEmployees)
	roster.Post("/employees", handler.CreateEmployee)
	roster.Delete("/employees/:id", handler.DeleteEmployee)
	roster.Get("/status", handler.GetRosterStatus)

	preferences := api.Group("/preferences")
	preferences.Get("/theme", handler.GetTheme)
	preferences.Put("/theme", handler.UpdateTheme)
}
