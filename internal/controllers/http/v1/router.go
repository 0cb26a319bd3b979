package http

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"skybrief/internal/services/report"
	"skybrief/pkg/observe"
)

type routes struct {
	service *report.ReportService
	l       *observe.Logger
}

func NewRouter(
	app *fiber.App,
	reportService *report.ReportService,
	l *observe.Logger,
) {
	r := &routes{
		service: reportService,
		l:       l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		swaggerData, err := os.ReadFile("docs/swagger.json")
		if err != nil {
			return c.Status(fiber.ErrInternalServerError.Code).JSON(fiber.Map{"error": "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.Send(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	app.Post("/v1/report", r.handleReport)
}
