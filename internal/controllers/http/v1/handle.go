package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"skybrief/internal/coords"
	"skybrief/internal/repositories"
)

// usageMessage is the help reply for an empty message, mirroring what a
// chat transport would send for a first contact.
const usageMessage = "Привет! Пришли координаты в формате:\n" +
	"Широта: 47°41'с. ш. / Долгота: 36°49'в. д. / Высота: 119 m\n" +
	"Часовой пояс: Europe/Kyiv (UTC+3)\n\n" +
	"Я пришлю сводку по погоде с интервалами, оформленную столбиком."

const parseFailureMessage = "Не удалось разобрать координаты. Пришлите, пожалуйста, строку в формате DMS: 47°41'с. ш. / 36°49'в. д."

const fetchFailureMessage = "Не удалось получить данные погоды. Попробуйте ещё раз чуть позже."

// BuildWeatherReport godoc
// @Summary Build a weather report from coordinate text
// @Description Parses a free-text coordinate message (DMS notation, Cyrillic or Latin labels) and returns a columnar weather report for today in the target timezone.
// @Tags Report
// @Accept plain
// @Produce plain
// @Param message body string true "Coordinate message, e.g. Широта: 47°41'с. ш. / Долгота: 36°49'в. д."
// @Success 200 {string} string "Formatted weather report"
// @Failure 400 {string} string "Coordinates not recognized"
// @Failure 502 {string} string "Weather source unavailable"
// @Router /v1/report [post]
func (r *routes) handleReport(c *fiber.Ctx) error {
	text := strings.TrimSpace(string(c.Body()))

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")

	if text == "" {
		return c.SendString(usageMessage)
	}

	out, err := r.service.BuildReport(c.Context(), text)
	if err != nil {
		var parseErr *coords.ParseError
		if errors.As(err, &parseErr) {
			return c.Status(fiber.StatusBadRequest).SendString(parseFailureMessage)
		}

		var fetchErr *repositories.FetchError
		if errors.As(err, &fetchErr) {
			r.l.Error(err, map[string]any{"kind": "fetch"})
			return c.Status(fiber.StatusBadGateway).SendString(fetchFailureMessage)
		}

		r.l.Error(err)
		return c.Status(fiber.StatusInternalServerError).SendString(fetchFailureMessage)
	}

	return c.SendString(out)
}
