package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"skybrief/internal/models"
)

// HeaderDateLayout is the day.month.year date format of the report header.
const HeaderDateLayout = "02.01.2006"

// UnknownPlace labels reports for coordinates the geocoder could not name.
const UnknownPlace = "неизвестно"

const placeholderDash = "—"

var skyDescriptionText = map[models.SkyDescription]string{
	models.SkyRain:     "пасмурно, дождь",
	models.SkyOvercast: "пасмурно",
	models.SkyVariable: "переменная облачность",
	models.SkyClearish: "малоблачно",
	models.SkyNoData:   "нет данных",
}

// FormatReport renders the per-window summaries as the columnar text block
// sent back to the user. Absent values render as a dash.
func FormatReport(date time.Time, coordsText, placeText string, summaries []models.IntervalSummary) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("ПОГОДНЫЕ УСЛОВИЯ НА %s (\"%s\", \"%s\")",
		date.Format(HeaderDateLayout), coordsText, placeText))
	lines = append(lines, "")

	for _, item := range summaries {
		lines = append(lines, fmt.Sprintf("%s — %s", item.Label, skyDescriptionText[item.Description]))

		groundLine := "Ветер на земле: " + formatSpeed(item.GroundWindMeanMS)
		if item.GroundGustMaxMS != nil && *item.GroundGustMaxMS > 0 {
			groundLine += fmt.Sprintf(" (порывы до ~%.0f м/с)", *item.GroundGustMaxMS)
		}
		lines = append(lines, groundLine)

		lines = append(lines, "Ветер на 1500 метров: "+formatSpeed(item.Wind1500MS))
		lines = append(lines, "Ветер на 2500 метров: "+formatSpeed(item.Wind2500MS))
		lines = append(lines, "Ветер на 3500 метров: "+formatSpeed(item.Wind3500MS))
		lines = append(lines, "Нижняя граница облаков: "+formatHeight(item.CloudBaseM))
		lines = append(lines, "")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func formatSpeed(v *float64) string {
	if v == nil {
		return placeholderDash
	}
	return fmt.Sprintf("%.0f м/с", *v)
}

// formatHeight renders a cloud base rounded to the nearest ten meters.
func formatHeight(v *float64) string {
	if v == nil {
		return placeholderDash
	}
	return fmt.Sprintf("~%d м", int(math.Round(*v/10)*10))
}
