// Package forecast reduces the provider's flat 3-hour forecast list into
// the hourly series and the 5-day digest the report carries. All functions
// are pure: garbage in propagates as garbage digests, never as an error.
package forecast

import (
	"fmt"
	"math"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goodsign/monday"

	"iweather/internal/models"
)

const (
	hourlyWindow = 8
	dailyWindow  = 5

	// Midday window [12,15] picks the day's representative conditions.
	middayStart = 12
	middayEnd   = 15

	defaultIcon     = "01d"
	iconURLTemplate = "https://openweathermap.org/img/wn/%s.png"
)

// Hourly formats the first 8 samples (roughly the next 24h) as zero-padded
// hour labels with rounded temperatures, in input order. Fewer samples
// yield fewer points; empty input yields an empty slice.
func Hourly(samples []models.ForecastSample, loc *time.Location) []models.HourlyPoint {
	n := len(samples)
	if n > hourlyWindow {
		n = hourlyWindow
	}

	points := make([]models.HourlyPoint, 0, n)
	for _, s := range samples[:n] {
		t := time.Unix(s.Timestamp, 0).In(loc)
		points = append(points, models.HourlyPoint{
			Hour: fmt.Sprintf("%02dh", t.Hour()),
			Temp: round(s.Temp),
		})
	}

	return points
}

type dayAccumulator struct {
	first       time.Time
	min         float64
	max         float64
	icon        string
	description string
	hasMidday   bool
}

// Daily partitions the samples by local calendar date, folds min/max per
// day, picks the first midday-window sample as the day's representative
// conditions, and emits the first 5 days in order of appearance. The input
// is trusted to be chronologically ordered; no sort is performed.
func Daily(samples []models.ForecastSample, lang string, loc *time.Location) []models.DailyDigest {
	days := make(map[string]*dayAccumulator)
	var order []string

	for _, s := range samples {
		t := time.Unix(s.Timestamp, 0).In(loc)
		key := t.Format("2006-01-02")

		day, ok := days[key]
		if !ok {
			day = &dayAccumulator{first: t, min: s.TempMin, max: s.TempMax}
			days[key] = day
			order = append(order, key)
		} else {
			if s.TempMin < day.min {
				day.min = s.TempMin
			}
			if s.TempMax > day.max {
				day.max = s.TempMax
			}
		}

		if h := t.Hour(); h >= middayStart && h <= middayEnd && !day.hasMidday {
			day.icon = s.Icon
			day.description = s.Description
			day.hasMidday = true
		}
	}

	if len(order) > dailyWindow {
		order = order[:dailyWindow]
	}

	digests := make([]models.DailyDigest, 0, len(order))
	for _, key := range order {
		day := days[key]

		icon := day.icon
		description := day.description
		if !day.hasMidday || icon == "" {
			icon = defaultIcon
			description = defaultDescription(lang)
		}

		digests = append(digests, models.DailyDigest{
			Day:         capitalize(monday.Format(day.first, "Monday", localeFor(lang))),
			Min:         round(day.min),
			Max:         round(day.max),
			IconURL:     fmt.Sprintf(iconURLTemplate, icon),
			Description: description,
		})
	}

	return digests
}

func localeFor(lang string) monday.Locale {
	if lang == "es" {
		return monday.LocaleEsES
	}
	return monday.LocaleEnUS
}

func defaultDescription(lang string) string {
	if lang == "es" {
		return "Cielo despejado"
	}
	return "clear sky"
}

// round rounds half up, so -0.5 becomes 0.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
