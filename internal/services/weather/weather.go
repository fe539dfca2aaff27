package weather

import (
	"context"
	"fmt"
	"math"
	"time"

	"iweather/internal/models"
	"iweather/internal/repositories"
	"iweather/internal/services/forecast"
	"iweather/pkg/logger"
)

const mapTileURLTemplate = "https://tile.openweathermap.org/map/precipitation_new/{z}/{x}/{y}.png?appid=%s"

var (
	windDirectionsES = [8]string{"Norte", "Noreste", "Este", "Sureste", "Sur", "Suroeste", "Oeste", "Noroeste"}
	windDirectionsEN = [8]string{"North", "Northeast", "East", "Southeast", "South", "Southwest", "West", "Northwest"}
)

// Service is the weather proxy: two sequential upstream calls (current,
// then forecast for the resolved coordinates) and report assembly.
type Service struct {
	provider repositories.WeatherProvider
	apiKey   string
	loc      *time.Location
	l        *logger.Logger
}

func NewService(provider repositories.WeatherProvider, apiKey string, l *logger.Logger) *Service {
	return &Service{
		provider: provider,
		apiKey:   apiKey,
		loc:      time.Local,
		l:        l,
	}
}

// WithLocation overrides the time zone used for day/hour bucketing.
// Production keeps the process-local zone; tests pin a fixed one.
func (s *Service) WithLocation(loc *time.Location) *Service {
	s.loc = loc
	return s
}

func (s *Service) ByCity(ctx context.Context, city, units, lang string) (*models.WeatherReport, error) {
	s.l.Info("fetching weather by city", map[string]any{"city": city, "units": units, "lang": lang})

	current, err := s.provider.CurrentByCity(ctx, city, units, lang)
	if err != nil {
		return nil, err
	}

	return s.buildReport(ctx, current, units, lang)
}

func (s *Service) ByCoords(ctx context.Context, lat, lon float64, units, lang string) (*models.WeatherReport, error) {
	s.l.Info("fetching weather by coords", map[string]any{"lat": lat, "lon": lon, "units": units, "lang": lang})

	current, err := s.provider.CurrentByCoords(ctx, lat, lon, units, lang)
	if err != nil {
		return nil, err
	}

	return s.buildReport(ctx, current, units, lang)
}

// buildReport runs the forecast call against the coordinates the current
// call resolved, so both payloads describe the same location.
func (s *Service) buildReport(ctx context.Context, current *models.CurrentConditions, units, lang string) (*models.WeatherReport, error) {
	samples, err := s.provider.Forecast(ctx, current.Lat, current.Lon, units, lang)
	if err != nil {
		return nil, err
	}

	unitSymbol := "F"
	speedUnit := "mph"
	if units == "metric" {
		unitSymbol = "C"
		speedUnit = "km/h"
	}

	report := &models.WeatherReport{
		City:        current.City,
		Description: current.Description,
		Icon:        current.Icon,
		Temperature: round(current.Temp),
		MinMax:      fmt.Sprintf("%d° / %d°", round(current.TempMin), round(current.TempMax)),
		Humidity:    current.Humidity,
		Pressure:    current.Pressure,
		Wind: models.Wind{
			Speed:     fmt.Sprintf("%d %s", round(current.WindSpeed), speedUnit),
			Direction: windDirection(current.WindDeg, lang),
		},
		Unit:       unitSymbol,
		Coords:     models.Coordinates{Lat: current.Lat, Lon: current.Lon},
		MapTileURL: fmt.Sprintf(mapTileURLTemplate, s.apiKey),
		Daily:      forecast.Daily(samples, lang, s.loc),
		Hourly:     forecast.Hourly(samples, s.loc),
	}

	s.l.Info("assembled weather report", map[string]any{
		"city":   report.City,
		"daily":  len(report.Daily),
		"hourly": len(report.Hourly),
	})

	return report, nil
}

// windDirection buckets degrees into the nearest of 8 compass points.
// Upstream degrees are not validated, so the index is normalized to keep
// negative values in range.
func windDirection(deg float64, lang string) string {
	idx := ((int(math.Round(deg/45)) % 8) + 8) % 8
	if lang == "es" {
		return windDirectionsES[idx]
	}
	return windDirectionsEN[idx]
}

// round rounds half up, so -0.5 becomes 0.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
