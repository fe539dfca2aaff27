package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"iweather/internal/models"
)

// handleWeatherByCity godoc
// @Summary Get weather by city name
// @Description Current conditions plus hourly and daily forecast digests
// @Tags Weather
// @Produce json
// @Param city query string true "City name" example(Madrid)
// @Param units query string false "Unit system (metric or imperial, default metric)"
// @Param lang query string false "Language for descriptions and day names (default es)"
// @Success 200 {object} models.WeatherReport
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse "Unknown city"
// @Failure 500 {object} MessageResponse
// @Router /api/weather [get]
func (r *routes) handleWeatherByCity(c *fiber.Ctx) error {
	city := c.Query("city")
	units := c.Query("units", "metric")
	lang := c.Query("lang", "es")

	if city == "" {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Error: No se proporcionó una ciudad.",
		})
	}

	report, err := r.weather.ByCity(c.Context(), city, units, lang)
	if err != nil {
		if errors.Is(err, models.ErrCityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
				Message: "Ciudad no encontrada",
			})
		}
		r.l.Error(err, map[string]any{"route": "weather", "city": city})
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Error interno del servidor",
		})
	}

	return c.JSON(report)
}

// handleWeatherByCoords godoc
// @Summary Get weather by coordinates
// @Tags Weather
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param units query string false "Unit system (metric or imperial, default metric)"
// @Param lang query string false "Language for descriptions and day names (default es)"
// @Success 200 {object} models.WeatherReport
// @Failure 400 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/weather-by-coords [get]
func (r *routes) handleWeatherByCoords(c *fiber.Ctx) error {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	units := c.Query("units", "metric")
	lang := c.Query("lang", "es")

	if latStr == "" || lonStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Error: No se proporcionaron coordenadas.",
		})
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Error: No se proporcionaron coordenadas.",
		})
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Error: No se proporcionaron coordenadas.",
		})
	}

	report, err := r.weather.ByCoords(c.Context(), lat, lon, units, lang)
	if err != nil {
		r.l.Error(err, map[string]any{"route": "weather-by-coords", "lat": lat, "lon": lon})
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Error interno del servidor",
		})
	}

	return c.JSON(report)
}
