package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"weatherapp/internal/models"
	"weatherapp/internal/services/weather"
)

const (
	errMissingLocation  = "Location parameter is missing or empty."
	errConnectionFailed = "Database connection failed. Please check server configuration."
	errQueryFailed      = "An error occurred while fetching weather data from the database."
)

// GetWeather godoc
// @Summary Get weather for a location
// @Description Resolves a stored location by name and returns its current conditions plus the hourly (24h) and daily (7d) forecast windows
// @Tags Weather
// @Accept json
// @Produce json
// @Param location query string true "City name, exact match" example(Berlin)
// @Success 200 {object} models.WeatherReport "Successful response, error is null"
// @Failure 400 {object} models.WeatherReport "Missing or empty location parameter"
// @Failure 404 {object} models.WeatherReport "Location not found"
// @Failure 500 {object} models.WeatherReport "Store connection or query failure"
// @Router /api/weather [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/api/weather?location=Berlin"
func (r *routes) handleWeatherLookup(c *fiber.Ctx) error {
	location := strings.TrimSpace(c.Query("location"))

	if location == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(models.NewWeatherReport().Failed(errMissingLocation))
	}

	report, err := r.service.Lookup(c.Context(), location)
	if err != nil {
		// Detailed causes are logged inside the service; clients only see
		// the generic messages.
		var notFound *weather.NotFoundError
		switch {
		case errors.As(err, &notFound):
			return c.Status(fiber.StatusNotFound).
				JSON(models.NewWeatherReport().Failed(notFound.Error()))
		case errors.Is(err, weather.ErrStoreUnavailable):
			return c.Status(fiber.StatusInternalServerError).
				JSON(models.NewWeatherReport().Failed(errConnectionFailed))
		default:
			return c.Status(fiber.StatusInternalServerError).
				JSON(models.NewWeatherReport().Failed(errQueryFailed))
		}
	}

	return c.JSON(report)
}
