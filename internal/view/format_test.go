package view_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"weatherapp/internal/view"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "--°C", view.FormatTemperature(nil))
	assert.Equal(t, "--°C", view.FormatTemperature(fptr(math.NaN())))

	assert.Equal(t, "21°C", view.FormatTemperature(fptr(21.4)))
	assert.Equal(t, "13°C", view.FormatTemperature(fptr(12.6)))
	assert.Equal(t, "-3°C", view.FormatTemperature(fptr(-2.7)))

	assert.Equal(t, "21.4°C", view.FormatTemperature(fptr(21.4), 1))
	assert.Equal(t, "21°C", view.FormatTemperature(fptr(21.4), 0))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "--%", view.FormatPercentage(nil))
	assert.Equal(t, "--%", view.FormatPercentage(fptr(math.NaN())))

	assert.Equal(t, "75%", view.FormatPercentage(fptr(75)))
	assert.Equal(t, "42%", view.FormatPercentage(fptr(42.0), 0))
	assert.Equal(t, "41.9%", view.FormatPercentage(fptr(41.9), 1))
}

func TestFormatWind(t *testing.T) {
	assert.Equal(t, "N/A", view.FormatWind(nil, nil))
	assert.Equal(t, "N/A", view.FormatWind(fptr(math.NaN()), iptr(270)))

	assert.Equal(t, "5.1 m/s", view.FormatWind(fptr(5.14), nil))
	assert.Equal(t, "5.1 m/s W", view.FormatWind(fptr(5.14), iptr(270)))
	assert.Equal(t, "5.1 m/s N", view.FormatWind(fptr(5.14), iptr(0)))
	assert.Equal(t, "5.1 m/s N", view.FormatWind(fptr(5.14), iptr(355)))
	assert.Equal(t, "5.1 m/s NE", view.FormatWind(fptr(5.14), iptr(45)))
	assert.Equal(t, "5.1 m/s S", view.FormatWind(fptr(5.14), iptr(180)))
}

func TestFormatPressure(t *testing.T) {
	assert.Equal(t, "---- hPa", view.FormatPressure(nil))
	assert.Equal(t, "1012 hPa", view.FormatPressure(iptr(1012)))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "--:--", view.FormatTime("", time.UTC))
	assert.Equal(t, "--:--", view.FormatTime("not a date", time.UTC))

	assert.Equal(t, "14:00", view.FormatTime("2025-08-31 14:00:00", time.UTC))
	assert.Equal(t, "09:05", view.FormatTime("2025-08-31T09:05:00Z", time.UTC))

	// Rendered in the viewer's zone, 24-hour clock.
	berlin, err := time.LoadLocation("Europe/Berlin")
	assert.NoError(t, err)
	assert.Equal(t, "16:00", view.FormatTime("2025-08-31 14:00:00", berlin))
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "---", view.FormatDay(""))
	assert.Equal(t, "---", view.FormatDay("not a date"))

	assert.Equal(t, "Mon", view.FormatDay("2025-09-01 00:00:00"))
	assert.Equal(t, "Sun", view.FormatDay("2025-08-31"))
}

func TestIconURL(t *testing.T) {
	icon := "01d"
	empty := ""

	assert.Equal(t, "https://openweathermap.org/img/wn/01d@2x.png", view.IconURL(&icon))
	assert.Equal(t, "placeholder.png", view.IconURL(nil))
	assert.Equal(t, "placeholder.png", view.IconURL(&empty))
}
