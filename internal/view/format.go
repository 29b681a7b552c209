package view

import (
	"fmt"
	"math"
	"time"
)

// Placeholder strings shown when a value is missing or unparseable.
const (
	TempPlaceholder     = "--°C"
	PercentPlaceholder  = "--%"
	WindPlaceholder     = "N/A"
	PressurePlaceholder = "---- hPa"
	TimePlaceholder     = "--:--"
	DayPlaceholder      = "---"
)

const (
	iconURLTemplate     = "https://openweathermap.org/img/wn/%s@2x.png"
	IconPlaceholderPath = "placeholder.png"
)

// Backend timestamps arrive as DATETIME text in UTC; ISO variants are
// accepted as well.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTemperature renders a temperature with the degree marker, defaulting
// to 0 decimal places unless a precision is given.
func FormatTemperature(temp *float64, precision ...int) string {
	if temp == nil || math.IsNaN(*temp) {
		return TempPlaceholder
	}
	p := 0
	if len(precision) > 0 {
		p = precision[0]
	}
	return fmt.Sprintf("%.*f°C", p, *temp)
}

// FormatPercentage renders a 0-100 value with a percent suffix. Probability
// fractions must be scaled by the caller before formatting.
func FormatPercentage(value *float64, precision ...int) string {
	if value == nil || math.IsNaN(*value) {
		return PercentPlaceholder
	}
	p := 0
	if len(precision) > 0 {
		p = precision[0]
	}
	return fmt.Sprintf("%.*f%%", p, *value)
}

// FormatWind renders the speed to one decimal place and appends a compass
// bearing when a direction is supplied.
func FormatWind(speed *float64, directionDeg *int) string {
	if speed == nil || math.IsNaN(*speed) {
		return WindPlaceholder
	}
	s := fmt.Sprintf("%.1f m/s", *speed)
	if directionDeg != nil {
		s += " " + compassBearing(*directionDeg)
	}
	return s
}

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

func compassBearing(deg int) string {
	normalized := ((deg % 360) + 360) % 360
	idx := int(math.Floor(float64(normalized)/22.5+0.5)) % 16
	return compassPoints[idx]
}

// FormatPressure renders an integer pressure with the hPa suffix.
func FormatPressure(pressure *int) string {
	if pressure == nil {
		return PressurePlaceholder
	}
	return fmt.Sprintf("%d hPa", *pressure)
}

// FormatTime renders a timestamp as a 24-hour clock time in the given
// location. A nil location means the viewer's local zone.
func FormatTime(value string, loc *time.Location) string {
	if value == "" {
		return TimePlaceholder
	}
	t, ok := parseTimestamp(value)
	if !ok {
		return TimePlaceholder
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("15:04")
}

// FormatDay renders a date as a short weekday name.
func FormatDay(value string) string {
	if value == "" {
		return DayPlaceholder
	}
	t, ok := parseTimestamp(value)
	if !ok {
		return DayPlaceholder
	}
	return t.Format("Mon")
}

// IconURL resolves an icon code against the icon host, falling back to the
// local placeholder image.
func IconURL(code *string) string {
	if code == nil || *code == "" {
		return IconPlaceholderPath
	}
	return fmt.Sprintf(iconURLTemplate, *code)
}
