package view

import (
	"fmt"
	"time"

	"weatherapp/internal/models"
)

const (
	maxHourlyRows = 24
	maxDailyRows  = 7

	HourlyEmptyRow = "Hourly data not available."
	DailyEmptyRow  = "Daily data not available."
)

// RenderCurrent builds the current-conditions lines for a report. Missing
// fields render as their placeholders.
func RenderCurrent(report *models.WeatherReport, loc *time.Location) []string {
	name := "N/A"
	if report.Location != nil {
		name = report.Location.Name
	}

	desc := "N/A"
	lastUpdated := "N/A"
	var cur *models.CurrentConditions
	if report.Current != nil {
		cur = report.Current
		if cur.Description != nil {
			desc = *cur.Description
		}
		if t, ok := parseTimestamp(cur.LastUpdated); ok {
			if loc == nil {
				loc = time.Local
			}
			lastUpdated = t.In(loc).Format("2006-01-02 15:04")
		}
	} else {
		cur = &models.CurrentConditions{}
	}

	return []string{
		name,
		fmt.Sprintf("%s  %s", FormatTemperature(cur.Temp), desc),
		fmt.Sprintf("Feels like: %s", FormatTemperature(cur.FeelsLike)),
		fmt.Sprintf("Humidity: %s", FormatPercentage(intToFloat(cur.Humidity))),
		fmt.Sprintf("Wind: %s", FormatWind(cur.WindSpeed, cur.WindDirection)),
		fmt.Sprintf("Pressure: %s", FormatPressure(cur.Pressure)),
		fmt.Sprintf("Last updated: %s", lastUpdated),
	}
}

// RenderHourly builds at most 24 hourly lines in the order received. An empty
// list yields the single placeholder row.
func RenderHourly(hours []models.HourlyForecast, loc *time.Location) []string {
	if len(hours) == 0 {
		return []string{HourlyEmptyRow}
	}
	if len(hours) > maxHourlyRows {
		hours = hours[:maxHourlyRows]
	}

	rows := make([]string, 0, len(hours))
	for _, h := range hours {
		// Probability arrives as a 0-1 fraction; scale to percent here,
		// exactly once.
		var prob *float64
		if h.PrecipProb != nil {
			scaled := *h.PrecipProb * 100
			prob = &scaled
		}
		rows = append(rows, fmt.Sprintf("%s  %s  %s  %s",
			FormatTime(h.Time, loc),
			IconURL(h.Icon),
			FormatTemperature(h.Temp),
			FormatPercentage(prob, 0)))
	}
	return rows
}

// RenderDaily builds at most 7 daily lines in the order received. An empty
// list yields the single placeholder row.
func RenderDaily(days []models.DailyForecast) []string {
	if len(days) == 0 {
		return []string{DailyEmptyRow}
	}
	if len(days) > maxDailyRows {
		days = days[:maxDailyRows]
	}

	rows := make([]string, 0, len(days))
	for _, d := range days {
		desc := ""
		if d.Description != nil {
			desc = *d.Description
		}
		rows = append(rows, fmt.Sprintf("%s  %s  H: %s L: %s  %s",
			FormatDay(d.Date),
			IconURL(d.Icon),
			FormatTemperature(d.TempMax, 0),
			FormatTemperature(d.TempMin, 0),
			desc))
	}
	return rows
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
