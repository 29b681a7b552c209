package models

// The three forecast row variants share one table; the discriminator decides
// which window query a row participates in.
const (
	ForecastTypeCurrent = "current"
	ForecastTypeHourly  = "hourly"
	ForecastTypeDaily   = "daily"
)

// CurrentConditions is the freshest current-type row for a location, selected
// by maximum retrieval timestamp. Nullable columns stay nil so they marshal as
// JSON null instead of a zero value.
type CurrentConditions struct {
	LastUpdated     string   `json:"lastUpdated" example:"2025-08-31 11:45:00"`
	ForecastTimeUTC string   `json:"forecastTimeUtc" example:"2025-08-31 12:00:00"`
	Temp            *float64 `json:"temp" example:"21.4"`
	FeelsLike       *float64 `json:"feelsLike" example:"20.9"`
	TempMin         *float64 `json:"tempMin"`
	TempMax         *float64 `json:"tempMax"`
	Pressure        *int     `json:"pressure" example:"1012"`
	Humidity        *int     `json:"humidity" example:"64"`
	WindSpeed       *float64 `json:"windSpeed" example:"5.1"`
	WindDirection   *int     `json:"windDirection" example:"270"`
	WindGust        *float64 `json:"windGust"`
	CloudCover      *int     `json:"cloudCover" example:"40"`
	Precipitation   *float64 `json:"precipitation"`
	Snow            *float64 `json:"snow"`
	UVIndex         *float64 `json:"uvIndex" example:"4.2"`
	Visibility      *int     `json:"visibility" example:"10000"`
	Description     *string  `json:"description" example:"scattered clouds"`
	Main            *string  `json:"main" example:"Clouds"`
	Icon            *string  `json:"icon" example:"03d"`
}

// HourlyForecast is one row of the forward 24-hour window.
type HourlyForecast struct {
	Time        string   `json:"time" example:"2025-08-31 14:00:00"`
	Temp        *float64 `json:"temp" example:"22.8"`
	FeelsLike   *float64 `json:"feelsLike"`
	Humidity    *int     `json:"humidity"`
	WindSpeed   *float64 `json:"windSpeed"`
	WindGust    *float64 `json:"windGust"`
	PrecipProb  *float64 `json:"precipProb" example:"0.42"`
	CloudCover  *int     `json:"cloudCover"`
	Description *string  `json:"description"`
	Icon        *string  `json:"icon"`
}

// DailyForecast is one row of the forward 7-day window. Daily rows are stored
// as day-granularity markers, so Date carries the stored timestamp text.
type DailyForecast struct {
	Date        string   `json:"date" example:"2025-09-01 00:00:00"`
	TempMax     *float64 `json:"tempMax"`
	TempMin     *float64 `json:"tempMin"`
	Pressure    *int     `json:"pressure"`
	Humidity    *int     `json:"humidity"`
	WindSpeed   *float64 `json:"windSpeed"`
	PrecipProb  *float64 `json:"precipProb"`
	UVIndex     *float64 `json:"uvIndex"`
	Description *string  `json:"description"`
	Icon        *string  `json:"icon"`
}
