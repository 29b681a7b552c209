package models

// WeatherReport is the response document for one lookup. The same shape is
// returned on every status code; error paths carry nil/empty data fields and a
// non-nil Error.
type WeatherReport struct {
	Location *Location          `json:"location"`
	Current  *CurrentConditions `json:"current"`
	Hourly   []HourlyForecast   `json:"hourly"`
	Daily    []DailyForecast    `json:"daily"`
	Error    *string            `json:"error"`
}

// NewWeatherReport returns an empty report with non-nil lists so they marshal
// as [] rather than null.
func NewWeatherReport() *WeatherReport {
	return &WeatherReport{
		Hourly: []HourlyForecast{},
		Daily:  []DailyForecast{},
	}
}

// Failed resets the data fields and sets the error message, keeping the
// document shape consistent across error paths.
func (r *WeatherReport) Failed(msg string) *WeatherReport {
	r.Location = nil
	r.Current = nil
	r.Hourly = []HourlyForecast{}
	r.Daily = []DailyForecast{}
	r.Error = &msg
	return r
}
