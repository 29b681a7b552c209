package models

// Location is a named place forecasts attach to, as stored in the locations table.
type Location struct {
	ID       int      `json:"id" example:"42"`
	Name     string   `json:"name" example:"Berlin"`
	State    *string  `json:"state"`
	Country  string   `json:"country" example:"DE"`
	Lat      *float64 `json:"lat" example:"52.52"`
	Lon      *float64 `json:"lon" example:"13.405"`
	Timezone string   `json:"timezone" example:"Europe/Berlin"`
}
