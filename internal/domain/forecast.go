package domain

// Location is a geocoded postal code, including the IANA timezone all plan
// times are interpreted in.
type Location struct {
	Name       string
	PostalCode string
	Latitude   float64
	Longitude  float64
	Timezone   string
}

// CurrentConditions is the present-moment weather snapshot.
type CurrentConditions struct {
	TempF float64
	// Rainfall24hIn is trailing 24-hour accumulated rainfall in inches.
	Rainfall24hIn float64
}

// ForecastDay is one day of the 7-day outlook.
type ForecastDay struct {
	Date              string  `json:"date"`
	HighF             float64 `json:"high_f"`
	LowF              float64 `json:"low_f"`
	PrecipProbability int     `json:"precip_probability"`
	PrecipInches      float64 `json:"precip_inches"`
}

// Forecast bundles the geocoded location with current and daily outlooks.
type Forecast struct {
	Location Location
	Current  CurrentConditions
	Daily    []ForecastDay
}
