package models

// ForecastSample is one 3-hour entry from the provider's forecast list,
// ordered ascending by timestamp. Typically 40 samples covering five days.
type ForecastSample struct {
	Timestamp   int64
	Temp        float64
	TempMin     float64
	TempMax     float64
	Icon        string
	Description string
}

// CurrentConditions is the provider's current-weather payload reduced to
// the fields the report needs, including the resolved coordinates that the
// follow-up forecast call reuses.
type CurrentConditions struct {
	City        string
	Description string
	Icon        string
	Temp        float64
	TempMin     float64
	TempMax     float64
	Humidity    int
	Pressure    int
	WindSpeed   float64
	WindDeg     float64
	Lat         float64
	Lon         float64
}
