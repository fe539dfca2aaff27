package models

// HourlyPoint is one entry of the next-24h series.
type HourlyPoint struct {
	Hour string `json:"hora" example:"14h"`
	Temp int    `json:"temp" example:"21"`
}

// DailyDigest is one entry of the 5-day summary.
type DailyDigest struct {
	Day         string `json:"dia" example:"Lunes"`
	Min         int    `json:"min" example:"12"`
	Max         int    `json:"max" example:"20"`
	IconURL     string `json:"icono" example:"https://openweathermap.org/img/wn/10d.png"`
	Description string `json:"descripcion" example:"light rain"`
}

// Wind is the wind section of the report: a display speed string with the
// unit baked in, and an 8-point compass direction.
type Wind struct {
	Speed     string `json:"velocidad" example:"12 km/h"`
	Direction string `json:"direccion" example:"Noreste"`
}

// Coordinates are the resolved location of the report.
type Coordinates struct {
	Lat float64 `json:"lat" example:"40.4165"`
	Lon float64 `json:"lon" example:"-3.7026"`
}

// WeatherReport is the assembled response payload. Field names keep the
// wire format the front end renders.
type WeatherReport struct {
	City        string        `json:"ciudad" example:"Madrid"`
	Description string        `json:"descripcion" example:"cielo claro"`
	Icon        string        `json:"icono" example:"01d"`
	Temperature int           `json:"temperatura" example:"18"`
	MinMax      string        `json:"min_max" example:"12° / 20°"`
	Humidity    int           `json:"humedad" example:"45"`
	Pressure    int           `json:"presion" example:"1016"`
	Wind        Wind          `json:"viento"`
	Unit        string        `json:"unit" example:"C"`
	Coords      Coordinates   `json:"coords"`
	MapTileURL  string        `json:"mapTileUrl"`
	Daily       []DailyDigest `json:"pronosticoSemanal"`
	Hourly      []HourlyPoint `json:"pronosticoHoras"`
}
