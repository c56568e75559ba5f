package dto

// WeatherResponse is the normalized subset of the weather provider payload
type WeatherResponse struct {
	City        string  `json:"city"`
	Region      string  `json:"region"`
	TempC       float64 `json:"temp_c"`
	Condition   string  `json:"condition"`
	Humidity    int     `json:"humidity"`
	WindKph     float64 `json:"wind_kph"`
	LastUpdated string  `json:"last_updated"`
}
