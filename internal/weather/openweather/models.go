package openweather

// WeatherCondition is one element of the provider's "weather" array; the
// first element carries the primary condition for the observation.
type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentAPIResponse is the raw payload of the current-conditions endpoint.
type CurrentAPIResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather    []WeatherCondition `json:"weather"`
	Visibility float64            `json:"visibility"` // meters
	Dt         int64              `json:"dt"`
}

// ForecastAPIResponse is the raw payload of the forecast endpoint: an ordered
// list of three-hour entries.
type ForecastAPIResponse struct {
	Cnt  int            `json:"cnt"`
	List []ForecastItem `json:"list"`
}

// ForecastItem is a single three-hour forecast point.
type ForecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []WeatherCondition `json:"weather"`
	// Pop is the probability of precipitation as a 0.0-1.0 fraction.
	Pop float64 `json:"pop"`
}

// UVIndexAPIResponse is the raw payload of the coordinate-keyed UV endpoint.
type UVIndexAPIResponse struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Value float64 `json:"value"`
}
