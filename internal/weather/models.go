package weather

// Units selects the measurement system for a lookup. It doubles as the
// provider-native "units" query parameter.
type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
)

// ParseUnits normalizes caller input to a supported unit system. Anything
// other than "metric" falls back to imperial, the contract default.
func ParseUnits(s string) Units {
	if s == string(UnitsMetric) {
		return UnitsMetric
	}
	return UnitsImperial
}

// TempUnit returns the display symbol for temperatures in this system.
func (u Units) TempUnit() string {
	if u == UnitsMetric {
		return "°C"
	}
	return "°F"
}

// WindUnit returns the display label for wind speeds in this system.
// Provider wind speed arrives in mph under imperial and m/s under metric;
// the metric value is converted to km/h before it carries this label.
func (u Units) WindUnit() string {
	if u == UnitsMetric {
		return "km/h"
	}
	return "mph"
}

// VisibilityUnit returns the display label for visibility in this system.
func (u Units) VisibilityUnit() string {
	if u == UnitsMetric {
		return "km"
	}
	return "mi"
}

// Query is one weather lookup request. Created per request; never stored.
type Query struct {
	City  string
	Units Units
}

// Record is the normalized, unit-converted weather view returned to callers.
// Current conditions are always populated; UVIndex falls back to 0 and
// HourlyForecast to an empty slice when their upstream sections fail.
type Record struct {
	City           string        `json:"city"`
	Country        string        `json:"country"`
	Temperature    int           `json:"temperature"`
	FeelsLike      int           `json:"feelsLike"`
	Condition      string        `json:"condition"`
	Description    string        `json:"description"`
	Icon           string        `json:"icon"`
	IconCode       string        `json:"iconCode"`
	Humidity       int           `json:"humidity"`
	WindSpeed      int           `json:"windSpeed"`
	WindUnit       string        `json:"windUnit"`
	Visibility     int           `json:"visibility"`
	VisibilityUnit string        `json:"visibilityUnit"`
	Pressure       int           `json:"pressure"`
	UVIndex        int           `json:"uvIndex"`
	Units          Units         `json:"units"`
	TempUnit       string        `json:"tempUnit"`
	HourlyForecast []HourlyEntry `json:"hourlyForecast"`
}

// HourlyEntry is one three-hour forecast point. Precipitation is the upstream
// probability fraction scaled to a percentage, left unrounded for the caller
// to format.
type HourlyEntry struct {
	Time          int64   `json:"time"`
	Temperature   int     `json:"temperature"`
	Condition     string  `json:"condition"`
	Description   string  `json:"description"`
	IconCode      string  `json:"iconCode"`
	Humidity      int     `json:"humidity"`
	WindSpeed     int     `json:"windSpeed"`
	Precipitation float64 `json:"precipitation"`
}
