package weather

import (
	"fmt"
	"math"

	"github.com/cyberagellc-dev/weather/internal/weather/openweather"
)

const (
	metersPerMile = 1609.34
	mpsToKmh      = 3.6

	// maxHourlyEntries caps the forecast section at eight three-hour points,
	// roughly 24 hours.
	maxHourlyEntries = 8

	iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"
)

// buildRecord merges the three upstream payloads into one normalized record.
// forecast and uv may be nil; their sections then take their default values.
func buildRecord(q Query, cur *openweather.CurrentAPIResponse, forecast *openweather.ForecastAPIResponse, uv *openweather.UVIndexAPIResponse) *Record {
	condition := primaryCondition(cur.Weather)

	rec := &Record{
		City:           cur.Name,
		Country:        cur.Sys.Country,
		Temperature:    round(cur.Main.Temp),
		FeelsLike:      round(cur.Main.FeelsLike),
		Condition:      condition.Main,
		Description:    condition.Description,
		Icon:           iconURL(condition.Icon),
		IconCode:       condition.Icon,
		Humidity:       cur.Main.Humidity,
		WindSpeed:      convertWindSpeed(cur.Wind.Speed, q.Units),
		WindUnit:       q.Units.WindUnit(),
		Visibility:     convertVisibility(cur.Visibility, q.Units),
		VisibilityUnit: q.Units.VisibilityUnit(),
		Pressure:       cur.Main.Pressure,
		Units:          q.Units,
		TempUnit:       q.Units.TempUnit(),
		HourlyForecast: []HourlyEntry{},
	}

	if uv != nil {
		rec.UVIndex = round(uv.Value)
	}
	if forecast != nil {
		rec.HourlyForecast = hourlyEntries(forecast.List, q.Units)
	}

	return rec
}

// hourlyEntries maps the first upstream forecast points, at most eight, into
// the normalized per-entry shape.
func hourlyEntries(list []openweather.ForecastItem, units Units) []HourlyEntry {
	n := len(list)
	if n > maxHourlyEntries {
		n = maxHourlyEntries
	}

	entries := make([]HourlyEntry, 0, n)
	for _, item := range list[:n] {
		condition := primaryCondition(item.Weather)
		entries = append(entries, HourlyEntry{
			Time:          item.Dt,
			Temperature:   round(item.Main.Temp),
			Condition:     condition.Main,
			Description:   condition.Description,
			IconCode:      condition.Icon,
			Humidity:      item.Main.Humidity,
			WindSpeed:     convertWindSpeed(item.Wind.Speed, units),
			Precipitation: item.Pop * 100,
		})
	}
	return entries
}

// convertWindSpeed normalizes provider wind speed for display. Imperial
// arrives as mph already; metric arrives as m/s and becomes km/h.
func convertWindSpeed(speed float64, units Units) int {
	if units == UnitsMetric {
		return round(speed * mpsToKmh)
	}
	return round(speed)
}

// convertVisibility converts provider visibility in meters to miles or km.
func convertVisibility(meters float64, units Units) int {
	if units == UnitsMetric {
		return round(meters / 1000)
	}
	return round(meters / metersPerMile)
}

// primaryCondition returns the first weather array element, or a zero value
// when the provider omits the array entirely.
func primaryCondition(conditions []openweather.WeatherCondition) openweather.WeatherCondition {
	if len(conditions) == 0 {
		return openweather.WeatherCondition{}
	}
	return conditions[0]
}

func iconURL(code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf(iconURLFormat, code)
}

func round(v float64) int {
	return int(math.Round(v))
}
