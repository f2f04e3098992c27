package weather

import (
	"context"

	"github.com/cyberagellc-dev/weather/internal/weather/openweather"
)

// Upstream section names, used for health bookkeeping and logs.
const (
	UpstreamCurrent  = "current"
	UpstreamForecast = "forecast"
	UpstreamUVIndex  = "uvindex"
)

// Provider abstracts the weather data provider's three endpoints. The
// concrete implementation is the openweather client; tests substitute stubs.
type Provider interface {
	ValidateCredential() error
	Current(ctx context.Context, city, units string) (*openweather.CurrentAPIResponse, error)
	Forecast(ctx context.Context, city, units string) (*openweather.ForecastAPIResponse, error)
	UVIndex(ctx context.Context, lat, lon float64) (*openweather.UVIndexAPIResponse, error)
}

// StatusRecorder receives the outcome of every upstream call. A nil err
// marks the upstream healthy.
type StatusRecorder interface {
	Record(upstream string, err error)
}
