package weather

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cyberagellc-dev/weather/internal/weather/openweather"
)

// Service performs weather lookups against a single upstream provider. It is
// stateless; concurrent lookups need no coordination.
type Service struct {
	provider Provider
	status   StatusRecorder
	logger   *slog.Logger
}

// NewService creates a Service. status and logger may be nil.
func NewService(provider Provider, status StatusRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		status:   status,
		logger:   logger.With("component", "weather-service"),
	}
}

// Lookup aggregates current conditions, forecast, and UV index for the query.
// The current-conditions call is mandatory and its failure terminates the
// lookup; forecast and UV are best-effort and degrade to their defaults. No
// call is retried.
func (s *Service) Lookup(ctx context.Context, q Query) (*Record, error) {
	q.City = strings.TrimSpace(q.City)
	if q.City == "" {
		return nil, MissingParameterError("city")
	}
	q.Units = ParseUnits(string(q.Units))

	// Fail fast on a bad credential before spending any network calls.
	if err := s.provider.ValidateCredential(); err != nil {
		s.logger.Error("credential precondition failed", "error", err)
		return nil, misconfiguredError(err)
	}

	units := string(q.Units)

	cur, err := s.provider.Current(ctx, q.City, units)
	s.record(UpstreamCurrent, err)
	if err != nil {
		svcErr := classifyUpstream(err)
		s.logger.Error("current conditions fetch failed",
			"city", q.City,
			"kind", string(svcErr.Kind),
			"error", err,
		)
		return nil, svcErr
	}

	// The two best-effort calls are independent of each other; only the UV
	// call needs the coordinates discovered above. Each goroutine owns its
	// own result variable, read back after Wait.
	var (
		wg       sync.WaitGroup
		forecast *openweather.ForecastAPIResponse
		uv       *openweather.UVIndexAPIResponse
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		fc, err := s.provider.Forecast(ctx, q.City, units)
		s.record(UpstreamForecast, err)
		if err != nil {
			s.logger.Warn("forecast fetch failed, serving empty forecast section",
				"city", q.City,
				"error", err,
			)
			return
		}
		forecast = fc
	}()
	go func() {
		defer wg.Done()
		res, err := s.provider.UVIndex(ctx, cur.Coord.Lat, cur.Coord.Lon)
		s.record(UpstreamUVIndex, err)
		if err != nil {
			s.logger.Warn("uv index fetch failed, serving zero uv index",
				"city", q.City,
				"error", err,
			)
			return
		}
		uv = res
	}()
	wg.Wait()

	return buildRecord(q, cur, forecast, uv), nil
}

func (s *Service) record(upstream string, err error) {
	if s.status != nil {
		s.status.Record(upstream, err)
	}
}
