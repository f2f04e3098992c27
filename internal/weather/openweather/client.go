package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultBaseURL is the production API root of the weather data provider.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// apiKeyLength is the exact credential length the provider issues. A key of
// any other length is a deployment problem, not an upstream auth failure.
const apiKeyLength = 32

var (
	// ErrMissingAPIKey is returned when no credential is configured.
	ErrMissingAPIKey = errors.New("openweather: api key is not configured")

	// ErrMalformedAPIKey is returned when the configured credential has the
	// wrong length and would never be accepted by the provider.
	ErrMalformedAPIKey = fmt.Errorf("openweather: api key must be exactly %d characters", apiKeyLength)
)

// StatusError reports a non-success HTTP status from the provider. Callers
// inspect Code to classify the failure.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openweather: %s returned status %d", e.Endpoint, e.Code)
}

// Client talks to the three provider endpoints: current conditions, forecast,
// and UV index. Every method issues exactly one request; there are no retries.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	circuit    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a provider client. An empty baseURL selects the
// production API; tests and proxies supply their own.
func NewClient(httpClient *http.Client, apiKey, baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		circuit:    cb,
		logger:     logger.With("component", "openweather-client"),
	}
}

// ValidateCredential checks the configured key without touching the network.
func (c *Client) ValidateCredential() error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	if len(c.apiKey) != apiKeyLength {
		return ErrMalformedAPIKey
	}
	return nil
}

// Current fetches current conditions for a city. units is "imperial" or
// "metric" and controls the provider-native measurement units.
func (c *Client) Current(ctx context.Context, city, units string) (*CurrentAPIResponse, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("units", units)

	var payload CurrentAPIResponse
	if err := c.get(ctx, "/weather", values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Forecast fetches the ordered list of three-hour forecast entries for a city.
func (c *Client) Forecast(ctx context.Context, city, units string) (*ForecastAPIResponse, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("units", units)

	var payload ForecastAPIResponse
	if err := c.get(ctx, "/forecast", values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UVIndex fetches the scalar UV value for a coordinate pair.
func (c *Client) UVIndex(ctx context.Context, lat, lon float64) (*UVIndexAPIResponse, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))

	var payload UVIndexAPIResponse
	if err := c.get(ctx, "/uvi", values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// get performs a single GET against the given endpoint and decodes the JSON
// body into out. The circuit breaker counts transport-level failures only:
// any HTTP status at all means the provider is reachable, and status
// classification belongs to the caller.
func (c *Client) get(ctx context.Context, endpoint string, values url.Values, out any) error {
	values.Set("appid", c.apiKey)

	u := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("openweather: build %s request: %s", endpoint, c.redact(err.Error()))
	}

	c.logger.Debug("requesting provider endpoint", "endpoint", endpoint)

	result, err := c.circuit.Execute(func() (interface{}, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("openweather: %s unavailable: %w", endpoint, err)
		}
		// Transport errors embed the request URL, which carries the
		// credential; never propagate that text verbatim.
		return fmt.Errorf("openweather: %s request failed: %s", endpoint, c.redact(err.Error()))
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return fmt.Errorf("openweather: unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("provider returned non-success status",
			"endpoint", endpoint,
			"status", resp.StatusCode,
		)
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openweather: decode %s response: %w", endpoint, err)
	}
	return nil
}

// redact replaces the configured credential in diagnostic text.
func (c *Client) redact(s string) string {
	if c.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, c.apiKey, "REDACTED")
}
