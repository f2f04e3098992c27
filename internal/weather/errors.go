package weather

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cyberagellc-dev/weather/internal/weather/openweather"
)

// ErrorKind classifies a failed lookup.
type ErrorKind string

const (
	KindMissingParameter     ErrorKind = "missing_parameter"
	KindMisconfigured        ErrorKind = "misconfigured"
	KindUpstreamUnauthorized ErrorKind = "upstream_unauthorized"
	KindUpstreamNotFound     ErrorKind = "upstream_not_found"
	KindUpstreamRateLimited  ErrorKind = "upstream_rate_limited"
	KindUpstreamOther        ErrorKind = "upstream_other"
	KindTransportFailure     ErrorKind = "transport_failure"
)

// ServiceError is the classified failure a lookup returns. StatusCode is the
// HTTP status the error maps to and Message is safe to show to callers; the
// wrapped Err carries diagnostic detail for logs only.
type ServiceError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// MissingParameterError reports an absent required request parameter.
func MissingParameterError(param string) *ServiceError {
	return &ServiceError{
		Kind:       KindMissingParameter,
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("missing required parameter %q", param),
	}
}

// misconfiguredError reports a credential problem detected before any
// network call. It is distinct from an upstream auth rejection.
func misconfiguredError(err error) *ServiceError {
	return &ServiceError{
		Kind:       KindMisconfigured,
		StatusCode: http.StatusInternalServerError,
		Message:    "weather provider credential is missing or malformed",
		Err:        err,
	}
}

// classifyUpstream maps a mandatory-call failure to a caller-facing error.
// Provider HTTP statuses get specific kinds; everything else, including an
// open circuit breaker, is a transport failure.
func classifyUpstream(err error) *ServiceError {
	var statusErr *openweather.StatusError
	if !errors.As(err, &statusErr) {
		return &ServiceError{
			Kind:       KindTransportFailure,
			StatusCode: http.StatusInternalServerError,
			Message:    "could not fetch weather data, check your connection and try again",
			Err:        err,
		}
	}

	switch statusErr.Code {
	case http.StatusUnauthorized:
		return &ServiceError{
			Kind:       KindUpstreamUnauthorized,
			StatusCode: http.StatusUnauthorized,
			Message:    "weather provider rejected the API key, verify the key is correct and activated",
			Err:        err,
		}
	case http.StatusNotFound:
		return &ServiceError{
			Kind:       KindUpstreamNotFound,
			StatusCode: http.StatusNotFound,
			Message:    "city not found, check the spelling and try again",
			Err:        err,
		}
	case http.StatusTooManyRequests:
		return &ServiceError{
			Kind:       KindUpstreamRateLimited,
			StatusCode: http.StatusTooManyRequests,
			Message:    "weather provider is throttling requests, try again later",
			Err:        err,
		}
	default:
		return &ServiceError{
			Kind:       KindUpstreamOther,
			StatusCode: statusErr.Code,
			Message:    fmt.Sprintf("weather provider returned status %d", statusErr.Code),
			Err:        err,
		}
	}
}
