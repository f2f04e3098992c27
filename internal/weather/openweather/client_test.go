package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

var testAPIKey = strings.Repeat("a", 32)

func newTestClient(baseURL string) *Client {
	return NewClient(&http.Client{Timeout: 5 * time.Second}, testAPIKey, baseURL, nil)
}

func TestValidateCredential(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		wantErr error
	}{
		{name: "valid key", apiKey: testAPIKey, wantErr: nil},
		{name: "missing key", apiKey: "", wantErr: ErrMissingAPIKey},
		{name: "short key", apiKey: "abc123", wantErr: ErrMalformedAPIKey},
		{name: "long key", apiKey: testAPIKey + "a", wantErr: ErrMalformedAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(http.DefaultClient, tt.apiKey, "", nil)
			if err := c.ValidateCredential(); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCredential() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	c := NewClient(http.DefaultClient, testAPIKey, "", nil)
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}

	c = NewClient(http.DefaultClient, testAPIKey, "http://example.test/", nil)
	if c.baseURL != "http://example.test" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
}

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("path = %q, want /weather", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("q"); got != "London" {
			t.Errorf("q = %q, want London", got)
		}
		if got := q.Get("units"); got != "metric" {
			t.Errorf("units = %q, want metric", got)
		}
		if got := q.Get("appid"); got != testAPIKey {
			t.Errorf("appid = %q, want configured key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "London",
			"coord": {"lat": 51.51, "lon": -0.13},
			"sys": {"country": "GB"},
			"main": {"temp": 18.4, "feels_like": 17.9, "humidity": 72, "pressure": 1012},
			"wind": {"speed": 4.1},
			"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
			"visibility": 10000,
			"dt": 1700000000
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.Current(context.Background(), "London", "metric")
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got.Name != "London" {
		t.Errorf("Name = %q, want London", got.Name)
	}
	if got.Sys.Country != "GB" {
		t.Errorf("Country = %q, want GB", got.Sys.Country)
	}
	if got.Coord.Lat != 51.51 || got.Coord.Lon != -0.13 {
		t.Errorf("Coord = %+v, want {51.51 -0.13}", got.Coord)
	}
	if got.Main.Humidity != 72 {
		t.Errorf("Humidity = %d, want 72", got.Main.Humidity)
	}
	if len(got.Weather) != 1 || got.Weather[0].Icon != "04d" {
		t.Errorf("Weather = %+v, want one entry with icon 04d", got.Weather)
	}
	if got.Visibility != 10000 {
		t.Errorf("Visibility = %v, want 10000", got.Visibility)
	}
}

func TestForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("path = %q, want /forecast", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cnt": 2,
			"list": [
				{"dt": 1700000000, "main": {"temp": 18.4, "humidity": 70}, "wind": {"speed": 3.0}, "weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}], "pop": 0.35},
				{"dt": 1700010800, "main": {"temp": 17.1, "humidity": 74}, "wind": {"speed": 2.4}, "weather": [{"main": "Clouds", "description": "overcast clouds", "icon": "04n"}], "pop": 0}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.Forecast(context.Background(), "London", "imperial")
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}
	if len(got.List) != 2 {
		t.Fatalf("len(List) = %d, want 2", len(got.List))
	}
	if got.List[0].Pop != 0.35 {
		t.Errorf("List[0].Pop = %v, want 0.35", got.List[0].Pop)
	}
	if got.List[1].Dt != 1700010800 {
		t.Errorf("List[1].Dt = %d, want 1700010800", got.List[1].Dt)
	}
}

func TestUVIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/uvi" {
			t.Errorf("path = %q, want /uvi", r.URL.Path)
		}
		q := r.URL.Query()
		lat, err := strconv.ParseFloat(q.Get("lat"), 64)
		if err != nil || lat != 51.51 {
			t.Errorf("lat = %q, want 51.51", q.Get("lat"))
		}
		lon, err := strconv.ParseFloat(q.Get("lon"), 64)
		if err != nil || lon != -0.13 {
			t.Errorf("lon = %q, want -0.13", q.Get("lon"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"lat": 51.51, "lon": -0.13, "value": 6.42}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.UVIndex(context.Background(), 51.51, -0.13)
	if err != nil {
		t.Fatalf("UVIndex() error = %v", err)
	}
	if got.Value != 6.42 {
		t.Errorf("Value = %v, want 6.42", got.Value)
	}
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "not found", status: http.StatusNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := newTestClient(srv.URL)
			_, err := c.Current(context.Background(), "Nowhere", "imperial")
			if err == nil {
				t.Fatal("Current() error = nil, want status error")
			}

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("error %v is not a *StatusError", err)
			}
			if statusErr.Code != tt.status {
				t.Errorf("Code = %d, want %d", statusErr.Code, tt.status)
			}
			if statusErr.Endpoint != "/weather" {
				t.Errorf("Endpoint = %q, want /weather", statusErr.Endpoint)
			}
		})
	}
}

func TestTransportErrorRedactsCredential(t *testing.T) {
	// A closed server guarantees a connection error whose text embeds the
	// request URL, credential included.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := newTestClient(base)
	_, err := c.Current(context.Background(), "London", "metric")
	if err == nil {
		t.Fatal("Current() error = nil, want transport error")
	}
	if strings.Contains(err.Error(), testAPIKey) {
		t.Errorf("error text leaks credential: %v", err)
	}
	if !strings.Contains(err.Error(), "REDACTED") {
		t.Errorf("error text missing redaction placeholder: %v", err)
	}
}

func TestCircuitBreakerOpens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := newTestClient(base)
	for i := 0; i < 6; i++ {
		if _, err := c.Current(context.Background(), "London", "metric"); err == nil {
			t.Fatalf("request %d: error = nil, want transport error", i)
		}
	}

	_, err := c.Current(context.Background(), "London", "metric")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error after repeated failures = %v, want circuit open", err)
	}
}

func TestHTTPStatusDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	for i := 0; i < 10; i++ {
		_, err := c.Current(context.Background(), "Nowhere", "imperial")
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("request %d: error = %v, want *StatusError", i, err)
		}
	}
}
