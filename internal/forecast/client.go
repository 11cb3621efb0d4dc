package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"motoweather/internal/httpx"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

// Client fetches the 5-day/3-hour forecast for a fixed coordinate from
// OpenWeatherMap.
type Client struct {
	httpClient *http.Client
	apiKey     string
	lat, lon   float64
	baseURL    string
	circuit    *gobreaker.CircuitBreaker
}

// NewClient creates a forecast client. The http.Client carries the fetch
// timeout; the caller configures it (15s by default).
func NewClient(httpClient *http.Client, apiKey string, lat, lon float64) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		lat:        lat,
		lon:        lon,
		baseURL:    defaultBaseURL,
		circuit:    cb,
	}
}

// SetBaseURL overrides the provider endpoint. Used in tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Forecast retrieves the raw forecast entries. Any transport failure,
// non-2xx status, or malformed top-level response surfaces as an error,
// which the pipeline treats as "no forecast data".
func (c *Client) Forecast(ctx context.Context) ([]Entry, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("openweathermap api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", c.lat))
		values.Set("lon", fmt.Sprintf("%f", c.lon))
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, c.httpClient, c.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		List []Entry `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	return payload.List, nil
}
