package forecast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("appid") != "test-key" {
			t.Errorf("expected appid=test-key, got %q", q.Get("appid"))
		}
		if q.Get("units") != "metric" {
			t.Errorf("expected units=metric, got %q", q.Get("units"))
		}
		if q.Get("lat") == "" || q.Get("lon") == "" {
			t.Error("expected lat and lon query parameters")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"list": [
				{
					"dt_txt": "2025-03-10 06:00:00",
					"main": {"temp": 6.5},
					"weather": [{"description": "light rain"}],
					"wind": {"speed": 3.2},
					"visibility": 8000,
					"rain": {"3h": 0.4}
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(&http.Client{Timeout: time.Second}, "test-key", 53.5305, -1.1469)
	c.SetBaseURL(srv.URL)

	entries, err := c.Forecast(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.DtTxt != "2025-03-10 06:00:00" {
		t.Errorf("unexpected dt_txt: %q", e.DtTxt)
	}
	if e.Main.Temp != 6.5 || e.Wind.Speed != 3.2 {
		t.Errorf("unexpected numeric fields: %+v", e)
	}
	if e.Visibility == nil || *e.Visibility != 8000 {
		t.Errorf("expected visibility 8000, got %v", e.Visibility)
	}
	if e.Rain == nil || e.Rain.ThreeH != 0.4 {
		t.Errorf("expected rain 0.4, got %v", e.Rain)
	}
}

func TestClientForecastServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(&http.Client{Timeout: time.Second}, "test-key", 0, 0)
	c.SetBaseURL(srv.URL)

	if _, err := c.Forecast(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestClientForecastMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(&http.Client{Timeout: time.Second}, "test-key", 0, 0)
	c.SetBaseURL(srv.URL)

	if _, err := c.Forecast(context.Background()); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestClientForecastMissingKey(t *testing.T) {
	c := NewClient(&http.Client{Timeout: time.Second}, "", 0, 0)

	if _, err := c.Forecast(context.Background()); err == nil {
		t.Fatal("expected error when api key is not configured")
	}
}
