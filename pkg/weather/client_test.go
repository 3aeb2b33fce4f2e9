package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokaycavdar/go-georisk/pkg/models"
)

var rotterdam = &models.Coordinates{Lat: 51.9244, Lon: 4.4777}

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: apiKey, Timeout: 2 * time.Second}, srv.Client(), nil)
}

func TestCurrentStorm(t *testing.T) {
	var query map[string]string
	client := newTestClient(t, "k3y", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		query = map[string]string{
			"lat":   r.URL.Query().Get("lat"),
			"lon":   r.URL.Query().Get("lon"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		fmt.Fprint(w, `{"weather":[{"main":"Thunderstorm","description":"thunderstorm with heavy rain"}],
			"wind":{"speed":24.5},"visibility":800,"main":{"temp":18.2}}`)
	})

	out := client.Current(context.Background(), rotterdam)
	require.False(t, out.IsDegraded())

	assert.Equal(t, map[string]string{"lat": "51.9244", "lon": "4.4777", "appid": "k3y", "units": "metric"}, query)

	f := out.Value
	assert.Equal(t, MaxWeatherRisk, f.Risk, "30+20+15 is capped at 50")
	assert.Equal(t, "Thunderstorm", f.Conditions)
	require.NotNil(t, f.Details)
	assert.Equal(t, []string{"Thunderstorm activity", "Strong winds (24.5 m/s)", "Low visibility"}, f.Details.Factors)
	require.NotNil(t, f.Details.Temperature)
	assert.InDelta(t, 18.2, *f.Details.Temperature, 1e-9)
}

func TestCurrentClearSkyDefaults(t *testing.T) {
	client := newTestClient(t, "k3y", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"weather":[{"main":"Clear","description":"clear sky"}]}`)
	})

	out := client.Current(context.Background(), rotterdam)
	require.False(t, out.IsDegraded())
	assert.Zero(t, out.Value.Risk)
	assert.Equal(t, "Clear", out.Value.Conditions)
	assert.Equal(t, DefaultVisibility, out.Value.Details.Visibility)
	assert.Nil(t, out.Value.Details.Temperature)
}

func TestCurrentDegrades(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		coords  *models.Coordinates
		handler http.HandlerFunc
		reason  models.DegradeReason
	}{
		{
			name:   "no api key",
			coords: rotterdam,
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("provider must not be called without a key")
			},
			reason: models.ReasonConfigMissing,
		},
		{
			name:   "no coordinates",
			apiKey: "k3y",
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("provider must not be called without coordinates")
			},
			reason: models.ReasonNoCoordinates,
		},
		{
			name:   "unauthorized key",
			apiKey: "bad",
			coords: rotterdam,
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			reason: models.ReasonUpstreamUnavailable,
		},
		{
			name:   "malformed",
			apiKey: "k3y",
			coords: rotterdam,
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `not json`)
			},
			reason: models.ReasonMalformedResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, tc.apiKey, tc.handler)
			out := client.Current(context.Background(), tc.coords)

			assert.True(t, out.IsDegraded())
			assert.Equal(t, tc.reason, out.Reason)
			assert.Equal(t, models.UnknownWeather(), out.Value)
			assert.Zero(t, out.Value.Risk)
			assert.Equal(t, "Unknown", out.Value.Conditions)
		})
	}
}

func TestCurrentUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: url, APIKey: "k3y", Timeout: time.Second}, nil, nil)
	out := client.Current(context.Background(), rotterdam)

	assert.True(t, out.IsDegraded())
	assert.Equal(t, models.ReasonUpstreamUnavailable, out.Reason)
	assert.Equal(t, "Unknown", out.Value.Conditions)
}

func TestCurrentCancelledContext(t *testing.T) {
	client := newTestClient(t, "k3y", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"weather":[{"main":"Clear"}]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := client.Current(ctx, rotterdam)
	assert.True(t, out.IsDegraded())
}
