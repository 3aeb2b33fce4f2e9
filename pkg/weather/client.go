// Package weather derives a bounded route-risk contribution from the
// current weather at a shipment's destination.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/gokaycavdar/go-georisk/pkg/logging"
	"github.com/gokaycavdar/go-georisk/pkg/models"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultUnits   = "metric"

	defaultTimeout = 10 * time.Second
)

// ErrNoAPIKey is carried by outcomes degraded for missing credentials.
var ErrNoAPIKey = errors.New("weather api key not configured")

// HTTPClient allows injecting a custom transport in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures the weather client.
type Config struct {
	BaseURL string
	APIKey  string
	Units   string
	Timeout time.Duration

	// RatePerSecond limits outbound lookups. Zero disables limiting.
	RatePerSecond float64
}

// Client queries the current-weather provider.
type Client struct {
	cfg     Config
	http    HTTPClient
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a weather client. A nil httpClient uses
// http.DefaultClient; a nil logger discards log output.
func NewClient(cfg Config, httpClient HTTPClient, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Units == "" {
		cfg.Units = DefaultUnits
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		limiter: limiter,
		logger:  logging.OrDiscard(logger).With("provider", "weather"),
	}
}

// Configured reports whether an API credential is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// currentResponse mirrors the subset of the provider payload we use.
type currentResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Visibility *float64 `json:"visibility"`
	Main       *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

// Current returns the weather finding for coords. It never returns an
// error: missing credentials, missing coordinates and provider failures
// all produce a degraded zero-risk "Unknown" finding.
func (c *Client) Current(ctx context.Context, coords *models.Coordinates) models.Outcome[models.WeatherFinding] {
	fallback := models.UnknownWeather()

	if !c.Configured() {
		// Logged apart from provider failures so "no risk" and
		// "could not check" stay distinguishable in the logs.
		c.logger.Warn("weather api key not configured; weather risk not assessed")
		return models.Degraded(fallback, models.ReasonConfigMissing, ErrNoAPIKey)
	}
	if coords == nil {
		return models.Degraded(fallback, models.ReasonNoCoordinates, nil)
	}

	obs, err := c.fetch(ctx, *coords)
	if err != nil {
		reason := models.ReasonUpstreamUnavailable
		if errors.Is(err, errMalformed) {
			reason = models.ReasonMalformedResponse
		}
		c.logger.Warn("weather lookup degraded", "reason", string(reason), "error", err)
		return models.Degraded(fallback, reason, err)
	}

	return models.Ok(Evaluate(obs))
}

var errMalformed = errors.New("malformed weather response")

func (c *Client) fetch(ctx context.Context, coords models.Coordinates) (Observation, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Observation{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", c.cfg.Units)
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Observation{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Observation{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Observation{}, fmt.Errorf("weather request: unexpected status %d", resp.StatusCode)
	}

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Observation{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	return payload.observation(), nil
}

func (r currentResponse) observation() Observation {
	obs := Observation{Visibility: DefaultVisibility}
	if len(r.Weather) > 0 {
		obs.Condition = r.Weather[0].Main
		obs.Description = r.Weather[0].Description
	}
	if r.Wind != nil && r.Wind.Speed != nil {
		obs.WindSpeed = *r.Wind.Speed
	}
	if r.Visibility != nil {
		obs.Visibility = *r.Visibility
	}
	if r.Main != nil {
		obs.Temperature = r.Main.Temp
	}
	return obs
}
