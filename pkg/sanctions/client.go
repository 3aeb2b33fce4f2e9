// Package sanctions screens named parties against an entity-matching
// watchlist service (OpenSanctions-compatible match API).
//
// Screening never fails an assessment: transport errors, non-2xx
// responses, timeouts and malformed payloads all produce a degraded
// outcome carrying a "no match, zero confidence" finding.
package sanctions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/gokaycavdar/go-georisk/pkg/logging"
	"github.com/gokaycavdar/go-georisk/pkg/models"
)

const (
	DefaultBaseURL = "https://api.opensanctions.org"
	DefaultDataset = "default"

	// MatchThreshold is the minimum provider score (exclusive) for a
	// result to count as a match.
	MatchThreshold = 0.70

	maxEntities    = 3
	defaultSource  = "OpenSanctions"
	defaultSchema  = "Unknown"
	defaultTimeout = 10 * time.Second
)

// HTTPClient allows injecting a custom transport in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures the screening client.
type Config struct {
	BaseURL string
	Dataset string

	// APIKey is optional; the public match endpoint works without one.
	APIKey string

	// Timeout bounds a single lookup round trip.
	Timeout time.Duration

	// RatePerSecond and Burst limit outbound lookups. Zero disables limiting.
	RatePerSecond float64
	Burst         int

	// Concurrency caps parallel lookups in ScreenAll. Zero means one
	// goroutine per party.
	Concurrency int
}

// Client performs sanctions lookups.
type Client struct {
	cfg     Config
	http    HTTPClient
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a screening client. A nil httpClient uses
// http.DefaultClient; a nil logger discards log output.
func NewClient(cfg Config, httpClient HTTPClient, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Dataset == "" {
		cfg.Dataset = DefaultDataset
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		limiter: limiter,
		logger:  logging.OrDiscard(logger).With("provider", "sanctions"),
	}
}

// matchResponse mirrors the subset of the match API payload we use.
type matchResponse struct {
	Results []matchResult `json:"results"`
}

type matchResult struct {
	Score float64 `json:"score"`
	Match struct {
		Schema     string   `json:"schema"`
		Datasets   []string `json:"datasets"`
		Properties struct {
			Name []string `json:"name"`
		} `json:"properties"`
	} `json:"match"`
}

// Screen looks up a single party.
func (c *Client) Screen(ctx context.Context, party models.Party) models.Outcome[models.SanctionsFinding] {
	fallback := noMatch(party.Name)
	schema := schemaFor(party)

	results, err := c.lookup(ctx, party.Name, schema)
	if err != nil {
		reason := models.ReasonUpstreamUnavailable
		if errors.Is(err, errMalformed) {
			reason = models.ReasonMalformedResponse
		}
		c.logger.Warn("sanctions screening degraded",
			"schema", schema,
			"reason", string(reason),
			"error", err)
		return models.Degraded(fallback, reason, err)
	}

	return models.Ok(evaluate(party.Name, results))
}

// ScreenAll screens every party independently and concurrently. The
// returned slice is in the same order as parties.
func (c *Client) ScreenAll(ctx context.Context, parties []models.Party) []models.Outcome[models.SanctionsFinding] {
	out := make([]models.Outcome[models.SanctionsFinding], len(parties))
	if len(parties) == 0 {
		return out
	}

	g, gCtx := errgroup.WithContext(ctx)
	if c.cfg.Concurrency > 0 {
		g.SetLimit(c.cfg.Concurrency)
	}
	for i, party := range parties {
		g.Go(func() error {
			out[i] = c.Screen(gCtx, party)
			return nil // a failed party never cancels its siblings
		})
	}
	_ = g.Wait()

	return out
}

var errMalformed = errors.New("malformed sanctions response")

func (c *Client) lookup(ctx context.Context, name, schema string) ([]matchResult, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("schema", schema)
	q.Set("properties.name", name)
	endpoint := fmt.Sprintf("%s/match/%s?%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.Dataset), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "ApiKey "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("match request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("match request: unexpected status %d", resp.StatusCode)
	}

	var payload matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	return payload.Results, nil
}

// evaluate converts raw provider results into a finding. Only results
// scoring above MatchThreshold count; at most three are summarized.
func evaluate(partyName string, results []matchResult) models.SanctionsFinding {
	finding := noMatch(partyName)

	best := 0.0
	for _, r := range results {
		if r.Score <= MatchThreshold {
			continue
		}
		finding.Matched = true
		if r.Score > best {
			best = r.Score
		}
		if len(finding.Entities) < maxEntities {
			finding.Entities = append(finding.Entities, summarize(partyName, r))
		}
	}

	if finding.Matched {
		finding.Confidence = confidence(best)
	}
	return finding
}

func summarize(partyName string, r matchResult) models.MatchedEntity {
	e := models.MatchedEntity{
		Name:   partyName,
		Schema: defaultSchema,
		Source: defaultSource,
		Score:  r.Score,
	}
	if len(r.Match.Properties.Name) > 0 && r.Match.Properties.Name[0] != "" {
		e.Name = r.Match.Properties.Name[0]
	}
	if r.Match.Schema != "" {
		e.Schema = r.Match.Schema
	}
	if len(r.Match.Datasets) > 0 {
		e.Source = strings.Join(r.Match.Datasets, ", ")
	}
	return e
}

func confidence(score float64) int {
	c := int(math.Round(score * 100))
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

func noMatch(partyName string) models.SanctionsFinding {
	return models.SanctionsFinding{
		Party:    partyName,
		Matched:  false,
		Entities: []models.MatchedEntity{},
	}
}

func schemaFor(p models.Party) string {
	if p.IsVessel() {
		return "Vessel"
	}
	return "LegalEntity"
}
