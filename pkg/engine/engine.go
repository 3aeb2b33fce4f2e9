package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/gokaycavdar/go-georisk/pkg/entitlement"
	"github.com/gokaycavdar/go-georisk/pkg/logging"
	"github.com/gokaycavdar/go-georisk/pkg/models"
	"github.com/gokaycavdar/go-georisk/pkg/rules"
	"github.com/gokaycavdar/go-georisk/pkg/scoring"
	"github.com/gokaycavdar/go-georisk/pkg/telemetry"
)

// ErrUnauthorized is returned when an assessment is requested without a
// caller identity. No partial result accompanies it.
var ErrUnauthorized = errors.New("unauthorized")

// SanctionsScreener screens parties against sanctions watchlists.
// Implementations must degrade instead of failing.
type SanctionsScreener interface {
	ScreenAll(ctx context.Context, parties []models.Party) []models.Outcome[models.SanctionsFinding]
}

// WeatherSource reports the current weather risk at a coordinate.
// Implementations must degrade instead of failing.
type WeatherSource interface {
	Current(ctx context.Context, coords *models.Coordinates) models.Outcome[models.WeatherFinding]
}

// Engine is the route risk assessment orchestrator.
//
// Architecture Principles:
//   - Stateless: every assessment is a self-contained computation
//   - Tier strategy is chosen once, at the top of AssessRouteRisk
//   - External signals degrade to zero; only a missing caller fails
//   - Free-tier requests never reach an external provider
//
// Usage:
//
//	eng := engine.New(calc, gate, engine.WithSanctions(sc), engine.WithWeather(wc))
//	assessment, err := eng.AssessRouteRisk(ctx, callerID, query)
type Engine struct {
	zones     *rules.ZoneCalculator
	gate      entitlement.Gate
	sanctions SanctionsScreener
	weather   WeatherSource
	countries CountryResolver
	metrics   *telemetry.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
	newID     func() string
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSanctions sets the sanctions screener used for premium callers.
func WithSanctions(s SanctionsScreener) Option {
	return func(e *Engine) { e.sanctions = s }
}

// WithWeather sets the weather source used for premium callers.
func WithWeather(w WeatherSource) Option {
	return func(e *Engine) { e.weather = w }
}

// WithMetrics records assessment and provider metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine. The zone calculator and entitlement gate are
// required; without sanctions or weather sources premium assessments
// report those signals as degraded.
func New(zones *rules.ZoneCalculator, gate entitlement.Gate, opts ...Option) *Engine {
	e := &Engine{
		zones:  zones,
		gate:   gate,
		tracer: otel.Tracer("github.com/gokaycavdar/go-georisk/pkg/engine"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrDiscard(e.logger)
	return e
}

// AssessRouteRisk runs a full, tier-gated assessment for callerID.
//
// Returns ErrUnauthorized (and a nil assessment) when callerID is empty.
// Every other failure mode is absorbed into the score: an unreachable
// entitlement store downgrades the caller to the free tier, and
// unavailable providers contribute zero.
func (e *Engine) AssessRouteRisk(ctx context.Context, callerID string, q models.RouteQuery) (*models.RiskAssessment, error) {
	if callerID == "" {
		e.metrics.ObserveUnauthorized()
		return nil, ErrUnauthorized
	}

	ctx, span := e.tracer.Start(ctx, "georisk.AssessRouteRisk")
	defer span.End()
	start := time.Now()

	tier := e.resolveTier(ctx, callerID)
	premium := entitlement.IsPremium(tier)
	span.SetAttributes(attribute.Bool("georisk.premium", premium))

	strategy := e.freeAssessment
	if premium {
		strategy = e.premiumAssessment
	}
	assessment := strategy(ctx, q)
	assessment.ID = e.newID()
	assessment.Tier = tier

	span.SetAttributes(
		attribute.Int("georisk.score", assessment.Score),
		attribute.String("georisk.level", string(assessment.Level)),
	)
	e.metrics.ObserveAssessment(premium, assessment.Level, time.Since(start))
	e.logger.Info("route risk assessed",
		"assessment_id", assessment.ID,
		"premium", premium,
		"score", assessment.Score,
		"level", string(assessment.Level))

	return &assessment, nil
}

func (e *Engine) resolveTier(ctx context.Context, callerID string) string {
	tier, err := e.gate.Tier(ctx, callerID)
	if err != nil {
		e.logger.Warn("entitlement lookup failed; assessing as free tier", "error", err)
		return entitlement.TierFree
	}
	return tier
}

// freeAssessment runs only the zone calculator. It performs no I/O.
func (e *Engine) freeAssessment(_ context.Context, q models.RouteQuery) models.RiskAssessment {
	zone := e.zones.Calculate(q.OriginCountry, q.DestCountry, q.TransitPoints)
	return scoring.Free(zone, e.now())
}

// premiumAssessment runs zone scoring locally and fans out to the
// sanctions and weather providers concurrently.
func (e *Engine) premiumAssessment(ctx context.Context, q models.RouteQuery) models.RiskAssessment {
	signals := scoring.PremiumSignals{
		Zone: e.zones.Calculate(q.OriginCountry, q.DestCountry, q.TransitPoints),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		signals.Sanctions = e.screenParties(gCtx, q.Parties)
		return nil
	})
	g.Go(func() error {
		signals.Weather = e.destinationWeather(gCtx, q.DestCoords)
		return nil
	})
	_ = g.Wait() // signal lookups never return errors

	return scoring.Premium(signals, e.now())
}

func (e *Engine) screenParties(ctx context.Context, parties []models.Party) []models.Outcome[models.SanctionsFinding] {
	if len(parties) == 0 {
		return nil
	}

	ctx, span := e.tracer.Start(ctx, "georisk.ScreenParties",
		trace.WithAttributes(attribute.Int("georisk.parties", len(parties))))
	defer span.End()

	var outcomes []models.Outcome[models.SanctionsFinding]
	if e.sanctions == nil {
		outcomes = make([]models.Outcome[models.SanctionsFinding], len(parties))
		for i, p := range parties {
			outcomes[i] = models.Degraded(models.SanctionsFinding{Party: p.Name, Entities: []models.MatchedEntity{}},
				models.ReasonConfigMissing, nil)
		}
	} else {
		outcomes = e.sanctions.ScreenAll(ctx, parties)
	}

	for _, o := range outcomes {
		e.metrics.ObserveProvider("sanctions", o.Status, o.Reason)
	}
	return outcomes
}

func (e *Engine) destinationWeather(ctx context.Context, coords *models.Coordinates) models.Outcome[models.WeatherFinding] {
	if coords == nil {
		return models.Degraded(models.UnknownWeather(), models.ReasonNoCoordinates, nil)
	}
	if e.weather == nil {
		e.logger.Warn("weather source not configured; weather risk not assessed")
		return models.Degraded(models.UnknownWeather(), models.ReasonConfigMissing, nil)
	}

	ctx, span := e.tracer.Start(ctx, "georisk.DestinationWeather")
	defer span.End()

	out := e.weather.Current(ctx, coords)
	e.metrics.ObserveProvider("weather", out.Status, out.Reason)
	return out
}

// QuickRiskCheck scores only the zone signal. It needs no caller
// identity, performs no I/O and is never tier-restricted.
func (e *Engine) QuickRiskCheck(originCountry, destCountry string) models.QuickCheck {
	check := scoring.Quick(e.zones.Calculate(originCountry, destCountry, nil))
	e.metrics.ObserveQuickCheck(check.Level)
	return check
}

// HighRiskCountries dumps the zone reference data for display.
func (e *Engine) HighRiskCountries() models.HighRiskCountries {
	table := e.zones.Table()

	out := models.HighRiskCountries{
		Sanctions: []models.HighRiskCountry{},
		Conflict:  []models.HighRiskCountry{},
		Maritime:  table.Maritime(),
	}
	for _, code := range table.Sanctions() {
		out.Sanctions = append(out.Sanctions, models.HighRiskCountry{Code: code, Name: table.CountryName(code), Type: "sanctions"})
	}
	for _, code := range table.Conflict() {
		out.Conflict = append(out.Conflict, models.HighRiskCountry{Code: code, Name: table.CountryName(code), Type: "conflict"})
	}
	return out
}
