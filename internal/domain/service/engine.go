package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
)

const defaultProviderTimeout = 5 * time.Second

// EngineDeps are the collaborators of a FraudEngine. Nil providers are
// treated as permanently unavailable.
type EngineDeps struct {
	Weather         port.WeatherProvider
	Satellite       port.SatelliteProvider
	Geo             port.GeoRegistry
	Observer        port.EngineObserver
	Logger          *slog.Logger
	ProviderTimeout time.Duration
	Now             func() time.Time
}

// FraudEngine runs the five analyzers and combines them into an assessment.
// It keeps no state between calls and is safe for concurrent use.
type FraudEngine struct {
	temporal   TemporalAnalyzer
	geospatial *GeospatialVerifier
	weather    *WeatherChecker
	satellite  *SatelliteAnalyzer
	behavioral BehavioralAnalyzer

	observer port.EngineObserver
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

func NewFraudEngine(deps EngineDeps) *FraudEngine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.ProviderTimeout <= 0 {
		deps.ProviderTimeout = defaultProviderTimeout
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	guard := providerGuard{timeout: deps.ProviderTimeout, logger: deps.Logger, observer: deps.Observer}

	return &FraudEngine{
		geospatial: &GeospatialVerifier{registry: deps.Geo, guard: guard},
		weather:    &WeatherChecker{provider: deps.Weather, guard: guard},
		satellite:  &SatelliteAnalyzer{provider: deps.Satellite, guard: guard},
		observer:   deps.Observer,
		logger:     deps.Logger,
		tracer:     otel.Tracer("agrisure/fraud"),
		now:        deps.Now,
	}
}

// Assess scores one claim. It fails only on invalid input, a canceled
// context, or a score outside [0,1].
func (e *FraudEngine) Assess(
	ctx context.Context,
	farmer model.FarmerProfile,
	claim model.ClaimInput,
	history []model.HistoricalRecord,
) (*model.FraudAssessment, error) {
	if err := Validate(farmer, claim); err != nil {
		return nil, err
	}

	ctx, span := e.tracer.Start(ctx, "fraud.assess",
		trace.WithAttributes(
			attribute.String("claim.id", claim.ClaimID.String()),
			attribute.String("farmer.id", farmer.FarmerID),
			attribute.String("claim.crop_type", claim.CropType.String()),
			attribute.String("claim.damage_type", claim.DamageType.String()),
			attribute.Int("history.records", len(history)),
		),
	)
	defer span.End()
	started := time.Now()

	var (
		scores model.SubScores
		notes  [3][]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scores.Temporal = e.temporal.Analyze(claim, history)
		return nil
	})
	g.Go(func() error {
		scores.Geospatial, notes[0] = e.geospatial.Analyze(gctx, claim)
		return nil
	})
	g.Go(func() error {
		scores.Weather, notes[1] = e.weather.Analyze(gctx, claim)
		return nil
	})
	g.Go(func() error {
		scores.Satellite, notes[2] = e.satellite.Analyze(gctx, claim)
		return nil
	})
	g.Go(func() error {
		scores.Behavioral = e.behavioral.Analyze(farmer, history)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, "canceled")
		return nil, err
	}

	for _, c := range components(scores) {
		if !inUnitInterval(c.score) {
			err := fmt.Errorf("%w: %s score %s outside [0,1]", ErrInternalInconsistency, c.name, c.score)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}
	raw := WeightedScore(scores)
	if !inUnitInterval(raw) {
		err := fmt.Errorf("%w: fraud score %s outside [0,1]", ErrInternalInconsistency, raw)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	assessment, err := model.NewFraudAssessment(claim.ClaimID, farmer.FarmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	var providerNotes []string
	for _, n := range notes {
		providerNotes = append(providerNotes, n...)
	}
	if err := assessment.Complete(scores, raw, Indicators(scores), providerNotes, e.now()); err != nil {
		return nil, fmt.Errorf("failed to complete assessment: %w", err)
	}

	span.SetAttributes(
		attribute.Float64("fraud.score", assessment.FraudScore()),
		attribute.String("fraud.risk_level", assessment.RiskLevel().String()),
		attribute.StringSlice("fraud.indicators", assessment.FraudIndicators()),
		attribute.Float64("fraud.temporal", scores.Temporal.InexactFloat64()),
		attribute.Float64("fraud.geospatial", scores.Geospatial.InexactFloat64()),
		attribute.Float64("fraud.weather", scores.Weather.InexactFloat64()),
		attribute.Float64("fraud.satellite", scores.Satellite.InexactFloat64()),
		attribute.Float64("fraud.behavioral", scores.Behavioral.InexactFloat64()),
	)

	e.logger.InfoContext(ctx, "fraud analysis completed",
		"farmer_id", farmer.FarmerID,
		"claim_id", claim.ClaimID,
		"fraud_score", assessment.FraudScore(),
		"risk_level", assessment.RiskLevel().String(),
	)
	if e.observer != nil {
		e.observer.AssessmentCompleted(assessment.RiskLevel(), assessment.AutoReject(), time.Since(started))
	}

	return assessment, nil
}
