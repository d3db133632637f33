package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
)

var (
	// ErrProviderUnavailable means a data provider has no answer for the query.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrInvalidBoundary is returned for field outlines that are not a usable
	// GeoJSON polygon.
	ErrInvalidBoundary = errors.New("invalid field boundary")
)

// WeatherObservation is the weather at a claim location over the week before
// the claim date.
type WeatherObservation struct {
	Rainfall7dMM    float64
	MinTemperatureC float64
	HailDetected    bool
}

type WeatherProvider interface {
	Query(ctx context.Context, location valueobject.Coordinates, date time.Time) (WeatherObservation, error)
}

// SatelliteProvider answers vegetation and damage-pattern questions from imagery.
type SatelliteProvider interface {
	NDVI(ctx context.Context, location valueobject.Coordinates, date time.Time) (float64, error)
	ClassifyDamagePattern(ctx context.Context, location valueobject.Coordinates, date time.Time) (valueobject.DamagePattern, error)
	DetectArtificialSigns(ctx context.Context, location valueobject.Coordinates, date time.Time) (bool, error)
}

// GeoRegistry knows registered field boundaries and prior claim locations.
// IsDuplicateCoordinate ignores the registration of claimID itself.
type GeoRegistry interface {
	IsDuplicateCoordinate(ctx context.Context, claimID uuid.UUID, location valueobject.Coordinates) (bool, error)
	EstimateAreaHectares(ctx context.Context, location valueobject.Coordinates) (float64, error)
}

// FieldBoundaryRegistry stores field outlines used for area estimates.
type FieldBoundaryRegistry interface {
	RegisterBoundary(ctx context.Context, farmerID string, geoJSON []byte) (uuid.UUID, error)
}

// EngineObserver receives scoring telemetry.
type EngineObserver interface {
	ProviderFailed(provider string)
	AssessmentCompleted(level valueobject.RiskLevel, autoReject bool, elapsed time.Duration)
}
