package port

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/pkg/events"
)

// ErrAssessmentNotFound is returned by lookups that match nothing.
var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentRepository persists fraud assessments.
type AssessmentRepository interface {
	Save(ctx context.Context, assessment *model.FraudAssessment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FraudAssessment, error)
	FindLatestByClaimID(ctx context.Context, claimID uuid.UUID) (*model.FraudAssessment, error)
	ListByFarmer(ctx context.Context, farmerID string, limit, offset int) ([]*model.FraudAssessment, error)
}

// ClaimHistoryRepository stores the per-farmer policy and claim history the
// behavioral and temporal analyzers read.
type ClaimHistoryRepository interface {
	// ListByFarmer leaves out the record of excludeClaimID so a claim never
	// counts against itself when it is assessed again.
	ListByFarmer(ctx context.Context, farmerID string, excludeClaimID uuid.UUID) ([]model.HistoricalRecord, error)
	Append(ctx context.Context, farmerID string, claimID uuid.UUID, record model.HistoricalRecord) error
}

// ClaimLocationRegistrar records where a claim was filed so later claims can
// be checked for coordinate reuse.
type ClaimLocationRegistrar interface {
	RegisterClaimLocation(ctx context.Context, claimID uuid.UUID, farmerID string, location valueobject.Coordinates) error
}

// EventPublisher hands domain events to the messaging infrastructure.
type EventPublisher interface {
	Publish(ctx context.Context, events ...events.DomainEvent) error
}
