package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jayanth2212/AgriSure/internal/domain/event"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/pkg/events"
)

// SubScores holds the five analyzer outputs, each in [0,1].
type SubScores struct {
	Temporal   decimal.Decimal
	Geospatial decimal.Decimal
	Weather    decimal.Decimal
	Satellite  decimal.Decimal
	Behavioral decimal.Decimal
}

// FraudAssessment is the aggregate root holding the result of one scoring pass.
type FraudAssessment struct {
	events.EventCollector

	assessedAt    time.Time
	rawScore      decimal.Decimal
	riskLevel     valueobject.RiskLevel
	disposition   valueobject.ClaimDisposition
	subScores     SubScores
	indicators    []string
	providerNotes []string
	farmerID      string
	claimID       uuid.UUID
	id            uuid.UUID
}

// NewFraudAssessment starts an unscored assessment for a claim. Call Complete
// to record the result.
func NewFraudAssessment(claimID uuid.UUID, farmerID string) (*FraudAssessment, error) {
	if claimID == uuid.Nil {
		return nil, fmt.Errorf("claim ID is required")
	}
	if farmerID == "" {
		return nil, fmt.Errorf("farmer ID is required")
	}
	return &FraudAssessment{
		id:         uuid.New(),
		claimID:    claimID,
		farmerID:   farmerID,
		indicators: []string{},
	}, nil
}

// Complete records the weighted score and derived tier and flags, and emits
// the assessment events.
func (a *FraudAssessment) Complete(
	subScores SubScores,
	rawScore decimal.Decimal,
	indicators []string,
	providerNotes []string,
	assessedAt time.Time,
) error {
	if rawScore.IsNegative() || rawScore.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("fraud score must be between 0 and 1, got %s", rawScore)
	}
	if !a.assessedAt.IsZero() {
		return fmt.Errorf("assessment %s already completed", a.id)
	}

	a.subScores = subScores
	a.rawScore = rawScore
	a.riskLevel = valueobject.RiskLevelFromScore(rawScore)
	a.disposition = valueobject.DispositionFromScore(rawScore)
	a.indicators = append([]string{}, indicators...)
	a.providerNotes = append([]string(nil), providerNotes...)
	a.assessedAt = assessedAt.UTC()

	a.Record(event.NewAssessmentCompleted(
		a.id, a.claimID, a.farmerID, a.FraudScore(), a.riskLevel.String(),
		a.indicators, a.RequiresFieldVerification(), a.AutoReject(), a.assessedAt,
	))
	if a.RequiresFieldVerification() {
		a.Record(event.NewFieldVerificationRequired(a.id, a.claimID, a.farmerID, a.FraudScore(), a.indicators))
	}
	if a.AutoReject() {
		a.Record(event.NewClaimAutoRejected(a.id, a.claimID, a.farmerID, a.FraudScore(), a.indicators))
	}
	return nil
}

// Reconstruct rebuilds an assessment from persisted data (no validation, no events).
func Reconstruct(
	id, claimID uuid.UUID,
	farmerID string,
	subScores SubScores,
	rawScore decimal.Decimal,
	indicators, providerNotes []string,
	assessedAt time.Time,
) *FraudAssessment {
	return &FraudAssessment{
		id:            id,
		claimID:       claimID,
		farmerID:      farmerID,
		subScores:     subScores,
		rawScore:      rawScore,
		riskLevel:     valueobject.RiskLevelFromScore(rawScore),
		disposition:   valueobject.DispositionFromScore(rawScore),
		indicators:    indicators,
		providerNotes: providerNotes,
		assessedAt:    assessedAt,
	}
}

// FraudScore is the reported score, rounded half away from zero to 2 places.
func (a *FraudAssessment) FraudScore() float64 {
	return a.rawScore.Round(2).InexactFloat64()
}

// RequiresFieldVerification is true when the unrounded score exceeds 0.6.
func (a *FraudAssessment) RequiresFieldVerification() bool {
	return valueobject.RequiresFieldVerification(a.rawScore)
}

// AutoReject is true when the unrounded score exceeds 0.85.
func (a *FraudAssessment) AutoReject() bool {
	return valueobject.RequiresAutoReject(a.rawScore)
}

// --- Accessors ---

func (a *FraudAssessment) ID() uuid.UUID                             { return a.id }
func (a *FraudAssessment) ClaimID() uuid.UUID                        { return a.claimID }
func (a *FraudAssessment) FarmerID() string                          { return a.farmerID }
func (a *FraudAssessment) RawScore() decimal.Decimal                 { return a.rawScore }
func (a *FraudAssessment) RiskLevel() valueobject.RiskLevel          { return a.riskLevel }
func (a *FraudAssessment) Disposition() valueobject.ClaimDisposition { return a.disposition }
func (a *FraudAssessment) SubScores() SubScores                      { return a.subScores }
func (a *FraudAssessment) FraudIndicators() []string                 { return a.indicators }
func (a *FraudAssessment) ProviderNotes() []string                   { return a.providerNotes }
func (a *FraudAssessment) AssessedAt() time.Time                     { return a.assessedAt }
