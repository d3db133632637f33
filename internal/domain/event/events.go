package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/pkg/events"
)

const (
	// EventTypeAssessmentCompleted is emitted for every scored claim.
	EventTypeAssessmentCompleted = "fraud.assessment.completed"

	// EventTypeFieldVerificationRequired is emitted when the score calls for an on-site inspection.
	EventTypeFieldVerificationRequired = "fraud.field_verification.required"

	// EventTypeClaimAutoRejected is emitted when the score is high enough to reject without review.
	EventTypeClaimAutoRejected = "fraud.claim.auto_rejected"

	AggregateTypeFraudAssessment = "FraudAssessment"
)

// AssessmentCompleted carries the full outcome of a scoring pass.
type AssessmentCompleted struct {
	events.BaseEvent
	ClaimID                   uuid.UUID `json:"claim_id"`
	FarmerID                  string    `json:"farmer_id"`
	FraudScore                float64   `json:"fraud_score"`
	RiskLevel                 string    `json:"risk_level"`
	Indicators                []string  `json:"fraud_indicators"`
	RequiresFieldVerification bool      `json:"requires_field_verification"`
	AutoReject                bool      `json:"auto_reject"`
	AssessedAt                time.Time `json:"assessed_at"`
}

func NewAssessmentCompleted(
	assessmentID, claimID uuid.UUID,
	farmerID string,
	score float64,
	riskLevel string,
	indicators []string,
	fieldVerification, autoReject bool,
	assessedAt time.Time,
) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:                 events.NewBaseEvent(EventTypeAssessmentCompleted, AggregateTypeFraudAssessment, assessmentID),
		ClaimID:                   claimID,
		FarmerID:                  farmerID,
		FraudScore:                score,
		RiskLevel:                 riskLevel,
		Indicators:                indicators,
		RequiresFieldVerification: fieldVerification,
		AutoReject:                autoReject,
		AssessedAt:                assessedAt,
	}
}

// FieldVerificationRequired asks the field team to inspect the claimed plot.
type FieldVerificationRequired struct {
	events.BaseEvent
	ClaimID    uuid.UUID `json:"claim_id"`
	FarmerID   string    `json:"farmer_id"`
	FraudScore float64   `json:"fraud_score"`
	Indicators []string  `json:"fraud_indicators"`
}

func NewFieldVerificationRequired(assessmentID, claimID uuid.UUID, farmerID string, score float64, indicators []string) FieldVerificationRequired {
	return FieldVerificationRequired{
		BaseEvent:  events.NewBaseEvent(EventTypeFieldVerificationRequired, AggregateTypeFraudAssessment, assessmentID),
		ClaimID:    claimID,
		FarmerID:   farmerID,
		FraudScore: score,
		Indicators: indicators,
	}
}

// ClaimAutoRejected tells the claims service to reject the claim.
type ClaimAutoRejected struct {
	events.BaseEvent
	ClaimID    uuid.UUID `json:"claim_id"`
	FarmerID   string    `json:"farmer_id"`
	FraudScore float64   `json:"fraud_score"`
	Indicators []string  `json:"fraud_indicators"`
}

func NewClaimAutoRejected(assessmentID, claimID uuid.UUID, farmerID string, score float64, indicators []string) ClaimAutoRejected {
	return ClaimAutoRejected{
		BaseEvent:  events.NewBaseEvent(EventTypeClaimAutoRejected, AggregateTypeFraudAssessment, assessmentID),
		ClaimID:    claimID,
		FarmerID:   farmerID,
		FraudScore: score,
		Indicators: indicators,
	}
}
