package model

import (
	"time"

	"github.com/google/uuid"
)

// FraudReport is the record written to report sinks and anchored by the
// ledger hash.
type FraudReport struct {
	AssessmentID          uuid.UUID `json:"assessment_id"`
	ClaimID               uuid.UUID `json:"claim_id"`
	FarmerID              string    `json:"farmer_id"`
	AnalysisTimestamp     time.Time `json:"analysis_timestamp"`
	FraudScore            float64   `json:"fraud_score"`
	RiskLevel             string    `json:"risk_level"`
	FraudIndicators       []string  `json:"fraud_indicators"`
	RequiresInvestigation bool      `json:"requires_investigation"`
	AutoReject            bool      `json:"auto_reject"`
	LedgerHash            string    `json:"ledger_hash,omitempty"`
}

// Report builds the report for a completed assessment. LedgerHash is left
// empty for the caller to fill.
func (a *FraudAssessment) Report() FraudReport {
	return FraudReport{
		AssessmentID:          a.id,
		ClaimID:               a.claimID,
		FarmerID:              a.farmerID,
		AnalysisTimestamp:     a.assessedAt,
		FraudScore:            a.FraudScore(),
		RiskLevel:             a.riskLevel.String(),
		FraudIndicators:       a.indicators,
		RequiresInvestigation: a.RequiresFieldVerification(),
		AutoReject:            a.AutoReject(),
	}
}
