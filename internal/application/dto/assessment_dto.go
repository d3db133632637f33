package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/pkg/money"
)

const defaultCurrency = "INR"

// AssessClaimRequest is the input DTO for the AssessClaim use case. Dates
// are YYYY-MM-DD or RFC 3339.
type AssessClaimRequest struct {
	Overrides  *OverridesDTO `json:"overrides,omitempty"`
	Latitude   *float64      `json:"latitude,omitempty"`
	Longitude  *float64      `json:"longitude,omitempty"`
	ClaimID    string        `json:"claim_id"`
	FarmerID   string        `json:"farmer_id"`
	CropType   string        `json:"crop_type"`
	DamageType string        `json:"damage_type"`
	ClaimDate  string        `json:"claim_date"`
	SowingDate string        `json:"sowing_date"`
	Currency   string        `json:"currency"`
	// ExternalRecordHash, when set, is stored as the ledger hash instead of
	// one computed from the report.
	ExternalRecordHash string `json:"external_record_hash,omitempty"`
	// History nil means "load from the claim history store"; an empty list
	// means the farmer has none.
	History      []HistoricalRecordDTO `json:"history"`
	TrustScore   int                   `json:"trust_score"`
	AreaHectares float64               `json:"area_hectares"`
	ClaimAmount  float64               `json:"claim_amount"`
	SumInsured   float64               `json:"sum_insured"`
}

// OverridesDTO carries pre-computed observations. Unset fields fall through
// to the providers.
type OverridesDTO struct {
	DuplicateCoordinates *bool    `json:"duplicate_coordinates,omitempty"`
	AreaMismatchRatio    *float64 `json:"area_mismatch_ratio,omitempty"`
	Rainfall7dMM         *float64 `json:"rainfall_7d_mm,omitempty"`
	MinTemperatureC      *float64 `json:"min_temperature_c,omitempty"`
	HailDetected         *bool    `json:"hail_detected,omitempty"`
	ArtificialPattern    *bool    `json:"artificial_pattern,omitempty"`
	SuddenNDVIDrop       *bool    `json:"sudden_ndvi_drop,omitempty"`
}

// HistoricalRecordDTO is one past policy season.
type HistoricalRecordDTO struct {
	Date         string  `json:"date"`
	DamageType   string  `json:"damage_type,omitempty"`
	Claimed      bool    `json:"claimed"`
	ClaimAmount  float64 `json:"claim_amount"`
	PolicyAmount float64 `json:"policy_amount"`
}

// ToDomain converts the request into scoring inputs. A nil history is kept
// nil. Malformed fields are reported together as a *service.ValidationError.
func (r AssessClaimRequest) ToDomain() (model.FarmerProfile, model.ClaimInput, []model.HistoricalRecord, error) {
	var problems []string
	fail := func(format string, args ...any) { problems = append(problems, fmt.Sprintf(format, args...)) }

	farmer := model.FarmerProfile{FarmerID: r.FarmerID, TrustScore: r.TrustScore}

	claim := model.ClaimInput{AreaHectares: r.AreaHectares}
	if r.ClaimID != "" {
		id, err := uuid.Parse(r.ClaimID)
		if err != nil {
			fail("invalid claim ID %q", r.ClaimID)
		}
		claim.ClaimID = id
	}
	if r.CropType != "" {
		crop, err := valueobject.NewCropType(r.CropType)
		if err != nil {
			fail("%v", err)
		}
		claim.CropType = crop
	}
	if r.DamageType != "" {
		damage, err := valueobject.NewDamageType(r.DamageType)
		if err != nil {
			fail("%v", err)
		}
		claim.DamageType = damage
	}
	var err error
	if claim.ClaimDate, err = parseDate(r.ClaimDate); err != nil {
		fail("invalid claim date %q", r.ClaimDate)
	}
	if claim.SowingDate, err = parseDate(r.SowingDate); err != nil {
		fail("invalid sowing date %q", r.SowingDate)
	}

	switch {
	case r.Latitude != nil && r.Longitude != nil:
		claim.Location = &valueobject.Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}
	case r.Latitude != nil || r.Longitude != nil:
		fail("latitude and longitude must be given together")
	}

	code := r.Currency
	if code == "" {
		code = defaultCurrency
	}
	currency, err := money.ParseCurrency(code)
	if err != nil {
		fail("%v", err)
	}
	claim.ClaimAmount = money.FromFloat(r.ClaimAmount, currency)
	claim.SumInsured = money.FromFloat(r.SumInsured, currency)

	if o := r.Overrides; o != nil {
		claim.Overrides = model.ClaimOverrides{
			DuplicateCoordinates: o.DuplicateCoordinates,
			AreaMismatchRatio:    o.AreaMismatchRatio,
			Rainfall7dMM:         o.Rainfall7dMM,
			MinTemperatureC:      o.MinTemperatureC,
			HailDetected:         o.HailDetected,
			ArtificialPattern:    o.ArtificialPattern,
			SuddenNDVIDrop:       o.SuddenNDVIDrop,
		}
	}

	var history []model.HistoricalRecord
	if r.History != nil {
		history = make([]model.HistoricalRecord, 0, len(r.History))
		for i, h := range r.History {
			rec := model.HistoricalRecord{
				Claimed:      h.Claimed,
				ClaimAmount:  money.FromFloat(h.ClaimAmount, currency),
				PolicyAmount: money.FromFloat(h.PolicyAmount, currency),
			}
			if rec.Date, err = parseDate(h.Date); err != nil || rec.Date.IsZero() {
				fail("history[%d]: invalid date %q", i, h.Date)
			}
			if h.DamageType != "" {
				if rec.DamageType, err = valueobject.NewDamageType(h.DamageType); err != nil {
					fail("history[%d]: %v", i, err)
				}
			}
			history = append(history, rec)
		}
	}

	if len(problems) > 0 {
		return model.FarmerProfile{}, model.ClaimInput{}, nil, &service.ValidationError{Problems: problems}
	}
	return farmer, claim, history, nil
}

// parseDate accepts a date or an RFC 3339 timestamp. An empty string is the
// zero time so that Validate reports it as missing.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// SubScoresDTO are the five analyzer outputs.
type SubScoresDTO struct {
	Temporal   float64 `json:"temporal"`
	Geospatial float64 `json:"geospatial"`
	Weather    float64 `json:"weather"`
	Satellite  float64 `json:"satellite"`
	Behavioral float64 `json:"behavioral"`
}

// AssessmentResponse is the output DTO returned after an assessment.
type AssessmentResponse struct {
	AssessedAt                time.Time    `json:"assessed_at"`
	FraudIndicators           []string     `json:"fraud_indicators"`
	ProviderNotes             []string     `json:"provider_notes,omitempty"`
	SubScores                 SubScoresDTO `json:"sub_scores"`
	ID                        uuid.UUID    `json:"id"`
	ClaimID                   uuid.UUID    `json:"claim_id"`
	FarmerID                  string       `json:"farmer_id"`
	RiskLevel                 string       `json:"risk_level"`
	Disposition               string       `json:"disposition"`
	LedgerHash                string       `json:"ledger_hash,omitempty"`
	ReportReference           string       `json:"report_reference,omitempty"`
	FraudScore                float64      `json:"fraud_score"`
	RequiresFieldVerification bool         `json:"requires_field_verification"`
	AutoReject                bool         `json:"auto_reject"`
}

// GetAssessmentRequest is the input DTO for retrieving an assessment.
type GetAssessmentRequest struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// ListFarmerAssessmentsRequest pages through a farmer's assessments, newest
// first.
type ListFarmerAssessmentsRequest struct {
	FarmerID string `json:"farmer_id"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

// ListAssessmentsResponse is one page of assessments.
type ListAssessmentsResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

// FromModel maps a domain model to the response DTO.
func FromModel(a *model.FraudAssessment) AssessmentResponse {
	s := a.SubScores()
	indicators := a.FraudIndicators()
	if indicators == nil {
		indicators = []string{}
	}
	return AssessmentResponse{
		ID:                        a.ID(),
		ClaimID:                   a.ClaimID(),
		FarmerID:                  a.FarmerID(),
		FraudScore:                a.FraudScore(),
		RiskLevel:                 a.RiskLevel().String(),
		Disposition:               a.Disposition().String(),
		RequiresFieldVerification: a.RequiresFieldVerification(),
		AutoReject:                a.AutoReject(),
		FraudIndicators:           indicators,
		ProviderNotes:             a.ProviderNotes(),
		AssessedAt:                a.AssessedAt(),
		SubScores: SubScoresDTO{
			Temporal:   s.Temporal.Round(4).InexactFloat64(),
			Geospatial: s.Geospatial.Round(4).InexactFloat64(),
			Weather:    s.Weather.Round(4).InexactFloat64(),
			Satellite:  s.Satellite.Round(4).InexactFloat64(),
			Behavioral: s.Behavioral.Round(4).InexactFloat64(),
		},
	}
}

// FromModels maps a page of assessments.
func FromModels(list []*model.FraudAssessment) []AssessmentResponse {
	out := make([]AssessmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromModel(a))
	}
	return out
}
