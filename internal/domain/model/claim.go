package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/pkg/money"
)

// ClaimInput is one insurance claim under review.
type ClaimInput struct {
	ClaimID      uuid.UUID
	CropType     valueobject.CropType
	DamageType   valueobject.DamageType
	ClaimDate    time.Time
	SowingDate   time.Time
	Location     *valueobject.Coordinates // nil when the claim carries no coordinates
	AreaHectares float64
	ClaimAmount  money.Money
	SumInsured   money.Money // policy amount, zero when unknown
	Overrides    ClaimOverrides
}

// DaysSinceSowing is the whole number of days between sowing and the claim.
func (c ClaimInput) DaysSinceSowing() int {
	return int(c.ClaimDate.Sub(c.SowingDate).Hours() / 24)
}

// HasValidLocation reports whether coordinates are present and in range.
func (c ClaimInput) HasValidLocation() bool {
	return c.Location != nil && c.Location.Valid()
}

// ClaimOverrides are pre-computed observations supplied with the claim. A set
// field replaces the corresponding provider query.
type ClaimOverrides struct {
	DuplicateCoordinates *bool
	AreaMismatchRatio    *float64
	Rainfall7dMM         *float64
	MinTemperatureC      *float64
	HailDetected         *bool
	ArtificialPattern    *bool
	SuddenNDVIDrop       *bool
}

// HasWeather reports whether any weather reading is overridden.
func (o ClaimOverrides) HasWeather() bool {
	return o.Rainfall7dMM != nil || o.MinTemperatureC != nil || o.HailDetected != nil
}

// FarmerProfile identifies the claimant.
type FarmerProfile struct {
	FarmerID string
	// TrustScore (0-1000) is carried for reporting; scoring does not read it.
	TrustScore int
}

// HistoricalRecord is one past policy season for a farmer.
type HistoricalRecord struct {
	Date         time.Time
	Claimed      bool
	DamageType   valueobject.DamageType // zero when not claimed
	ClaimAmount  money.Money
	PolicyAmount money.Money
}

// AsHistoricalRecord converts an assessed claim into the record later claims
// will see in the farmer's history.
func (c ClaimInput) AsHistoricalRecord() HistoricalRecord {
	return HistoricalRecord{
		Date:         c.ClaimDate,
		Claimed:      true,
		DamageType:   c.DamageType,
		ClaimAmount:  c.ClaimAmount,
		PolicyAmount: c.SumInsured,
	}
}
