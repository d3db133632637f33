package service

import (
	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
)

// Validate checks the inputs the rules rely on. Missing or out-of-range
// coordinates are not a validation failure; the geospatial rules score them.
func Validate(farmer model.FarmerProfile, claim model.ClaimInput) error {
	v := &ValidationError{}

	if farmer.FarmerID == "" {
		v.add("farmer ID is required")
	}
	if farmer.TrustScore < 0 || farmer.TrustScore > 1000 {
		v.add("trust score must be between 0 and 1000")
	}
	if claim.ClaimID == uuid.Nil {
		v.add("claim ID is required")
	}
	if claim.CropType.IsZero() {
		v.add("crop type is required")
	}
	if claim.DamageType.IsZero() {
		v.add("damage type is required")
	}
	switch {
	case claim.ClaimDate.IsZero():
		v.add("claim date is required")
	case claim.SowingDate.IsZero():
		v.add("sowing date is required")
	case claim.SowingDate.After(claim.ClaimDate):
		v.add("sowing date must not be after claim date")
	}
	if claim.AreaHectares < 0 {
		v.add("area must not be negative")
	}
	if claim.ClaimAmount.IsNegative() {
		v.add("claim amount must not be negative")
	}
	if r := claim.Overrides.AreaMismatchRatio; r != nil && *r < 0 {
		v.add("area mismatch ratio must not be negative")
	}

	return v.errOrNil()
}
