package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RiskLevel is the discrete fraud-risk tier of an assessment.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow      = RiskLevel{value: "LOW"}
	RiskLevelMedium   = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh     = RiskLevel{value: "HIGH"}
	RiskLevelCritical = RiskLevel{value: "CRITICAL"}
)

// Tier lower bounds. Ranges are left-closed.
var (
	mediumFloor   = decimal.RequireFromString("0.3")
	highFloor     = decimal.RequireFromString("0.6")
	criticalFloor = decimal.RequireFromString("0.8")
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "CRITICAL":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore maps a fraud score in [0,1] to its tier. A score exactly
// on a boundary belongs to the higher tier.
func RiskLevelFromScore(score decimal.Decimal) RiskLevel {
	switch {
	case score.GreaterThanOrEqual(criticalFloor):
		return RiskLevelCritical
	case score.GreaterThanOrEqual(highFloor):
		return RiskLevelHigh
	case score.GreaterThanOrEqual(mediumFloor):
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

func (r RiskLevel) String() string {
	return r.value
}

// Rank orders tiers from 1 (LOW) to 4 (CRITICAL); 0 for the zero value.
func (r RiskLevel) Rank() int {
	switch r.value {
	case "LOW":
		return 1
	case "MEDIUM":
		return 2
	case "HIGH":
		return 3
	case "CRITICAL":
		return 4
	default:
		return 0
	}
}

func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
