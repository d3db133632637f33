package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ClaimDisposition is the downstream action implied by a fraud score.
type ClaimDisposition struct {
	value string
}

var (
	DispositionProceed           = ClaimDisposition{value: "PROCEED"}
	DispositionFieldVerification = ClaimDisposition{value: "FIELD_VERIFICATION"}
	DispositionAutoReject        = ClaimDisposition{value: "AUTO_REJECT"}
)

// Flag thresholds. Both are strict: a score equal to the threshold does not trip it.
var (
	fieldVerificationAbove = decimal.RequireFromString("0.6")
	autoRejectAbove        = decimal.RequireFromString("0.85")
)

// RequiresFieldVerification reports score > 0.6.
func RequiresFieldVerification(score decimal.Decimal) bool {
	return score.GreaterThan(fieldVerificationAbove)
}

// RequiresAutoReject reports score > 0.85.
func RequiresAutoReject(score decimal.Decimal) bool {
	return score.GreaterThan(autoRejectAbove)
}

// DispositionFromScore picks the most severe action the score calls for.
func DispositionFromScore(score decimal.Decimal) ClaimDisposition {
	switch {
	case RequiresAutoReject(score):
		return DispositionAutoReject
	case RequiresFieldVerification(score):
		return DispositionFieldVerification
	default:
		return DispositionProceed
	}
}

func ClaimDispositionFromString(s string) (ClaimDisposition, error) {
	switch s {
	case "PROCEED":
		return DispositionProceed, nil
	case "FIELD_VERIFICATION":
		return DispositionFieldVerification, nil
	case "AUTO_REJECT":
		return DispositionAutoReject, nil
	default:
		return ClaimDisposition{}, fmt.Errorf("invalid claim disposition: %s", s)
	}
}

func (d ClaimDisposition) String() string { return d.value }

func (d ClaimDisposition) IsZero() bool { return d.value == "" }

func (d ClaimDisposition) Equal(other ClaimDisposition) bool { return d.value == other.value }
