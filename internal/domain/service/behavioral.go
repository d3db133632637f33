package service

import (
	"github.com/shopspring/decimal"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
)

var (
	behavioralHighClaimRatio = decimal.RequireFromString("0.5")
	behavioralSameCause      = decimal.RequireFromString("0.3")
	behavioralLargeClaims    = decimal.RequireFromString("0.4")

	claimRatioLimit    = decimal.RequireFromString("0.7")
	largeClaimOfPolicy = decimal.RequireFromString("0.8")
)

// BehavioralAnalyzer scores the farmer's claim history. The trust score is
// not part of the formula.
type BehavioralAnalyzer struct{}

func (BehavioralAnalyzer) Analyze(_ model.FarmerProfile, history []model.HistoricalRecord) decimal.Decimal {
	if len(history) == 0 {
		return decimal.Zero
	}

	claimed := 0
	// sized counts claimed records with a known policy amount; only those can
	// be judged large.
	sized, large := 0, 0
	causes := make(map[string]struct{})
	for _, rec := range history {
		if !rec.Claimed {
			continue
		}
		claimed++
		causes[rec.DamageType.String()] = struct{}{}
		if rec.PolicyAmount.IsZero() {
			continue
		}
		sized++
		if rec.ClaimAmount.GreaterThan(rec.PolicyAmount.Scale(largeClaimOfPolicy)) {
			large++
		}
	}

	score := decimal.Zero
	ratio := decimal.NewFromInt(int64(claimed)).Div(decimal.NewFromInt(int64(len(history))))
	if ratio.GreaterThan(claimRatioLimit) {
		score = score.Add(behavioralHighClaimRatio)
	}
	if len(causes) == 1 && claimed > 2 {
		score = score.Add(behavioralSameCause)
	}
	if sized > 0 && 2*large > sized {
		score = score.Add(behavioralLargeClaims)
	}

	return clampUnit(score)
}
