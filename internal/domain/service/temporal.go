package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
)

const recentClaimWindow = 90 * 24 * time.Hour

var (
	temporalDenseHistory  = decimal.RequireFromString("0.3")
	temporalOutsideWindow = decimal.RequireFromString("0.2")
	temporalNearHarvest   = decimal.RequireFromString("0.3")
)

// TemporalAnalyzer scores claim timing against the crop cycle and recent
// claim density.
type TemporalAnalyzer struct{}

func (TemporalAnalyzer) Analyze(claim model.ClaimInput, history []model.HistoricalRecord) decimal.Decimal {
	score := decimal.Zero

	recent := 0
	for _, rec := range history {
		age := claim.ClaimDate.Sub(rec.Date)
		if age >= 0 && age < recentClaimWindow {
			recent++
		}
	}
	if recent > 2 {
		score = score.Add(temporalDenseHistory)
	}

	days := claim.DaysSinceSowing()
	if window, ok := claim.CropType.HarvestWindow(); ok && !window.Contains(days) {
		score = score.Add(temporalOutsideWindow)
	}

	// Stacks with the window rule.
	if claim.CropType.IsShortCycleCereal() && days > 120 {
		score = score.Add(temporalNearHarvest)
	}

	return clampUnit(score)
}
