package service

import (
	"github.com/shopspring/decimal"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
)

var (
	one = decimal.NewFromInt(1)

	// indicatorThreshold applies to every analyzer; a sub-score strictly above
	// it emits the analyzer's indicator.
	indicatorThreshold = decimal.RequireFromString("0.5")
)

const (
	IndicatorTiming     = "Suspicious timing pattern detected"
	IndicatorGeospatial = "Geospatial data inconsistency"
	IndicatorWeather    = "Weather data mismatch with claimed damage"
	IndicatorSatellite  = "Satellite imagery suggests artificial damage"
	IndicatorBehavioral = "Unusual behavioral pattern in claim history"
)

// Weights of the composite score. They sum to 1.
var (
	weightTemporal   = decimal.RequireFromString("0.25")
	weightGeospatial = decimal.RequireFromString("0.25")
	weightWeather    = decimal.RequireFromString("0.20")
	weightSatellite  = decimal.RequireFromString("0.20")
	weightBehavioral = decimal.RequireFromString("0.10")
)

type component struct {
	name      string
	score     decimal.Decimal
	weight    decimal.Decimal
	indicator string
}

// components lists the sub-scores in indicator order.
func components(s model.SubScores) []component {
	return []component{
		{"temporal", s.Temporal, weightTemporal, IndicatorTiming},
		{"geospatial", s.Geospatial, weightGeospatial, IndicatorGeospatial},
		{"weather", s.Weather, weightWeather, IndicatorWeather},
		{"satellite", s.Satellite, weightSatellite, IndicatorSatellite},
		{"behavioral", s.Behavioral, weightBehavioral, IndicatorBehavioral},
	}
}

// Indicators returns the messages for sub-scores above the indicator threshold.
func Indicators(s model.SubScores) []string {
	out := []string{}
	for _, c := range components(s) {
		if c.score.GreaterThan(indicatorThreshold) {
			out = append(out, c.indicator)
		}
	}
	return out
}

// WeightedScore combines the sub-scores.
func WeightedScore(s model.SubScores) decimal.Decimal {
	total := decimal.Zero
	for _, c := range components(s) {
		total = total.Add(c.score.Mul(c.weight))
	}
	return total
}

func inUnitInterval(d decimal.Decimal) bool {
	return !d.IsNegative() && !d.GreaterThan(one)
}

func clampUnit(d decimal.Decimal) decimal.Decimal {
	if d.GreaterThan(one) {
		return one
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
