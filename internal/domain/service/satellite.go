package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
)

const ndviLookback = 30 * 24 * time.Hour

var (
	satelliteArtificialDrop  = decimal.RequireFromString("0.6")
	satelliteArtificialSigns = decimal.RequireFromString("0.8")

	suddenNDVIDrop = decimal.RequireFromString("0.3")
)

// SatelliteAnalyzer scores vegetation loss and artificial damage signatures.
// Each failed query counts as no signal.
type SatelliteAnalyzer struct {
	provider port.SatelliteProvider
	guard    providerGuard
}

func (s *SatelliteAnalyzer) Analyze(ctx context.Context, claim model.ClaimInput) (decimal.Decimal, []string) {
	var notes []string
	score := decimal.Zero
	queryable := s.provider != nil && claim.HasValidLocation()

	dropped, ok := s.suddenDrop(ctx, claim, queryable)
	if !ok {
		notes = append(notes, "vegetation index unavailable")
	}
	if dropped && s.classifiedArtificial(ctx, claim, queryable) {
		score = score.Add(satelliteArtificialDrop)
	}

	if s.artificialSigns(ctx, claim, queryable) {
		score = score.Add(satelliteArtificialSigns)
	}

	return clampUnit(score), notes
}

// suddenDrop reports (prior - current) NDVI > 0.3. ok is false when a
// queryable claim got no NDVI reading.
func (s *SatelliteAnalyzer) suddenDrop(ctx context.Context, claim model.ClaimInput, queryable bool) (dropped, ok bool) {
	if d := claim.Overrides.SuddenNDVIDrop; d != nil {
		return *d, true
	}
	if !queryable {
		return false, true
	}

	var current, prior float64
	if !s.guard.call(ctx, providerSatellite, "ndvi_current", func(ctx context.Context) error {
		var err error
		current, err = s.provider.NDVI(ctx, *claim.Location, claim.ClaimDate)
		return err
	}) {
		return false, false
	}
	if !s.guard.call(ctx, providerSatellite, "ndvi_prior", func(ctx context.Context) error {
		var err error
		prior, err = s.provider.NDVI(ctx, *claim.Location, claim.ClaimDate.Add(-ndviLookback))
		return err
	}) {
		return false, false
	}

	return decimal.NewFromFloat(prior).Sub(decimal.NewFromFloat(current)).GreaterThan(suddenNDVIDrop), true
}

func (s *SatelliteAnalyzer) classifiedArtificial(ctx context.Context, claim model.ClaimInput, queryable bool) bool {
	if a := claim.Overrides.ArtificialPattern; a != nil {
		return *a
	}
	if !queryable {
		return false
	}
	var pattern valueobject.DamagePattern
	ok := s.guard.call(ctx, providerSatellite, "damage_pattern", func(ctx context.Context) error {
		var err error
		pattern, err = s.provider.ClassifyDamagePattern(ctx, *claim.Location, claim.ClaimDate)
		return err
	})
	return ok && pattern == valueobject.DamagePatternArtificial
}

func (s *SatelliteAnalyzer) artificialSigns(ctx context.Context, claim model.ClaimInput, queryable bool) bool {
	if a := claim.Overrides.ArtificialPattern; a != nil {
		return *a
	}
	if !queryable {
		return false
	}
	var found bool
	ok := s.guard.call(ctx, providerSatellite, "artificial_signs", func(ctx context.Context) error {
		var err error
		found, err = s.provider.DetectArtificialSigns(ctx, *claim.Location, claim.ClaimDate)
		return err
	})
	return ok && found
}
