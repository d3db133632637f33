package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
)

var (
	geoInvalidLocation = decimal.RequireFromString("0.5")
	geoAreaMismatch    = decimal.RequireFromString("0.4")
	geoDuplicate       = decimal.RequireFromString("0.6")

	areaMismatchTolerance = decimal.RequireFromString("0.3")
)

// GeospatialVerifier scores coordinate validity, area mismatch and
// coordinate reuse. The registry is only queried for valid coordinates.
type GeospatialVerifier struct {
	registry port.GeoRegistry
	guard    providerGuard
}

func (g *GeospatialVerifier) Analyze(ctx context.Context, claim model.ClaimInput) (decimal.Decimal, []string) {
	var notes []string
	score := decimal.Zero

	if !claim.HasValidLocation() {
		score = score.Add(geoInvalidLocation)
	}

	ratio, ok, failed := g.areaMismatchRatio(ctx, claim)
	if failed {
		notes = append(notes, "field area could not be estimated")
	}
	if ok && ratio.GreaterThan(areaMismatchTolerance) {
		score = score.Add(geoAreaMismatch)
	}

	duplicate, failed := g.duplicateCoordinate(ctx, claim)
	if failed {
		notes = append(notes, "coordinate reuse could not be checked")
	}
	if duplicate {
		score = score.Add(geoDuplicate)
	}

	return clampUnit(score), notes
}

func (g *GeospatialVerifier) queryable(claim model.ClaimInput) bool {
	return g.registry != nil && claim.HasValidLocation()
}

// areaMismatchRatio returns |estimated-reported|/reported. ok is false when no
// estimate exists or the reported area is zero; failed marks a registry miss.
func (g *GeospatialVerifier) areaMismatchRatio(ctx context.Context, claim model.ClaimInput) (ratio decimal.Decimal, ok, failed bool) {
	if r := claim.Overrides.AreaMismatchRatio; r != nil {
		return decimal.NewFromFloat(*r), true, false
	}
	if claim.AreaHectares <= 0 || !g.queryable(claim) {
		return decimal.Zero, false, false
	}

	var estimated float64
	if !g.guard.call(ctx, providerGeo, "estimate_area", func(ctx context.Context) error {
		var err error
		estimated, err = g.registry.EstimateAreaHectares(ctx, *claim.Location)
		return err
	}) {
		return decimal.Zero, false, true
	}

	reported := decimal.NewFromFloat(claim.AreaHectares)
	return decimal.NewFromFloat(estimated).Sub(reported).Abs().Div(reported), true, false
}

func (g *GeospatialVerifier) duplicateCoordinate(ctx context.Context, claim model.ClaimInput) (duplicate, failed bool) {
	if d := claim.Overrides.DuplicateCoordinates; d != nil {
		return *d, false
	}
	if !g.queryable(claim) {
		return false, false
	}

	if !g.guard.call(ctx, providerGeo, "duplicate_coordinate", func(ctx context.Context) error {
		var err error
		duplicate, err = g.registry.IsDuplicateCoordinate(ctx, claim.ClaimID, *claim.Location)
		return err
	}) {
		return false, true
	}
	return duplicate, false
}
