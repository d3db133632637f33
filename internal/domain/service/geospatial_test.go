package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
)

func TestGeospatial_Rules(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(e *env)
		area   float64
		coords *valueobject.Coordinates
		want   string
	}{
		{name: "clean", area: 2.0, coords: &valueobject.Coordinates{Latitude: 30.9, Longitude: 75.8}, want: "0"},
		{name: "missing coordinates", area: 2.0, coords: nil, want: "0.5"},
		{name: "latitude out of range", area: 2.0, coords: &valueobject.Coordinates{Latitude: 91, Longitude: 75.8}, want: "0.5"},
		{
			name:   "area mismatch above 30 percent",
			setup:  func(e *env) { e.geo.area = 2.7 },
			area:   2.0,
			coords: &valueobject.Coordinates{Latitude: 30.9, Longitude: 75.8},
			want:   "0.4",
		},
		{
			name:   "area mismatch of exactly 30 percent",
			setup:  func(e *env) { e.geo.area = 2.6 },
			area:   2.0,
			coords: &valueobject.Coordinates{Latitude: 30.9, Longitude: 75.8},
			want:   "0",
		},
		{
			name:   "zero reported area skips mismatch",
			setup:  func(e *env) { e.geo.area = 10 },
			area:   0,
			coords: &valueobject.Coordinates{Latitude: 30.9, Longitude: 75.8},
			want:   "0",
		},
		{
			name:   "duplicate coordinates",
			setup:  func(e *env) { e.geo.duplicate = true },
			area:   2.0,
			coords: &valueobject.Coordinates{Latitude: 30.9, Longitude: 75.8},
			want:   "0.6",
		},
		{
			name:   "duplicate and mismatch clamp",
			setup:  func(e *env) { e.geo.duplicate = true; e.geo.area = 5 },
			area:   2.0,
			coords: &valueobject.Coordinates{Latitude: 30.9, Longitude: 75.8},
			want:   "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := cleanEnv()
			if tt.setup != nil {
				tt.setup(e)
			}
			claim := cleanClaim()
			claim.AreaHectares = tt.area
			claim.Location = tt.coords

			a := e.assess(t, farmer(), claim, nil)
			assert.Equal(t, tt.want, a.SubScores().Geospatial.String())
		})
	}
}

func TestGeospatial_InvalidCoordinatesSkipRegistry(t *testing.T) {
	e := cleanEnv()
	e.geo.duplicate = true
	claim := cleanClaim()
	claim.Location = &valueobject.Coordinates{Latitude: 10, Longitude: 200}

	a := e.assess(t, farmer(), claim, nil)

	assert.Equal(t, "0.5", a.SubScores().Geospatial.String())
	assert.Zero(t, e.geo.calls.Load())
}

func TestGeospatial_Overrides(t *testing.T) {
	e := cleanEnv()
	claim := cleanClaim()
	claim.Overrides.DuplicateCoordinates = ptr(true)
	claim.Overrides.AreaMismatchRatio = ptr(0.45)

	a := e.assess(t, farmer(), claim, nil)

	assert.Equal(t, "1", a.SubScores().Geospatial.String())
	assert.Zero(t, e.geo.calls.Load(), "overrides replace registry queries")
}

func TestGeospatial_RegistryFailureIsNoSignal(t *testing.T) {
	e := cleanEnv()
	e.geo.dupErr = errors.New("connection reset")
	e.geo.areaErr = port.ErrProviderUnavailable

	a := e.assess(t, farmer(), cleanClaim(), nil)

	assert.True(t, a.SubScores().Geospatial.IsZero())
	assert.Contains(t, a.ProviderNotes(), "coordinate reuse could not be checked")
	assert.Contains(t, a.ProviderNotes(), "field area could not be estimated")
	assert.Equal(t, []string{"geo_registry", "geo_registry"}, e.observer.failures)
}
