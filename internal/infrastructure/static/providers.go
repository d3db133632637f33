// Package static holds in-memory providers for local runs and tests. Answers
// are keyed by the S2 cell around a point and the date; anything not loaded
// reports port.ErrProviderUnavailable, so the engine takes its fallbacks.
package static

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/geo"
)

func fixtureKey(c valueobject.Coordinates, date time.Time) string {
	return geo.CellToken(c, geo.CacheCellLevel) + "@" + date.UTC().Format(time.DateOnly)
}

// Weather implements port.WeatherProvider.
type Weather struct {
	mu           sync.RWMutex
	observations map[string]port.WeatherObservation
}

func NewWeather() *Weather {
	return &Weather{observations: make(map[string]port.WeatherObservation)}
}

// Set loads the observation returned for points near c on date.
func (w *Weather) Set(c valueobject.Coordinates, date time.Time, obs port.WeatherObservation) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observations[fixtureKey(c, date)] = obs
}

func (w *Weather) Query(_ context.Context, c valueobject.Coordinates, date time.Time) (port.WeatherObservation, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obs, ok := w.observations[fixtureKey(c, date)]
	if !ok {
		return port.WeatherObservation{}, port.ErrProviderUnavailable
	}
	return obs, nil
}

// Scene is what the imagery fixture reports for one place and date.
type Scene struct {
	NDVI            *float64
	Pattern         valueobject.DamagePattern
	ArtificialSigns bool
}

// Satellite implements port.SatelliteProvider.
type Satellite struct {
	mu     sync.RWMutex
	scenes map[string]Scene
}

func NewSatellite() *Satellite {
	return &Satellite{scenes: make(map[string]Scene)}
}

func (s *Satellite) Set(c valueobject.Coordinates, date time.Time, scene Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenes[fixtureKey(c, date)] = scene
}

func (s *Satellite) scene(c valueobject.Coordinates, date time.Time) (Scene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.scenes[fixtureKey(c, date)]
	if !ok {
		return Scene{}, port.ErrProviderUnavailable
	}
	return sc, nil
}

func (s *Satellite) NDVI(_ context.Context, c valueobject.Coordinates, date time.Time) (float64, error) {
	sc, err := s.scene(c, date)
	if err != nil {
		return 0, err
	}
	if sc.NDVI == nil {
		return 0, port.ErrProviderUnavailable
	}
	return *sc.NDVI, nil
}

func (s *Satellite) ClassifyDamagePattern(_ context.Context, c valueobject.Coordinates, date time.Time) (valueobject.DamagePattern, error) {
	sc, err := s.scene(c, date)
	if err != nil {
		return "", err
	}
	if sc.Pattern == "" {
		return "", port.ErrProviderUnavailable
	}
	return sc.Pattern, nil
}

func (s *Satellite) DetectArtificialSigns(_ context.Context, c valueobject.Coordinates, date time.Time) (bool, error) {
	sc, err := s.scene(c, date)
	if err != nil {
		return false, err
	}
	return sc.ArtificialSigns, nil
}

// Registry implements port.GeoRegistry, port.ClaimLocationRegistrar and
// port.FieldBoundaryRegistry in memory, with the same cell keys as the postgres field registry.
type Registry struct {
	mu         sync.RWMutex
	claims     map[int64][]uuid.UUID
	boundaries []*geo.Boundary
}

func NewRegistry() *Registry {
	return &Registry{claims: make(map[int64][]uuid.UUID)}
}

// RegisterBoundary adds a field outline given as a GeoJSON polygon.
func (r *Registry) RegisterBoundary(_ context.Context, _ string, geoJSON []byte) (uuid.UUID, error) {
	b, err := geo.ParseBoundary(geoJSON)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", port.ErrInvalidBoundary, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boundaries = append(r.boundaries, b)
	return uuid.New(), nil
}

func (r *Registry) RegisterClaimLocation(_ context.Context, claimID uuid.UUID, _ string, c valueobject.Coordinates) error {
	cell := geo.ClaimCell(c)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.claims[cell] {
		if id == claimID {
			return nil
		}
	}
	r.claims[cell] = append(r.claims[cell], claimID)
	return nil
}

func (r *Registry) IsDuplicateCoordinate(_ context.Context, claimID uuid.UUID, c valueobject.Coordinates) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.claims[geo.ClaimCell(c)] {
		if id != claimID {
			return true, nil
		}
	}
	return false, nil
}

func (r *Registry) EstimateAreaHectares(_ context.Context, c valueobject.Coordinates) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.boundaries {
		if b.Contains(c) {
			return b.AreaHectares(), nil
		}
	}
	return 0, port.ErrProviderUnavailable
}
