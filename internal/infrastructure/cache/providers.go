package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/geo"
)

const keyPrefix = "agrisure:fraud:"

func key(kind string, location valueobject.Coordinates, date time.Time) string {
	return keyPrefix + kind + ":" + geo.CellToken(location, geo.CacheCellLevel) + ":" + date.UTC().Format(time.DateOnly)
}

// readThrough serves key from store, or calls load and stores its answer.
// Cache faults are logged and never fail the lookup. Provider errors are not
// cached.
func readThrough[T any](ctx context.Context, store Store, ttl time.Duration, logger *slog.Logger, key string, load func() (T, error)) (T, error) {
	raw, err := store.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		if jerr := json.Unmarshal(raw, &v); jerr == nil {
			return v, nil
		}
		logger.Warn("discarding unreadable cache entry", "key", key)
	case !errors.Is(err, ErrMiss):
		logger.Warn("cache read failed", "key", key, "error", err)
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := store.Set(ctx, key, raw, ttl); err != nil {
			logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return v, nil
}

// Weather decorates a port.WeatherProvider.
type Weather struct {
	next   port.WeatherProvider
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

func NewWeather(next port.WeatherProvider, store Store, ttl time.Duration, logger *slog.Logger) *Weather {
	return &Weather{next: next, store: store, ttl: ttl, logger: logger}
}

type weatherEntry struct {
	RainfallMM      float64 `json:"rainfall_7d_mm"`
	MinTemperatureC float64 `json:"min_temperature_c"`
	Hail            bool    `json:"hail"`
}

func (w *Weather) Query(ctx context.Context, location valueobject.Coordinates, date time.Time) (port.WeatherObservation, error) {
	e, err := readThrough(ctx, w.store, w.ttl, w.logger, key("weather", location, date), func() (weatherEntry, error) {
		obs, err := w.next.Query(ctx, location, date)
		return weatherEntry{RainfallMM: obs.Rainfall7dMM, MinTemperatureC: obs.MinTemperatureC, Hail: obs.HailDetected}, err
	})
	if err != nil {
		return port.WeatherObservation{}, err
	}
	return port.WeatherObservation{Rainfall7dMM: e.RainfallMM, MinTemperatureC: e.MinTemperatureC, HailDetected: e.Hail}, nil
}

// Satellite decorates a port.SatelliteProvider. Each of the three questions
// is cached under its own key.
type Satellite struct {
	next   port.SatelliteProvider
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

func NewSatellite(next port.SatelliteProvider, store Store, ttl time.Duration, logger *slog.Logger) *Satellite {
	return &Satellite{next: next, store: store, ttl: ttl, logger: logger}
}

func (s *Satellite) NDVI(ctx context.Context, location valueobject.Coordinates, date time.Time) (float64, error) {
	return readThrough(ctx, s.store, s.ttl, s.logger, key("ndvi", location, date), func() (float64, error) {
		return s.next.NDVI(ctx, location, date)
	})
}

func (s *Satellite) ClassifyDamagePattern(ctx context.Context, location valueobject.Coordinates, date time.Time) (valueobject.DamagePattern, error) {
	return readThrough(ctx, s.store, s.ttl, s.logger, key("pattern", location, date), func() (valueobject.DamagePattern, error) {
		return s.next.ClassifyDamagePattern(ctx, location, date)
	})
}

func (s *Satellite) DetectArtificialSigns(ctx context.Context, location valueobject.Coordinates, date time.Time) (bool, error) {
	return readThrough(ctx, s.store, s.ttl, s.logger, key("artificial", location, date), func() (bool, error) {
		return s.next.DetectArtificialSigns(ctx, location, date)
	})
}
