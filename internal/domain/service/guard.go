package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jayanth2212/AgriSure/internal/domain/port"
)

// Provider names used in logs, notes and metrics.
const (
	providerWeather   = "weather"
	providerSatellite = "satellite"
	providerGeo       = "geo_registry"
)

// providerGuard bounds each provider query with a timeout and turns failures
// into "no answer" so analyzers can fall back.
type providerGuard struct {
	timeout  time.Duration
	logger   *slog.Logger
	observer port.EngineObserver
}

// call runs fn and reports whether it succeeded. A canceled parent context is
// reported as failure too; the engine checks the parent after the fan-out.
func (g providerGuard) call(ctx context.Context, provider, query string, fn func(ctx context.Context) error) bool {
	qctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	err := fn(qctx)
	if err == nil {
		return true
	}
	if ctx.Err() != nil {
		return false
	}

	level := slog.LevelWarn
	if errors.Is(err, port.ErrProviderUnavailable) {
		level = slog.LevelInfo
	}
	g.logger.Log(ctx, level, "provider query failed, using fallback",
		"provider", provider,
		"query", query,
		"error", err,
	)
	if g.observer != nil {
		g.observer.ProviderFailed(provider)
	}
	return false
}
