// Package imagery talks to the satellite imagery analysis service.
package imagery

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/providerhttp"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements port.SatelliteProvider.
type Client struct {
	http *providerhttp.Client
}

func NewClient(cfg Config) *Client {
	headers := map[string]string{}
	if cfg.APIKey != "" {
		headers["X-API-Key"] = cfg.APIKey
	}
	return &Client{http: providerhttp.New(cfg.BaseURL, cfg.Timeout, headers)}
}

func pointQuery(location valueobject.Coordinates, date time.Time) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(location.Latitude, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(location.Longitude, 'f', 6, 64))
	q.Set("date", date.UTC().Format(time.DateOnly))
	return q
}

type ndviResponse struct {
	NDVI *float64 `json:"ndvi"`
}

func (c *Client) NDVI(ctx context.Context, location valueobject.Coordinates, date time.Time) (float64, error) {
	var resp ndviResponse
	if err := c.http.GetJSON(ctx, "/v1/ndvi", pointQuery(location, date), &resp); err != nil {
		return 0, err
	}
	if resp.NDVI == nil {
		return 0, fmt.Errorf("no ndvi for %s: %w", location, port.ErrProviderUnavailable)
	}
	if *resp.NDVI < -1 || *resp.NDVI > 1 {
		return 0, fmt.Errorf("ndvi %.4f out of range", *resp.NDVI)
	}
	return *resp.NDVI, nil
}

type patternResponse struct {
	Pattern string `json:"pattern"`
}

func (c *Client) ClassifyDamagePattern(ctx context.Context, location valueobject.Coordinates, date time.Time) (valueobject.DamagePattern, error) {
	var resp patternResponse
	if err := c.http.GetJSON(ctx, "/v1/damage-pattern", pointQuery(location, date), &resp); err != nil {
		return "", err
	}
	switch p := valueobject.DamagePattern(resp.Pattern); p {
	case valueobject.DamagePatternNatural, valueobject.DamagePatternArtificial:
		return p, nil
	case "":
		return "", fmt.Errorf("no damage pattern for %s: %w", location, port.ErrProviderUnavailable)
	default:
		return "", fmt.Errorf("unknown damage pattern %q", resp.Pattern)
	}
}

type artificialSignsResponse struct {
	Detected bool `json:"detected"`
}

func (c *Client) DetectArtificialSigns(ctx context.Context, location valueobject.Coordinates, date time.Time) (bool, error) {
	var resp artificialSignsResponse
	if err := c.http.GetJSON(ctx, "/v1/artificial-signs", pointQuery(location, date), &resp); err != nil {
		return false, err
	}
	return resp.Detected, nil
}
