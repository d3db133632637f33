// Package weather queries a historical weather API for the week before a
// claim.
package weather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/providerhttp"
)

const (
	window        = 7 * 24 * time.Hour
	kelvinOffset  = 273.15
	hailCondition = 906
)

// Config points the client at the weather API.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements port.WeatherProvider. It reads hourly history records with
// temperatures in Kelvin and rain in millimetres per 3 hours.
type Client struct {
	http   *providerhttp.Client
	apiKey string
}

func NewClient(cfg Config) *Client {
	return &Client{
		http:   providerhttp.New(cfg.BaseURL, cfg.Timeout, nil),
		apiKey: cfg.APIKey,
	}
}

type historyRecord struct {
	Dt   int64 `json:"dt"`
	Main struct {
		TempMin float64 `json:"temp_min"`
	} `json:"main"`
	Rain struct {
		ThreeHours float64 `json:"3h"`
	} `json:"rain"`
	Weather []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"weather"`
}

// Query summarizes the seven days up to date.
func (c *Client) Query(ctx context.Context, location valueobject.Coordinates, date time.Time) (port.WeatherObservation, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(location.Latitude, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(location.Longitude, 'f', 6, 64))
	q.Set("start", strconv.FormatInt(date.Add(-window).Unix(), 10))
	q.Set("end", strconv.FormatInt(date.Unix(), 10))
	q.Set("appid", c.apiKey)

	var records []historyRecord
	if err := c.http.GetJSON(ctx, "/weather/history", q, &records); err != nil {
		return port.WeatherObservation{}, err
	}
	if len(records) == 0 {
		return port.WeatherObservation{}, fmt.Errorf("no weather history for %s: %w", location, port.ErrProviderUnavailable)
	}
	return summarize(records), nil
}

func summarize(records []historyRecord) port.WeatherObservation {
	obs := port.WeatherObservation{MinTemperatureC: records[0].Main.TempMin - kelvinOffset}
	for _, r := range records {
		obs.Rainfall7dMM += r.Rain.ThreeHours
		if t := r.Main.TempMin - kelvinOffset; t < obs.MinTemperatureC {
			obs.MinTemperatureC = t
		}
		for _, w := range r.Weather {
			if w.ID == hailCondition || strings.Contains(strings.ToLower(w.Description), "hail") {
				obs.HailDetected = true
			}
		}
	}
	return obs
}
