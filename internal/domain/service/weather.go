package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
)

var (
	weatherUnverified = decimal.RequireFromString("0.2")
	weatherMismatch   = decimal.RequireFromString("0.7")
)

const (
	droughtMaxRainfallMM = 20.0
	floodMinRainfallMM   = 50.0
	frostMaxMinTempC     = 5.0
)

// weatherReading is an observation plus which of its fields were actually
// supplied, by the provider or by a claim override.
type weatherReading struct {
	port.WeatherObservation
	rainfall bool
	minTemp  bool
	hail     bool
}

// WeatherChecker scores whether observed weather supports the claimed damage.
type WeatherChecker struct {
	provider port.WeatherProvider
	guard    providerGuard
}

func (w *WeatherChecker) Analyze(ctx context.Context, claim model.ClaimInput) (decimal.Decimal, []string) {
	var reading weatherReading
	if obs, ok := w.observe(ctx, claim); ok {
		reading = weatherReading{WeatherObservation: obs, rainfall: true, minTemp: true, hail: true}
	} else if !claim.Overrides.HasWeather() {
		return weatherUnverified, []string{"weather could not be verified"}
	}
	reading = applyWeatherOverrides(reading, claim.Overrides)

	contradicts, known := weatherContradicts(claim.DamageType, reading)
	if !known {
		return weatherUnverified, []string{"weather could not be verified"}
	}
	if contradicts {
		return weatherMismatch, nil
	}
	return decimal.Zero, nil
}

func (w *WeatherChecker) observe(ctx context.Context, claim model.ClaimInput) (port.WeatherObservation, bool) {
	if w.provider == nil || !claim.HasValidLocation() {
		return port.WeatherObservation{}, false
	}
	var obs port.WeatherObservation
	ok := w.guard.call(ctx, providerWeather, "observation", func(ctx context.Context) error {
		var err error
		obs, err = w.provider.Query(ctx, *claim.Location, claim.ClaimDate)
		return err
	})
	return obs, ok
}

func applyWeatherOverrides(r weatherReading, o model.ClaimOverrides) weatherReading {
	if o.Rainfall7dMM != nil {
		r.Rainfall7dMM, r.rainfall = *o.Rainfall7dMM, true
	}
	if o.MinTemperatureC != nil {
		r.MinTemperatureC, r.minTemp = *o.MinTemperatureC, true
	}
	if o.HailDetected != nil {
		r.HailDetected, r.hail = *o.HailDetected, true
	}
	return r
}

// weatherContradicts applies the one rule defined for the damage type, if any.
// known is false when the rule needs a reading nobody supplied.
func weatherContradicts(damage valueobject.DamageType, r weatherReading) (contradicts, known bool) {
	switch damage {
	case valueobject.DamageDrought:
		return r.Rainfall7dMM > droughtMaxRainfallMM, r.rainfall
	case valueobject.DamageFlood:
		return r.Rainfall7dMM < floodMinRainfallMM, r.rainfall
	case valueobject.DamageHail:
		return !r.HailDetected, r.hail
	case valueobject.DamageFrost:
		return r.MinTemperatureC > frostMaxMinTempC, r.minTemp
	default:
		return false, true
	}
}
