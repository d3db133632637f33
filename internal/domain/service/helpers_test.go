package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/pkg/money"
)

var claimDay = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

type fakeWeather struct {
	obs   port.WeatherObservation
	err   error
	block bool
	calls atomic.Int32
}

func (f *fakeWeather) Query(ctx context.Context, _ valueobject.Coordinates, _ time.Time) (port.WeatherObservation, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return port.WeatherObservation{}, ctx.Err()
	}
	return f.obs, f.err
}

type fakeSatellite struct {
	current, prior float64
	ndviErr        error
	pattern        valueobject.DamagePattern
	patternErr     error
	signs          bool
	signsErr       error
	calls          atomic.Int32
}

func (f *fakeSatellite) NDVI(_ context.Context, _ valueobject.Coordinates, date time.Time) (float64, error) {
	f.calls.Add(1)
	if f.ndviErr != nil {
		return 0, f.ndviErr
	}
	if date.Before(claimDay) {
		return f.prior, nil
	}
	return f.current, nil
}

func (f *fakeSatellite) ClassifyDamagePattern(context.Context, valueobject.Coordinates, time.Time) (valueobject.DamagePattern, error) {
	f.calls.Add(1)
	return f.pattern, f.patternErr
}

func (f *fakeSatellite) DetectArtificialSigns(context.Context, valueobject.Coordinates, time.Time) (bool, error) {
	f.calls.Add(1)
	return f.signs, f.signsErr
}

type fakeGeo struct {
	duplicate bool
	dupErr    error
	area      float64
	areaErr   error
	calls     atomic.Int32
}

func (f *fakeGeo) IsDuplicateCoordinate(context.Context, uuid.UUID, valueobject.Coordinates) (bool, error) {
	f.calls.Add(1)
	return f.duplicate, f.dupErr
}

func (f *fakeGeo) EstimateAreaHectares(context.Context, valueobject.Coordinates) (float64, error) {
	f.calls.Add(1)
	return f.area, f.areaErr
}

type recordingObserver struct {
	mu       sync.Mutex
	failures []string
	levels   []valueobject.RiskLevel
}

func (o *recordingObserver) ProviderFailed(provider string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, provider)
}

func (o *recordingObserver) AssessmentCompleted(level valueobject.RiskLevel, _ bool, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.levels = append(o.levels, level)
}

// env is a set of provider fakes that, untouched, describe a clean claim.
type env struct {
	weather   *fakeWeather
	satellite *fakeSatellite
	geo       *fakeGeo
	observer  *recordingObserver
	timeout   time.Duration
}

func cleanEnv() *env {
	return &env{
		weather:   &fakeWeather{obs: port.WeatherObservation{Rainfall7dMM: 30, MinTemperatureC: 15}},
		satellite: &fakeSatellite{current: 0.70, prior: 0.72, pattern: valueobject.DamagePatternNatural},
		geo:       &fakeGeo{area: 2.0},
		observer:  &recordingObserver{},
	}
}

func (e *env) engine() *service.FraudEngine {
	return service.NewFraudEngine(service.EngineDeps{
		Weather:         e.weather,
		Satellite:       e.satellite,
		Geo:             e.geo,
		Observer:        e.observer,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		ProviderTimeout: e.timeout,
		Now:             func() time.Time { return claimDay.Add(time.Hour) },
	})
}

func (e *env) assess(t *testing.T, farmer model.FarmerProfile, claim model.ClaimInput, history []model.HistoricalRecord) *model.FraudAssessment {
	t.Helper()
	a, err := e.engine().Assess(context.Background(), farmer, claim, history)
	require.NoError(t, err)
	return a
}

func farmer() model.FarmerProfile {
	return model.FarmerProfile{FarmerID: "farmer-001", TrustScore: 750}
}

// cleanClaim is cotton at day 100 with pest damage, which no weather rule
// covers.
func cleanClaim() model.ClaimInput {
	return model.ClaimInput{
		ClaimID:      uuid.New(),
		CropType:     valueobject.CropCotton,
		DamageType:   valueobject.DamagePest,
		ClaimDate:    claimDay,
		SowingDate:   claimDay.AddDate(0, 0, -100),
		Location:     &valueobject.Coordinates{Latitude: 30.901, Longitude: 75.857},
		AreaHectares: 2.0,
		ClaimAmount:  money.FromFloat(25000, money.INR),
		SumInsured:   money.FromFloat(50000, money.INR),
	}
}

func record(daysAgo int, claimed bool, damage valueobject.DamageType, claimAmount, policyAmount float64) model.HistoricalRecord {
	return model.HistoricalRecord{
		Date:         claimDay.AddDate(0, 0, -daysAgo),
		Claimed:      claimed,
		DamageType:   damage,
		ClaimAmount:  money.FromFloat(claimAmount, money.INR),
		PolicyAmount: money.FromFloat(policyAmount, money.INR),
	}
}

// cleanHistory has one modest claim over five seasons.
func cleanHistory() []model.HistoricalRecord {
	return []model.HistoricalRecord{
		record(365, false, valueobject.DamageType{}, 0, 50000),
		record(730, true, valueobject.DamageDrought, 10000, 50000),
		record(1095, false, valueobject.DamageType{}, 0, 50000),
		record(1460, false, valueobject.DamageType{}, 0, 50000),
		record(1825, false, valueobject.DamageType{}, 0, 50000),
	}
}

func ptr[T any](v T) *T { return &v }
