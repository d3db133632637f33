package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/pkg/events"
)

// --- Mock implementations ---

type mockAssessmentRepository struct {
	savedAssessment  *model.FraudAssessment
	saveFunc         func(ctx context.Context, assessment *model.FraudAssessment) error
	findByIDFunc     func(ctx context.Context, id uuid.UUID) (*model.FraudAssessment, error)
	listByFarmerFunc func(ctx context.Context, farmerID string, limit, offset int) ([]*model.FraudAssessment, error)
}

func (m *mockAssessmentRepository) Save(ctx context.Context, assessment *model.FraudAssessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, assessment)
	}
	m.savedAssessment = assessment
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FraudAssessment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, port.ErrAssessmentNotFound
}

func (m *mockAssessmentRepository) FindLatestByClaimID(_ context.Context, _ uuid.UUID) (*model.FraudAssessment, error) {
	return nil, port.ErrAssessmentNotFound
}

func (m *mockAssessmentRepository) ListByFarmer(ctx context.Context, farmerID string, limit, offset int) ([]*model.FraudAssessment, error) {
	if m.listByFarmerFunc != nil {
		return m.listByFarmerFunc(ctx, farmerID, limit, offset)
	}
	return nil, nil
}

type appendedRecord struct {
	farmerID string
	claimID  uuid.UUID
	record   model.HistoricalRecord
}

type mockHistoryRepository struct {
	records  []model.HistoricalRecord
	listErr  error
	listed   int
	excluded uuid.UUID
	appended []appendedRecord
}

func (m *mockHistoryRepository) ListByFarmer(_ context.Context, _ string, excludeClaimID uuid.UUID) ([]model.HistoricalRecord, error) {
	m.listed++
	m.excluded = excludeClaimID
	return m.records, m.listErr
}

func (m *mockHistoryRepository) Append(_ context.Context, farmerID string, claimID uuid.UUID, record model.HistoricalRecord) error {
	m.appended = append(m.appended, appendedRecord{farmerID: farmerID, claimID: claimID, record: record})
	return nil
}

type mockLocationRegistrar struct {
	registered []valueobject.Coordinates
	err        error
}

func (m *mockLocationRegistrar) RegisterClaimLocation(_ context.Context, _ uuid.UUID, _ string, location valueobject.Coordinates) error {
	m.registered = append(m.registered, location)
	return m.err
}

type mockHasher struct {
	hashed []model.FraudReport
}

func (m *mockHasher) Hash(report model.FraudReport) (string, error) {
	m.hashed = append(m.hashed, report)
	return "0xfeed", nil
}

type mockReportSink struct {
	hashes []string
	err    error
}

func (m *mockReportSink) Persist(_ context.Context, _ string, a *model.FraudAssessment, hash string) (port.Confirmation, error) {
	if m.err != nil {
		return port.Confirmation{}, m.err
	}
	m.hashes = append(m.hashes, hash)
	return port.Confirmation{Sink: "mock", Reference: "report/" + a.ID().String(), PersistedAt: time.Now()}, nil
}

type mockFraudEventPublisher struct {
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, events ...events.DomainEvent) error
}

func (m *mockFraudEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

var errBoom = errors.New("boom")

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newEngine has no providers wired, so weather always falls back to the
// unverifiable score.
func newEngine() *service.FraudEngine {
	return service.NewFraudEngine(service.EngineDeps{Logger: quietLogger})
}
