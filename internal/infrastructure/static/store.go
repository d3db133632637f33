package static

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/pkg/events"
)

// Assessments implements port.AssessmentRepository in memory.
type Assessments struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*model.FraudAssessment
	order []uuid.UUID
}

func NewAssessments() *Assessments {
	return &Assessments{byID: make(map[uuid.UUID]*model.FraudAssessment)}
}

func (s *Assessments) Save(_ context.Context, a *model.FraudAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[a.ID()]; !ok {
		s.order = append(s.order, a.ID())
	}
	s.byID[a.ID()] = a
	return nil
}

func (s *Assessments) FindByID(_ context.Context, id uuid.UUID) (*model.FraudAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, port.ErrAssessmentNotFound
	}
	return a, nil
}

func (s *Assessments) FindLatestByClaimID(_ context.Context, claimID uuid.UUID) (*model.FraudAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range slices.Backward(s.order) {
		if a := s.byID[id]; a.ClaimID() == claimID {
			return a, nil
		}
	}
	return nil, port.ErrAssessmentNotFound
}

// ListByFarmer returns newest first.
func (s *Assessments) ListByFarmer(_ context.Context, farmerID string, limit, offset int) ([]*model.FraudAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.FraudAssessment
	for _, id := range slices.Backward(s.order) {
		a := s.byID[id]
		if a.FarmerID() != farmerID {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, a)
	}
	return out, nil
}

// History implements port.ClaimHistoryRepository in memory.
type History struct {
	mu      sync.RWMutex
	records map[string]map[uuid.UUID]model.HistoricalRecord
	order   map[string][]uuid.UUID
}

func NewHistory() *History {
	return &History{
		records: make(map[string]map[uuid.UUID]model.HistoricalRecord),
		order:   make(map[string][]uuid.UUID),
	}
}

func (h *History) ListByFarmer(_ context.Context, farmerID string, excludeClaimID uuid.UUID) ([]model.HistoricalRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]model.HistoricalRecord, 0, len(h.order[farmerID]))
	for _, id := range h.order[farmerID] {
		if id == excludeClaimID {
			continue
		}
		out = append(out, h.records[farmerID][id])
	}
	return out, nil
}

// Append replaces an earlier record for the same claim.
func (h *History) Append(_ context.Context, farmerID string, claimID uuid.UUID, record model.HistoricalRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.records[farmerID] == nil {
		h.records[farmerID] = make(map[uuid.UUID]model.HistoricalRecord)
	}
	if _, ok := h.records[farmerID][claimID]; !ok {
		h.order[farmerID] = append(h.order[farmerID], claimID)
	}
	h.records[farmerID][claimID] = record
	return nil
}

// EventLog implements port.EventPublisher by keeping what it is given.
type EventLog struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (l *EventLog) Publish(_ context.Context, evts ...events.DomainEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evts...)
	return nil
}

// Events returns a copy of everything published so far.
func (l *EventLog) Events() []events.DomainEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}
