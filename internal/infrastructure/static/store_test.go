package static

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayanth2212/AgriSure/internal/domain/event"
	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
)

func completed(t *testing.T, claimID uuid.UUID, farmerID string, score string) *model.FraudAssessment {
	t.Helper()
	a, err := model.NewFraudAssessment(claimID, farmerID)
	require.NoError(t, err)
	require.NoError(t, a.Complete(model.SubScores{}, decimal.RequireFromString(score), nil, nil, time.Now()))
	return a
}

func TestAssessments(t *testing.T) {
	s := NewAssessments()
	ctx := context.Background()
	claim := uuid.New()

	first := completed(t, claim, "F-1", "0.1")
	second := completed(t, claim, "F-1", "0.9")
	other := completed(t, uuid.New(), "F-2", "0.5")
	for _, a := range []*model.FraudAssessment{first, second, other, first} {
		require.NoError(t, s.Save(ctx, a))
	}

	got, err := s.FindByID(ctx, other.ID())
	require.NoError(t, err)
	assert.Same(t, other, got)

	_, err = s.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, port.ErrAssessmentNotFound)

	latest, err := s.FindLatestByClaimID(ctx, claim)
	require.NoError(t, err)
	assert.Equal(t, second.ID(), latest.ID())

	page, err := s.ListByFarmer(ctx, "F-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, second.ID(), page[0].ID())

	page, err = s.ListByFarmer(ctx, "F-1", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.ID(), page[0].ID())
}

func TestHistory(t *testing.T) {
	h := NewHistory()
	ctx := context.Background()
	claim := uuid.New()

	empty, err := h.ListByFarmer(ctx, "F-1", uuid.Nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, h.Append(ctx, "F-1", claim, model.HistoricalRecord{Date: day}))
	require.NoError(t, h.Append(ctx, "F-1", claim, model.HistoricalRecord{Date: day, Claimed: true}))
	require.NoError(t, h.Append(ctx, "F-1", uuid.New(), model.HistoricalRecord{Date: day.AddDate(0, 0, 1)}))

	records, err := h.ListByFarmer(ctx, "F-1", uuid.Nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Claimed)

	others, err := h.ListByFarmer(ctx, "F-1", claim)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.True(t, others[0].Date.Equal(day.AddDate(0, 0, 1)))
}

func TestEventLog(t *testing.T) {
	var log EventLog
	a := completed(t, uuid.New(), "F-1", "0.9")

	require.NoError(t, log.Publish(context.Background(), a.ClearEvents()...))

	got := log.Events()
	require.Len(t, got, 3)
	assert.Equal(t, event.EventTypeAssessmentCompleted, got[0].EventType())
	assert.Equal(t, event.EventTypeClaimAutoRejected, got[2].EventType())
}
