package sink

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
)

type stubSink struct {
	name  string
	err   error
	calls atomic.Int32
}

func (s *stubSink) Persist(context.Context, string, *model.FraudAssessment, string) (port.Confirmation, error) {
	s.calls.Add(1)
	if s.err != nil {
		return port.Confirmation{}, s.err
	}
	return port.Confirmation{Sink: s.name, Reference: s.name + "/ref", PersistedAt: time.Now()}, nil
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func assessment(t *testing.T) *model.FraudAssessment {
	t.Helper()
	a, err := model.NewFraudAssessment(uuid.New(), "F-1")
	require.NoError(t, err)
	require.NoError(t, a.Complete(model.SubScores{}, decimal.Zero, nil, nil, time.Now()))
	return a
}

func TestFanout_ReturnsPrimaryConfirmation(t *testing.T) {
	primary := &stubSink{name: "postgres"}
	archive := &stubSink{name: "minio"}

	conf, err := NewFanout(quiet, primary, archive).Persist(context.Background(), "F-1", assessment(t), "")

	require.NoError(t, err)
	assert.Equal(t, "postgres", conf.Sink)
	assert.Equal(t, int32(1), primary.calls.Load())
	assert.Equal(t, int32(1), archive.calls.Load())
}

func TestFanout_SecondaryFailureIsTolerated(t *testing.T) {
	primary := &stubSink{name: "postgres"}
	archive := &stubSink{name: "minio", err: errors.New("minio down")}

	conf, err := NewFanout(quiet, primary, archive).Persist(context.Background(), "F-1", assessment(t), "")

	require.NoError(t, err)
	assert.Equal(t, "postgres", conf.Sink)
}

func TestFanout_PrimaryFailureFails(t *testing.T) {
	primary := &stubSink{name: "postgres", err: errors.New("connection reset")}
	archive := &stubSink{name: "minio"}

	_, err := NewFanout(quiet, primary, archive).Persist(context.Background(), "F-1", assessment(t), "")

	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, int32(1), archive.calls.Load())
}

func TestFanout_PrimaryOnly(t *testing.T) {
	conf, err := NewFanout(quiet, &stubSink{name: "postgres"}).Persist(context.Background(), "F-1", assessment(t), "")

	require.NoError(t, err)
	assert.Equal(t, "postgres/ref", conf.Reference)
}
