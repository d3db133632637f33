package port

import (
	"context"
	"time"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
)

// Confirmation acknowledges that a sink durably stored a report.
type Confirmation struct {
	Sink        string
	Reference   string
	PersistedAt time.Time
}

// ReportSink stores completed fraud reports.
type ReportSink interface {
	Persist(ctx context.Context, farmerID string, assessment *model.FraudAssessment, externalRecordHash string) (Confirmation, error)
}

// ReportHasher derives the ledger anchor for a report.
type ReportHasher interface {
	Hash(report model.FraudReport) (string, error)
}
