package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
)

// SinkName identifies this sink in confirmations.
const SinkName = "postgres"

// ReportStore implements port.ReportSink on the fraud_reports table.
type ReportStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewReportStore(pool *pgxpool.Pool) *ReportStore {
	return &ReportStore{pool: pool, now: time.Now}
}

// Persist writes the report for the assessment, replacing an earlier write of
// the same assessment.
func (s *ReportStore) Persist(ctx context.Context, farmerID string, assessment *model.FraudAssessment, externalRecordHash string) (port.Confirmation, error) {
	report := assessment.Report()
	report.FarmerID = farmerID
	report.LedgerHash = externalRecordHash
	payload, err := json.Marshal(report)
	if err != nil {
		return port.Confirmation{}, fmt.Errorf("failed to marshal fraud report: %w", err)
	}

	persistedAt := s.now().UTC()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO fraud_reports (assessment_id, claim_id, farmer_id, report, ledger_hash, persisted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (assessment_id) DO UPDATE SET
			report = EXCLUDED.report,
			ledger_hash = EXCLUDED.ledger_hash,
			persisted_at = EXCLUDED.persisted_at`,
		report.AssessmentID, report.ClaimID, farmerID, payload, externalRecordHash, persistedAt,
	)
	if err != nil {
		return port.Confirmation{}, fmt.Errorf("failed to save fraud report: %w", err)
	}

	return port.Confirmation{
		Sink:        SinkName,
		Reference:   "fraud_reports/" + report.AssessmentID.String(),
		PersistedAt: persistedAt,
	}, nil
}
