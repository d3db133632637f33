package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	pkgpostgres "github.com/jayanth2212/AgriSure/pkg/postgres"
)

const assessmentColumns = `
	id, claim_id, farmer_id, raw_score,
	temporal, geospatial, weather, satellite, behavioral,
	provider_notes, assessed_at`

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Save persists a fraud assessment and its indicators.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.FraudAssessment) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		s := assessment.SubScores()
		notes := assessment.ProviderNotes()
		if notes == nil {
			notes = []string{}
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO fraud_assessments (
				id, claim_id, farmer_id, raw_score, fraud_score,
				risk_level, disposition,
				temporal, geospatial, weather, satellite, behavioral,
				provider_notes, assessed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (id) DO UPDATE SET
				raw_score = EXCLUDED.raw_score,
				fraud_score = EXCLUDED.fraud_score,
				risk_level = EXCLUDED.risk_level,
				disposition = EXCLUDED.disposition,
				temporal = EXCLUDED.temporal,
				geospatial = EXCLUDED.geospatial,
				weather = EXCLUDED.weather,
				satellite = EXCLUDED.satellite,
				behavioral = EXCLUDED.behavioral,
				provider_notes = EXCLUDED.provider_notes,
				assessed_at = EXCLUDED.assessed_at`,
			assessment.ID(),
			assessment.ClaimID(),
			assessment.FarmerID(),
			assessment.RawScore(),
			assessment.RawScore().Round(2),
			assessment.RiskLevel().String(),
			assessment.Disposition().String(),
			s.Temporal, s.Geospatial, s.Weather, s.Satellite, s.Behavioral,
			notes,
			assessment.AssessedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to save assessment: %w", err)
		}

		// Replace the indicators wholesale.
		if _, err := tx.Exec(ctx, `DELETE FROM fraud_indicators WHERE assessment_id = $1`, assessment.ID()); err != nil {
			return fmt.Errorf("failed to delete old indicators: %w", err)
		}
		for i, indicator := range assessment.FraudIndicators() {
			_, err := tx.Exec(ctx,
				`INSERT INTO fraud_indicators (assessment_id, position, indicator) VALUES ($1, $2, $3)`,
				assessment.ID(), i, indicator,
			)
			if err != nil {
				return fmt.Errorf("failed to save indicator: %w", err)
			}
		}
		return nil
	})
}

// FindByID retrieves an assessment by its unique identifier.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FraudAssessment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+assessmentColumns+` FROM fraud_assessments WHERE id = $1`, id)
	return r.scanOne(ctx, row)
}

// FindLatestByClaimID retrieves the most recent assessment of a claim.
func (r *AssessmentRepository) FindLatestByClaimID(ctx context.Context, claimID uuid.UUID) (*model.FraudAssessment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+assessmentColumns+`
		FROM fraud_assessments
		WHERE claim_id = $1
		ORDER BY assessed_at DESC
		LIMIT 1`, claimID)
	return r.scanOne(ctx, row)
}

// ListByFarmer retrieves a farmer's assessments, newest first.
func (r *AssessmentRepository) ListByFarmer(ctx context.Context, farmerID string, limit, offset int) ([]*model.FraudAssessment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+assessmentColumns+`
		FROM fraud_assessments
		WHERE farmer_id = $1
		ORDER BY assessed_at DESC
		LIMIT $2 OFFSET $3`, farmerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}

	var scanned []assessmentRow
	for rows.Next() {
		row, err := scanAssessment(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		scanned = append(scanned, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}

	assessments := make([]*model.FraudAssessment, 0, len(scanned))
	for _, row := range scanned {
		indicators, err := r.loadIndicators(ctx, row.id)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, row.toModel(indicators))
	}
	return assessments, nil
}

type assessmentRow struct {
	id         uuid.UUID
	claimID    uuid.UUID
	farmerID   string
	raw        decimal.Decimal
	subScores  model.SubScores
	notes      []string
	assessedAt time.Time
}

func (row assessmentRow) toModel(indicators []string) *model.FraudAssessment {
	return model.Reconstruct(
		row.id, row.claimID, row.farmerID,
		row.subScores, row.raw, indicators, row.notes,
		row.assessedAt.UTC(),
	)
}

func scanAssessment(row pgx.Row) (assessmentRow, error) {
	var a assessmentRow
	err := row.Scan(
		&a.id, &a.claimID, &a.farmerID, &a.raw,
		&a.subScores.Temporal, &a.subScores.Geospatial, &a.subScores.Weather,
		&a.subScores.Satellite, &a.subScores.Behavioral,
		&a.notes, &a.assessedAt,
	)
	if err != nil {
		return assessmentRow{}, err
	}
	return a, nil
}

func (r *AssessmentRepository) scanOne(ctx context.Context, row pgx.Row) (*model.FraudAssessment, error) {
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}
	indicators, err := r.loadIndicators(ctx, a.id)
	if err != nil {
		return nil, err
	}
	return a.toModel(indicators), nil
}

func (r *AssessmentRepository) loadIndicators(ctx context.Context, assessmentID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT indicator FROM fraud_indicators WHERE assessment_id = $1 ORDER BY position`,
		assessmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query indicators: %w", err)
	}
	indicators, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan indicators: %w", err)
	}
	if indicators == nil {
		indicators = make([]string, 0)
	}
	return indicators, nil
}
