package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/pkg/money"
)

// HistoryRepository implements port.ClaimHistoryRepository.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// ListByFarmer returns every recorded season for the farmer other than
// excludeClaimID, newest first.
func (r *HistoryRepository) ListByFarmer(ctx context.Context, farmerID string, excludeClaimID uuid.UUID) ([]model.HistoricalRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT record_date, claimed, damage_type, claim_amount, policy_amount, currency
		FROM claim_history
		WHERE farmer_id = $1 AND claim_id IS DISTINCT FROM $2
		ORDER BY record_date DESC`, farmerID, excludeClaimID)
	if err != nil {
		return nil, fmt.Errorf("failed to query claim history: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.HistoricalRecord, error) {
		var (
			date         time.Time
			claimed      bool
			damage       string
			claimAmount  decimal.Decimal
			policyAmount decimal.Decimal
			currencyCode string
		)
		if err := row.Scan(&date, &claimed, &damage, &claimAmount, &policyAmount, &currencyCode); err != nil {
			return model.HistoricalRecord{}, err
		}
		currency, err := money.ParseCurrency(currencyCode)
		if err != nil {
			return model.HistoricalRecord{}, err
		}
		rec := model.HistoricalRecord{
			Date:         date.UTC(),
			Claimed:      claimed,
			ClaimAmount:  money.New(claimAmount, currency),
			PolicyAmount: money.New(policyAmount, currency),
		}
		if damage != "" {
			if rec.DamageType, err = valueobject.NewDamageType(damage); err != nil {
				return model.HistoricalRecord{}, err
			}
		}
		return rec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan claim history: %w", err)
	}
	return records, nil
}

// Append records an assessed claim. Re-assessing the same claim updates the
// existing row.
func (r *HistoryRepository) Append(ctx context.Context, farmerID string, claimID uuid.UUID, rec model.HistoricalRecord) error {
	currency := rec.ClaimAmount.Currency().Code()
	if currency == "" {
		currency = money.INR.Code()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO claim_history (
			farmer_id, claim_id, record_date, claimed, damage_type,
			claim_amount, policy_amount, currency
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (claim_id) WHERE claim_id IS NOT NULL DO UPDATE SET
			record_date = EXCLUDED.record_date,
			damage_type = EXCLUDED.damage_type,
			claim_amount = EXCLUDED.claim_amount,
			policy_amount = EXCLUDED.policy_amount`,
		farmerID, claimID, rec.Date, rec.Claimed, rec.DamageType.String(),
		rec.ClaimAmount.Amount(), rec.PolicyAmount.Amount(), currency,
	)
	if err != nil {
		return fmt.Errorf("failed to append claim history: %w", err)
	}
	return nil
}
