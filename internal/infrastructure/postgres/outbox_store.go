package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jayanth2212/AgriSure/pkg/events"
)

// OutboxStore implements events.OutboxStore and port.EventPublisher: Publish
// writes events to outbox_events and a relay forwards them to the broker.
type OutboxStore struct {
	pool *pgxpool.Pool
}

func NewOutboxStore(pool *pgxpool.Pool) *OutboxStore {
	return &OutboxStore{pool: pool}
}

// Publish stores events in one transaction. An event already in the outbox
// is left as is.
func (s *OutboxStore) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}
	entries := make([]events.OutboxEntry, 0, len(evts))
	for _, evt := range evts {
		entry, err := events.NewOutboxEntry(evt)
		if err != nil {
			return fmt.Errorf("failed to build outbox entry: %w", err)
		}
		entries = append(entries, entry)
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO outbox_events (id, aggregate_id, aggregate_type, event_type, payload, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			e.ID, e.AggregateID, e.AggregateType, e.EventType, e.Payload, e.CreatedAt,
		)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to write outbox entries: %w", err)
	}
	return nil
}

// FetchUnpublished returns the oldest unpublished entries.
func (s *OutboxStore) FetchUnpublished(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, aggregate_id, aggregate_type, event_type, payload, created_at
		FROM outbox_events
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1`, batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (events.OutboxEntry, error) {
		var e events.OutboxEntry
		err := row.Scan(&e.ID, &e.AggregateID, &e.AggregateType, &e.EventType, &e.Payload, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan outbox entry: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps the entries as delivered.
func (s *OutboxStore) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `UPDATE outbox_events SET published_at = NOW() WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to mark outbox entries published: %w", err)
	}
	return nil
}
