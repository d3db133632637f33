package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// OutboxEntry is a domain event stored alongside the aggregate that produced
// it, waiting to be relayed to the broker.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateID   uuid.UUID
	AggregateType string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// NewOutboxEntry serializes event as the entry payload.
func NewOutboxEntry(event DomainEvent) (OutboxEntry, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxEntry{}, fmt.Errorf("marshal %s: %w", event.EventType(), err)
	}
	return OutboxEntry{
		ID:            event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Payload:       payload,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// OutboxStore is the persistence side of the outbox.
type OutboxStore interface {
	FetchUnpublished(ctx context.Context, batchSize int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// RelayFunc delivers a batch of entries to the broker.
type RelayFunc func(ctx context.Context, entries []OutboxEntry) error

// Relay polls the outbox and forwards unpublished entries.
type Relay struct {
	store     OutboxStore
	deliver   RelayFunc
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

func NewRelay(store OutboxStore, deliver RelayFunc, interval time.Duration, batchSize int, logger *slog.Logger) *Relay {
	if interval <= 0 {
		interval = time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Relay{store: store, deliver: deliver, interval: interval, batchSize: batchSize, logger: logger}
}

// Run relays until ctx is canceled. Failed batches stay unpublished and are
// retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.RelayOnce(ctx); err != nil {
			r.logger.Error("outbox relay failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RelayOnce forwards one batch and returns how many entries were published.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	entries, err := r.store.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch unpublished: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}
	if err := r.deliver(ctx, entries); err != nil {
		return 0, fmt.Errorf("deliver: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	if err := r.store.MarkPublished(ctx, ids); err != nil {
		return 0, fmt.Errorf("mark published: %w", err)
	}
	return len(entries), nil
}
