package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/geo"
)

// FieldRegistry implements port.GeoRegistry and port.ClaimLocationRegistrar.
// Claim locations are keyed by their S2 cell; field boundaries are GeoJSON
// polygons prefiltered by bounding box.
type FieldRegistry struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewFieldRegistry(pool *pgxpool.Pool, logger *slog.Logger) *FieldRegistry {
	return &FieldRegistry{pool: pool, logger: logger}
}

// IsDuplicateCoordinate reports whether a different claim was filed in the
// same S2 cell.
func (r *FieldRegistry) IsDuplicateCoordinate(ctx context.Context, claimID uuid.UUID, location valueobject.Coordinates) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM claim_locations WHERE s2_cell = $1 AND claim_id <> $2)`,
		geo.ClaimCell(location), claimID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check claim location: %w", err)
	}
	return exists, nil
}

// RegisterClaimLocation stores where a claim was filed. Registering a claim
// again moves it.
func (r *FieldRegistry) RegisterClaimLocation(ctx context.Context, claimID uuid.UUID, farmerID string, location valueobject.Coordinates) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO claim_locations (claim_id, farmer_id, s2_cell, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (claim_id) DO UPDATE SET
			s2_cell = EXCLUDED.s2_cell,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude`,
		claimID, farmerID, geo.ClaimCell(location), location.Latitude, location.Longitude,
	)
	if err != nil {
		return fmt.Errorf("failed to register claim location: %w", err)
	}
	return nil
}

// EstimateAreaHectares returns the area of the registered field containing
// location, or port.ErrProviderUnavailable when none does.
func (r *FieldRegistry) EstimateAreaHectares(ctx context.Context, location valueobject.Coordinates) (float64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, boundary
		FROM field_boundaries
		WHERE $1 BETWEEN min_lat AND max_lat AND $2 BETWEEN min_lng AND max_lng`,
		location.Latitude, location.Longitude,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to query field boundaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  uuid.UUID
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return 0, fmt.Errorf("failed to scan field boundary: %w", err)
		}
		boundary, err := geo.ParseBoundary(raw)
		if err != nil {
			r.logger.WarnContext(ctx, "skipping unparsable field boundary", "boundary_id", id, "error", err)
			continue
		}
		if boundary.Contains(location) {
			return boundary.AreaHectares(), nil
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate field boundaries: %w", err)
	}
	return 0, fmt.Errorf("no registered field at %s: %w", location, port.ErrProviderUnavailable)
}

// RegisterBoundary stores a field outline given as a GeoJSON polygon.
func (r *FieldRegistry) RegisterBoundary(ctx context.Context, farmerID string, geoJSON []byte) (uuid.UUID, error) {
	boundary, err := geo.ParseBoundary(geoJSON)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", port.ErrInvalidBoundary, err)
	}
	b := boundary.Bounds()
	id := uuid.New()
	_, err = r.pool.Exec(ctx, `
		INSERT INTO field_boundaries (id, farmer_id, boundary, min_lat, min_lng, max_lat, max_lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, farmerID, geoJSON, b.MinLat, b.MinLng, b.MaxLat, b.MaxLng,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save field boundary: %w", err)
	}
	return id, nil
}
