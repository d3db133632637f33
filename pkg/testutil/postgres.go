package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pkgpostgres "github.com/jayanth2212/AgriSure/pkg/postgres"
)

// PostgresContainer wraps a disposable PostgreSQL instance.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DSN       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts PostgreSQL and applies the migrations in
// migrationsDir. Cleanup is registered on t.
func NewPostgresContainer(ctx context.Context, t *testing.T, migrationsDir string) *PostgresContainer {
	t.Helper()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("fraud"),
		postgres.WithUsername("agrisure"),
		postgres.WithPassword("agrisure"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	pc := &PostgresContainer{Container: pgContainer}
	t.Cleanup(func() { pc.cleanup(t) })

	pc.DSN, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}
	if err := pkgpostgres.RunMigrations(pc.DSN, migrationsDir); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	pc.Pool, err = pkgpostgres.NewPool(ctx, pkgpostgres.Config{URL: pc.DSN})
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	return pc
}

func (pc *PostgresContainer) cleanup(t *testing.T) {
	if pc.Pool != nil {
		pc.Pool.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pc.Container.Terminate(ctx); err != nil {
		t.Logf("warning: failed to terminate postgres container: %v", err)
	}
}
