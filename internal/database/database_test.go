package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mohi-devhub/genie/internal/config"
	"github.com/mohi-devhub/genie/internal/database"
)

// TestPostgresHealthAndSeed spins up a throwaway Postgres container,
// migrates the schema, seeds the reference data, and checks the health
// probe output. Needs Docker; skipped with -short.
func TestPostgresHealthAndSeed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("genie_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := config.New()
	cfg.DB.DSN = dsn

	svc, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	require.NoError(t, database.SeedReferenceData(svc.GetDB()))

	stats := svc.Health()
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "0", stats["prompts"])
	assert.Equal(t, "0", stats["users"])
	assert.NotEmpty(t, stats["open_connections"])

	// reference data seed is idempotent
	require.NoError(t, database.SeedReferenceData(svc.GetDB()))
	var categories int64
	svc.GetDB().Table("categories").Count(&categories)
	assert.EqualValues(t, 8, categories)
}
