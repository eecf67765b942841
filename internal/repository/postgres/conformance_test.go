package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notehub/internal/database"
	"notehub/internal/database/migration"
	"notehub/internal/repository"
	"notehub/internal/repository/repotest"
)

// TestRepository_Conformance runs the shared suite against a real database named by
// NOTEHUB_TEST_DATABASE_URL. Every table is truncated before each case.
func TestRepository_Conformance(t *testing.T) {
	dsn := os.Getenv("NOTEHUB_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("NOTEHUB_TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migration.Apply(context.Background(), db, zap.NewNop(), "test"))

	repotest.Run(t, func(t *testing.T) repository.Repository {
		_, err := db.ExecContext(context.Background(), `TRUNCATE note_likes, note_ratings, notes, users`)
		require.NoError(t, err)
		return New(database.Static(db))
	})
}
