package testutils

import (
	"context"
	"testing"

	"github.com/shelfsearch/shelfsearch/pkg/config"
	"github.com/shelfsearch/shelfsearch/pkg/database"
	"github.com/shelfsearch/shelfsearch/pkg/migrations"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// NewDB returns an in-memory database with every migration applied. It is
// closed when the test finishes.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	cfg := config.NewForTest()
	cfg.DatabaseConnectRetryCount = 1
	cfg.DatabaseConnectRetryDelay = 0

	db, err := database.New(cfg)
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// SeedBooks stores every fixture and fails the test on the first error.
func SeedBooks(t *testing.T, db *bun.DB, fixtures ...BookFixture) {
	t.Helper()
	for _, f := range fixtures {
		_, err := CreateBook(context.Background(), db, f)
		require.NoError(t, err)
	}
}

func Int(i int) *int {
	return &i
}
