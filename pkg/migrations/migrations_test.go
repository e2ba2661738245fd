package migrations

import (
	"context"
	"testing"

	"github.com/shelfsearch/shelfsearch/pkg/config"
	"github.com/shelfsearch/shelfsearch/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

var catalogTables = []string{
	"books",
	"authors",
	"book_authors",
	"languages",
	"book_languages",
	"subjects",
	"book_subjects",
	"bookshelves",
	"book_bookshelves",
	"formats",
}

func newDB(t *testing.T) *bun.DB {
	t.Helper()
	cfg := config.NewForTest()
	cfg.DatabaseConnectRetryCount = 1
	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func tableExists(t *testing.T, db *bun.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestBringUpToDate(t *testing.T) {
	t.Parallel()
	db := newDB(t)
	ctx := context.Background()

	group, err := BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.NotZero(t, group.ID)

	for _, table := range catalogTables {
		assert.True(t, tableExists(t, db, table), table)
	}

	// Running again is a no-op.
	group, err = BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, group.ID)
}

func TestRollback(t *testing.T) {
	t.Parallel()
	db := newDB(t)
	ctx := context.Background()

	_, err := BringUpToDate(ctx, db)
	require.NoError(t, err)

	_, err = migrate.NewMigrator(db, Migrations).Rollback(ctx)
	require.NoError(t, err)

	for _, table := range catalogTables {
		assert.False(t, tableExists(t, db, table), table)
	}
}

func TestJoinRowsAreUnique(t *testing.T) {
	t.Parallel()
	db := newDB(t)
	ctx := context.Background()

	_, err := BringUpToDate(ctx, db)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "INSERT INTO books (gutenberg_id, title, title_folded, download_count) VALUES (1, 'A', 'a', 0)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO languages (code) VALUES ('en')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO book_languages (book_id, language_id) VALUES (1, 1)")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "INSERT INTO book_languages (book_id, language_id) VALUES (1, 1)")
	assert.Error(t, err)

	_, err = db.ExecContext(ctx, "INSERT INTO book_languages (book_id, language_id) VALUES (1, 99)")
	assert.Error(t, err, "foreign keys are enforced")
}
