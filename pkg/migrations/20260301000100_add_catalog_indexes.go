package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

var catalogIndexes = []struct {
	name    string
	table   string
	columns string
	unique  bool
}{
	// Covers the fixed listing order: most downloaded first, catalog id as tie-break.
	{"ix_books_popularity", "books", "download_count DESC, gutenberg_id ASC", false},
	{"ux_book_authors_book_id_author_id", "book_authors", "book_id, author_id", true},
	{"ix_book_authors_author_id", "book_authors", "author_id", false},
	{"ux_book_languages_book_id_language_id", "book_languages", "book_id, language_id", true},
	{"ix_book_languages_language_id", "book_languages", "language_id", false},
	{"ux_book_subjects_book_id_subject_id", "book_subjects", "book_id, subject_id", true},
	{"ix_book_subjects_subject_id", "book_subjects", "subject_id", false},
	{"ux_book_bookshelves_book_id_bookshelf_id", "book_bookshelves", "book_id, bookshelf_id", true},
	{"ix_book_bookshelves_bookshelf_id", "book_bookshelves", "bookshelf_id", false},
	{"ix_formats_book_id", "formats", "book_id", false},
}

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		for _, ix := range catalogIndexes {
			q := db.NewCreateIndex().
				Table(ix.table).
				Index(ix.name).
				ColumnExpr(ix.columns)
			if ix.unique {
				q = q.Unique()
			}
			if _, err := q.Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	down := func(ctx context.Context, db *bun.DB) error {
		for i := len(catalogIndexes) - 1; i >= 0; i-- {
			_, err := db.NewDropIndex().Index(catalogIndexes[i].name).IfExists().Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
