package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shelfsearch/shelfsearch/pkg/models"
	"github.com/uptrace/bun"
)

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		// Entities first, then the tables that reference them.
		entities := []interface{}{
			(*models.Book)(nil),
			(*models.Author)(nil),
			(*models.Language)(nil),
			(*models.Subject)(nil),
			(*models.Bookshelf)(nil),
		}
		for _, model := range entities {
			_, err := db.NewCreateTable().Model(model).Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		_, err := db.NewCreateTable().
			Model((*models.Format)(nil)).
			ForeignKey(`("book_id") REFERENCES "books" ("id") ON DELETE CASCADE`).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		joins := []struct {
			model   interface{}
			column  string
			related string
		}{
			{(*models.BookAuthor)(nil), "author_id", "authors"},
			{(*models.BookLanguage)(nil), "language_id", "languages"},
			{(*models.BookSubject)(nil), "subject_id", "subjects"},
			{(*models.BookBookshelf)(nil), "bookshelf_id", "bookshelves"},
		}
		for _, j := range joins {
			_, err := db.NewCreateTable().
				Model(j.model).
				ForeignKey(`("book_id") REFERENCES "books" ("id") ON DELETE CASCADE`).
				ForeignKey(`(?) REFERENCES ? ("id") ON DELETE CASCADE`, bun.Ident(j.column), bun.Ident(j.related)).
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	}

	down := func(ctx context.Context, db *bun.DB) error {
		tables := []interface{}{
			(*models.BookBookshelf)(nil),
			(*models.BookSubject)(nil),
			(*models.BookLanguage)(nil),
			(*models.BookAuthor)(nil),
			(*models.Format)(nil),
			(*models.Bookshelf)(nil),
			(*models.Subject)(nil),
			(*models.Language)(nil),
			(*models.Author)(nil),
			(*models.Book)(nil),
		}
		for _, model := range tables {
			_, err := db.NewDropTable().Model(model).IfExists().Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
