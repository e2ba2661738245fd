package testutils

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/shelfsearch/shelfsearch/pkg/models"
	"github.com/uptrace/bun"
)

type AuthorFixture struct {
	Name      string `json:"name" validate:"required,max=150"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

type FormatFixture struct {
	MimeType string `json:"mime_type" validate:"required"`
	URL      string `json:"url" validate:"required"`
}

// BookFixture describes a catalog entry together with its relations. Related
// rows are shared between books by name (or code, for languages), the way the
// ingestion process stores them.
type BookFixture struct {
	ID            int             `json:"id" validate:"required,min=1"`
	Title         string          `json:"title" validate:"required"`
	DownloadCount int             `json:"download_count" validate:"min=0"`
	Authors       []AuthorFixture `json:"authors" validate:"dive"`
	Languages     []string        `json:"languages" validate:"dive,len=2"`
	Subjects      []string        `json:"subjects"`
	Bookshelves   []string        `json:"bookshelves"`
	Formats       []FormatFixture `json:"formats" validate:"dive"`
}

// CreateBook stores f and its relations in one transaction. Relations keep the
// order they are given in.
func CreateBook(ctx context.Context, db *bun.DB, f BookFixture) (*models.Book, error) {
	book := &models.Book{
		GutenbergID:   f.ID,
		Title:         f.Title,
		DownloadCount: f.DownloadCount,
	}

	err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(book).Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		for _, a := range f.Authors {
			author := &models.Author{Name: a.Name, BirthYear: a.BirthYear, DeathYear: a.DeathYear}
			if err := findOrCreate(ctx, tx, author, "name", a.Name); err != nil {
				return err
			}
			err := insert(ctx, tx, &models.BookAuthor{BookID: book.ID, AuthorID: author.ID})
			if err != nil {
				return err
			}
		}

		for _, code := range f.Languages {
			language := &models.Language{Code: code}
			if err := findOrCreate(ctx, tx, language, "code", code); err != nil {
				return err
			}
			err := insert(ctx, tx, &models.BookLanguage{BookID: book.ID, LanguageID: language.ID})
			if err != nil {
				return err
			}
		}

		for _, name := range f.Subjects {
			subject := &models.Subject{Name: name}
			if err := findOrCreate(ctx, tx, subject, "name", name); err != nil {
				return err
			}
			err := insert(ctx, tx, &models.BookSubject{BookID: book.ID, SubjectID: subject.ID})
			if err != nil {
				return err
			}
		}

		for _, name := range f.Bookshelves {
			bookshelf := &models.Bookshelf{Name: name}
			if err := findOrCreate(ctx, tx, bookshelf, "name", name); err != nil {
				return err
			}
			err := insert(ctx, tx, &models.BookBookshelf{BookID: book.ID, BookshelfID: bookshelf.ID})
			if err != nil {
				return err
			}
		}

		for _, fm := range f.Formats {
			err := insert(ctx, tx, &models.Format{BookID: book.ID, MimeType: fm.MimeType, URL: fm.URL})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return book, nil
}

// DeleteCatalog removes every book and related row.
func DeleteCatalog(ctx context.Context, db *bun.DB) (int, error) {
	var deleted int64
	err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		tables := []interface{}{
			(*models.BookBookshelf)(nil),
			(*models.BookSubject)(nil),
			(*models.BookLanguage)(nil),
			(*models.BookAuthor)(nil),
			(*models.Format)(nil),
			(*models.Book)(nil),
			(*models.Bookshelf)(nil),
			(*models.Subject)(nil),
			(*models.Language)(nil),
			(*models.Author)(nil),
		}
		for _, model := range tables {
			result, err := tx.NewDelete().Model(model).Where("1=1").Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
			if _, ok := model.(*models.Book); ok {
				deleted, _ = result.RowsAffected()
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

func findOrCreate(ctx context.Context, tx bun.Tx, model interface{}, column, value string) error {
	err := tx.NewSelect().
		Model(model).
		Where("? = ?", bun.Ident(column), value).
		Limit(1).
		Scan(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return errors.WithStack(err)
	}
	return insert(ctx, tx, model)
}

func insert(ctx context.Context, tx bun.Tx, model interface{}) error {
	_, err := tx.NewInsert().Model(model).Exec(ctx)
	return errors.WithStack(err)
}
