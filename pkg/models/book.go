package models

import (
	"context"

	"github.com/shelfsearch/shelfsearch/pkg/fold"
	"github.com/uptrace/bun"
)

// Book is a catalog entry. GutenbergID is the external catalog identifier and
// is distinct from the internal primary key.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b" tstype:"-"`

	ID              int              `bun:",pk,autoincrement" json:"-"`
	GutenbergID     int              `bun:",notnull,unique" json:"id"`
	Title           string           `bun:",notnull" json:"title"`
	TitleFolded     string           `bun:",notnull" json:"-"`
	DownloadCount   int              `bun:",notnull,default:0" json:"download_count"`
	BookAuthors     []*BookAuthor    `bun:"rel:has-many,join:id=book_id" json:"-"`
	BookLanguages   []*BookLanguage  `bun:"rel:has-many,join:id=book_id" json:"-"`
	BookSubjects    []*BookSubject   `bun:"rel:has-many,join:id=book_id" json:"-"`
	BookBookshelves []*BookBookshelf `bun:"rel:has-many,join:id=book_id" json:"-"`
	Formats         []*Format        `bun:"rel:has-many,join:id=book_id" json:"-"`
}

var _ bun.BeforeAppendModelHook = (*Book)(nil)

// BeforeAppendModel keeps TitleFolded in step with Title on every write.
func (b *Book) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		b.TitleFolded = fold.String(b.Title)
	}
	return nil
}

// Authors returns the related authors in storage order.
func (b *Book) Authors() []*Author {
	authors := make([]*Author, 0, len(b.BookAuthors))
	for _, ba := range b.BookAuthors {
		if ba.Author != nil {
			authors = append(authors, ba.Author)
		}
	}
	return authors
}

// Languages returns the related languages in storage order.
func (b *Book) Languages() []*Language {
	languages := make([]*Language, 0, len(b.BookLanguages))
	for _, bl := range b.BookLanguages {
		if bl.Language != nil {
			languages = append(languages, bl.Language)
		}
	}
	return languages
}

// Subjects returns the related subjects in storage order.
func (b *Book) Subjects() []*Subject {
	subjects := make([]*Subject, 0, len(b.BookSubjects))
	for _, bs := range b.BookSubjects {
		if bs.Subject != nil {
			subjects = append(subjects, bs.Subject)
		}
	}
	return subjects
}

// Bookshelves returns the related bookshelves in storage order.
func (b *Book) Bookshelves() []*Bookshelf {
	bookshelves := make([]*Bookshelf, 0, len(b.BookBookshelves))
	for _, bb := range b.BookBookshelves {
		if bb.Bookshelf != nil {
			bookshelves = append(bookshelves, bb.Bookshelf)
		}
	}
	return bookshelves
}
