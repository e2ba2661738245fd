package models

import (
	"context"

	"github.com/shelfsearch/shelfsearch/pkg/fold"
	"github.com/uptrace/bun"
)

// Bookshelf is a curated grouping. It reads like a subject but is a separate
// relation.
type Bookshelf struct {
	bun.BaseModel `bun:"table:bookshelves,alias:sh" tstype:"-"`

	ID         int    `bun:",pk,autoincrement" json:"-"`
	Name       string `bun:",notnull" json:"name"`
	NameFolded string `bun:",notnull" json:"-"`
}

var _ bun.BeforeAppendModelHook = (*Bookshelf)(nil)

// BeforeAppendModel keeps NameFolded in step with Name on every write.
func (sh *Bookshelf) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		sh.NameFolded = fold.String(sh.Name)
	}
	return nil
}

type BookBookshelf struct {
	bun.BaseModel `bun:"table:book_bookshelves,alias:bsh" tstype:"-"`

	ID          int        `bun:",pk,autoincrement" json:"-"`
	BookID      int        `bun:",notnull" json:"book_id"`
	BookshelfID int        `bun:",notnull" json:"bookshelf_id"`
	Bookshelf   *Bookshelf `bun:"rel:belongs-to,join:bookshelf_id=id" json:"bookshelf,omitempty" tstype:"Bookshelf"`
}
