package models

import (
	"context"

	"github.com/shelfsearch/shelfsearch/pkg/fold"
	"github.com/uptrace/bun"
)

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a" tstype:"-"`

	ID         int    `bun:",pk,autoincrement" json:"-"`
	Name       string `bun:",notnull" json:"name"`
	NameFolded string `bun:",notnull" json:"-"`
	BirthYear  *int   `json:"birth_year"`
	DeathYear  *int   `json:"death_year"`
}

var _ bun.BeforeAppendModelHook = (*Author)(nil)

// BeforeAppendModel keeps NameFolded in step with Name on every write.
func (a *Author) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		a.NameFolded = fold.String(a.Name)
	}
	return nil
}

type BookAuthor struct {
	bun.BaseModel `bun:"table:book_authors,alias:ba" tstype:"-"`

	ID       int     `bun:",pk,autoincrement" json:"-"`
	BookID   int     `bun:",notnull" json:"book_id"`
	AuthorID int     `bun:",notnull" json:"author_id"`
	Author   *Author `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty" tstype:"Author"`
}
