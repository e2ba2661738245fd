package models

import (
	"context"

	"github.com/shelfsearch/shelfsearch/pkg/fold"
	"github.com/uptrace/bun"
)

type Subject struct {
	bun.BaseModel `bun:"table:subjects,alias:s" tstype:"-"`

	ID         int    `bun:",pk,autoincrement" json:"-"`
	Name       string `bun:",notnull" json:"name"`
	NameFolded string `bun:",notnull" json:"-"`
}

var _ bun.BeforeAppendModelHook = (*Subject)(nil)

// BeforeAppendModel keeps NameFolded in step with Name on every write.
func (s *Subject) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		s.NameFolded = fold.String(s.Name)
	}
	return nil
}

type BookSubject struct {
	bun.BaseModel `bun:"table:book_subjects,alias:bsu" tstype:"-"`

	ID        int      `bun:",pk,autoincrement" json:"-"`
	BookID    int      `bun:",notnull" json:"book_id"`
	SubjectID int      `bun:",notnull" json:"subject_id"`
	Subject   *Subject `bun:"rel:belongs-to,join:subject_id=id" json:"subject,omitempty" tstype:"Subject"`
}
