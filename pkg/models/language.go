package models

import (
	"github.com/uptrace/bun"
)

// Language is identified by its two-letter code.
type Language struct {
	bun.BaseModel `bun:"table:languages,alias:l" tstype:"-"`

	ID   int    `bun:",pk,autoincrement" json:"-"`
	Code string `bun:",notnull,unique" json:"code"`
}

type BookLanguage struct {
	bun.BaseModel `bun:"table:book_languages,alias:bl" tstype:"-"`

	ID         int       `bun:",pk,autoincrement" json:"-"`
	BookID     int       `bun:",notnull" json:"book_id"`
	LanguageID int       `bun:",notnull" json:"language_id"`
	Language   *Language `bun:"rel:belongs-to,join:language_id=id" json:"language,omitempty" tstype:"Language"`
}
