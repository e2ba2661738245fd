package models

import (
	"github.com/uptrace/bun"
)

// Format is one downloadable rendition of a book.
type Format struct {
	bun.BaseModel `bun:"table:formats,alias:f" tstype:"-"`

	ID       int    `bun:",pk,autoincrement" json:"-"`
	BookID   int    `bun:",notnull" json:"book_id"`
	MimeType string `bun:",notnull" json:"mime_type"`
	URL      string `bun:"url,notnull" json:"url"`
}
