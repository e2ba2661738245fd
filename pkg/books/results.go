package books

import (
	"github.com/shelfsearch/shelfsearch/pkg/models"
)

type AuthorResult struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

type FormatResult struct {
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
}

// BookResult is the public representation of a book. Sequences are never
// null; Genre is omitted when the book has neither bookshelves nor subjects.
type BookResult struct {
	ID            int            `json:"id"`
	Title         string         `json:"title"`
	Genre         *string        `json:"genre,omitempty"`
	Authors       []AuthorResult `json:"authors"`
	Languages     []string       `json:"languages"`
	Subjects      []string       `json:"subjects"`
	Bookshelves   []string       `json:"bookshelves"`
	DownloadCount int            `json:"download_count"`
	Formats       []FormatResult `json:"formats"`
}

func NewBookResult(book *models.Book) BookResult {
	r := BookResult{
		ID:            book.GutenbergID,
		Title:         book.Title,
		Authors:       []AuthorResult{},
		Languages:     []string{},
		Subjects:      []string{},
		Bookshelves:   []string{},
		DownloadCount: book.DownloadCount,
		Formats:       []FormatResult{},
	}

	for _, a := range book.Authors() {
		r.Authors = append(r.Authors, AuthorResult{
			Name:      a.Name,
			BirthYear: a.BirthYear,
			DeathYear: a.DeathYear,
		})
	}
	for _, l := range book.Languages() {
		r.Languages = append(r.Languages, l.Code)
	}
	for _, s := range book.Subjects() {
		r.Subjects = append(r.Subjects, s.Name)
	}
	for _, sh := range book.Bookshelves() {
		r.Bookshelves = append(r.Bookshelves, sh.Name)
	}
	for _, f := range book.Formats {
		r.Formats = append(r.Formats, FormatResult{
			MimeType: f.MimeType,
			URL:      f.URL,
		})
	}

	r.Genre = genre(r.Bookshelves, r.Subjects)

	return r
}

func NewBookResults(books []*models.Book) []BookResult {
	results := make([]BookResult, 0, len(books))
	for _, b := range books {
		results = append(results, NewBookResult(b))
	}
	return results
}

// genre is the first bookshelf, falling back to the first subject.
func genre(bookshelves, subjects []string) *string {
	switch {
	case len(bookshelves) > 0:
		return &bookshelves[0]
	case len(subjects) > 0:
		return &subjects[0]
	}
	return nil
}
