package books

import (
	"testing"

	"github.com/shelfsearch/shelfsearch/pkg/testutils"
	"github.com/uptrace/bun"
)

// seedCatalog stores four books. Books 1 and 2 share the same download count.
func seedCatalog(t *testing.T, db *bun.DB) {
	t.Helper()
	testutils.SeedBooks(t, db,
		testutils.BookFixture{
			ID:            1,
			Title:         "Pride and Prejudice",
			DownloadCount: 100,
			Authors: []testutils.AuthorFixture{
				{Name: "Austen, Jane", BirthYear: testutils.Int(1775), DeathYear: testutils.Int(1817)},
			},
			Languages:   []string{"en"},
			Subjects:    []string{"Courtship -- Fiction", "England -- Social life and customs"},
			Bookshelves: []string{"Best Books Ever Listings"},
			Formats: []testutils.FormatFixture{
				{MimeType: "text/plain; charset=us-ascii", URL: "https://example.com/1.txt"},
				{MimeType: "application/epub+zip", URL: "https://example.com/1.epub"},
			},
		},
		testutils.BookFixture{
			ID:            2,
			Title:         "Frankenstein; Or, The Modern Prometheus",
			DownloadCount: 100,
			Authors: []testutils.AuthorFixture{
				{Name: "Shelley, Mary Wollstonecraft", BirthYear: testutils.Int(1797), DeathYear: testutils.Int(1851)},
				{Name: "Shelley, Percy Bysshe", BirthYear: testutils.Int(1792), DeathYear: testutils.Int(1822)},
			},
			Languages: []string{"en"},
			Subjects:  []string{"Science Fiction", "Monsters -- Fiction"},
			Formats: []testutils.FormatFixture{
				{MimeType: "application/epub+zip", URL: "https://example.com/2.epub"},
			},
		},
		testutils.BookFixture{
			ID:            3,
			Title:         "Les Misérables",
			DownloadCount: 50,
			Authors: []testutils.AuthorFixture{
				{Name: "Hugo, Victor", BirthYear: testutils.Int(1802), DeathYear: testutils.Int(1885)},
			},
			Languages:   []string{"fr"},
			Bookshelves: []string{"fiction"},
			Formats: []testutils.FormatFixture{
				{MimeType: "text/html", URL: "https://example.com/3.html"},
			},
		},
		testutils.BookFixture{
			ID:            4,
			Title:         "100% Almanac_of Things",
			DownloadCount: 10,
			Languages:     []string{"en", "de"},
			Formats: []testutils.FormatFixture{
				{MimeType: "image/jpeg", URL: "https://example.com/4.jpg"},
			},
		},
	)
}

func gutenbergIDs(results []BookResult) []int {
	ids := make([]int, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	return ids
}
