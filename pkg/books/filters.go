package books

import (
	"strings"

	"github.com/shelfsearch/shelfsearch/pkg/predicate"
)

var (
	authorsRelation = predicate.Relation{
		Table:     "authors",
		JoinTable: "book_authors",
		JoinKey:   "author_id",
		OwnerKey:  "book_id",
	}
	languagesRelation = predicate.Relation{
		Table:     "languages",
		JoinTable: "book_languages",
		JoinKey:   "language_id",
		OwnerKey:  "book_id",
	}
	subjectsRelation = predicate.Relation{
		Table:     "subjects",
		JoinTable: "book_subjects",
		JoinKey:   "subject_id",
		OwnerKey:  "book_id",
	}
	bookshelvesRelation = predicate.Relation{
		Table:     "bookshelves",
		JoinTable: "book_bookshelves",
		JoinKey:   "bookshelf_id",
		OwnerKey:  "book_id",
	}
	formatsRelation = predicate.Relation{
		Table:    "formats",
		OwnerKey: "book_id",
	}
)

// Filters is the normalized filter set of a search. A nil or empty field
// imposes no constraint.
type Filters struct {
	IDs       []int
	Languages []string
	MimeTypes []string
	Topics    []string
	Authors   []string
	Titles    []string
}

func (q ListBooksQuery) Filters() Filters {
	return Filters{
		IDs:       q.IDs,
		Languages: q.Languages,
		MimeTypes: q.MimeTypes,
		Topics:    q.Topics,
		Authors:   q.Authors,
		Titles:    q.Titles,
	}
}

// Predicate builds the condition a book must satisfy. Fields are AND-combined
// and the values within a field are OR-combined.
func (f Filters) Predicate() predicate.Predicate {
	var clauses []predicate.Predicate

	if len(f.IDs) > 0 {
		ids := make([]interface{}, 0, len(f.IDs))
		for _, id := range f.IDs {
			ids = append(ids, id)
		}
		clauses = append(clauses, predicate.In("gutenberg_id", ids...))
	}

	if len(f.Languages) > 0 {
		codes := make([]interface{}, 0, len(f.Languages))
		for _, code := range f.Languages {
			codes = append(codes, code)
		}
		clauses = append(clauses, predicate.Any(languagesRelation, predicate.In("code", codes...)))
	}

	if len(f.MimeTypes) > 0 {
		prefixes := make([]predicate.Predicate, 0, len(f.MimeTypes))
		for _, mt := range f.MimeTypes {
			prefixes = append(prefixes, predicate.Prefix("mime_type", strings.TrimSuffix(mt, "/")+"/"))
		}
		clauses = append(clauses, predicate.Any(formatsRelation, predicate.Or(prefixes...)))
	}

	if len(f.Topics) > 0 {
		terms := make([]predicate.Predicate, 0, len(f.Topics))
		for _, t := range f.Topics {
			terms = append(terms, predicate.Or(
				predicate.Any(subjectsRelation, predicate.Contains("name_folded", t)),
				predicate.Any(bookshelvesRelation, predicate.Contains("name_folded", t)),
			))
		}
		clauses = append(clauses, predicate.Or(terms...))
	}

	if len(f.Authors) > 0 {
		names := make([]predicate.Predicate, 0, len(f.Authors))
		for _, a := range f.Authors {
			names = append(names, predicate.Contains("name_folded", a))
		}
		clauses = append(clauses, predicate.Any(authorsRelation, predicate.Or(names...)))
	}

	if len(f.Titles) > 0 {
		titles := make([]predicate.Predicate, 0, len(f.Titles))
		for _, t := range f.Titles {
			titles = append(titles, predicate.Contains("title_folded", t))
		}
		clauses = append(clauses, predicate.Or(titles...))
	}

	return predicate.And(clauses...)
}
