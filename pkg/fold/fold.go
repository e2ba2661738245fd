// Package fold maps text to the caseless form that searchable columns are
// stored in and that search terms are compared in.
package fold

import (
	"golang.org/x/text/cases"
)

// String returns the Unicode case folding of s, so "Émile", "ÉMILE" and
// "émile" all fold to the same value and "Straße" folds to "strasse".
func String(s string) string {
	// A Caser holds state, so each call gets its own.
	return cases.Fold().String(s)
}
