// Package predicate models search conditions as an immutable tree that is
// built once from normalized filters and rendered into a bun query.
package predicate

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindAnd Kind = iota + 1
	KindOr
	KindAny
	KindIn
	KindContains
	KindPrefix
)

func (k Kind) String() string {
	switch k {
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindAny:
		return "any"
	case KindIn:
		return "in"
	case KindContains:
		return "contains"
	case KindPrefix:
		return "prefix"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Relation describes how an owning row reaches the rows of Table. When
// JoinTable is set the relation is many-to-many: JoinTable.OwnerKey points at
// the owner and JoinTable.JoinKey points at Table. Otherwise Table.OwnerKey
// points at the owner directly.
type Relation struct {
	Table     string
	JoinTable string
	JoinKey   string
	OwnerKey  string
}

func (r Relation) String() string {
	if r.JoinTable == "" {
		return r.Table
	}
	return r.JoinTable + "->" + r.Table
}

// Predicate is a node of the tree. The zero value is an empty And, which
// matches everything.
type Predicate struct {
	kind     Kind
	column   string
	values   []interface{}
	term     string
	relation Relation
	children []Predicate
}

// And matches when every child matches. Empty And children are dropped.
func And(children ...Predicate) Predicate {
	return Predicate{kind: KindAnd, children: nonEmpty(children)}
}

// Or matches when at least one child matches.
func Or(children ...Predicate) Predicate {
	return Predicate{kind: KindOr, children: nonEmpty(children)}
}

// Any matches when at least one row reached through rel satisfies child.
func Any(rel Relation, child Predicate) Predicate {
	return Predicate{kind: KindAny, relation: rel, children: []Predicate{child}}
}

// In matches when column equals one of values.
func In(column string, values ...interface{}) Predicate {
	return Predicate{kind: KindIn, column: column, values: append([]interface{}(nil), values...)}
}

// Contains matches when column contains term, ignoring case. column must hold
// text stored in the form produced by fold.String.
func Contains(column, term string) Predicate {
	return Predicate{kind: KindContains, column: column, term: term}
}

// Prefix matches when column starts with prefix. Case is significant.
func Prefix(column, prefix string) Predicate {
	return Predicate{kind: KindPrefix, column: column, term: prefix}
}

func (p Predicate) Kind() Kind {
	if p.kind == 0 {
		return KindAnd
	}
	return p.kind
}

// IsEmpty reports whether p imposes no condition at all.
func (p Predicate) IsEmpty() bool {
	return p.Kind() == KindAnd && len(p.children) == 0
}

// Children returns a copy of the child predicates.
func (p Predicate) Children() []Predicate {
	return append([]Predicate(nil), p.children...)
}

func (p Predicate) String() string {
	switch p.Kind() {
	case KindAnd, KindOr:
		parts := make([]string, 0, len(p.children))
		for _, c := range p.children {
			parts = append(parts, c.String())
		}
		return p.Kind().String() + "(" + strings.Join(parts, ", ") + ")"
	case KindAny:
		child := ""
		if len(p.children) > 0 {
			child = p.children[0].String()
		}
		return fmt.Sprintf("any(%s, %s)", p.relation, child)
	case KindIn:
		return fmt.Sprintf("in(%s, %v)", p.column, p.values)
	case KindContains, KindPrefix:
		return fmt.Sprintf("%s(%s, %q)", p.Kind(), p.column, p.term)
	}
	return p.Kind().String()
}

func nonEmpty(children []Predicate) []Predicate {
	out := make([]Predicate, 0, len(children))
	for _, c := range children {
		if c.IsEmpty() {
			continue
		}
		out = append(out, c)
	}
	return out
}
