package predicate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/shelfsearch/shelfsearch/pkg/fold"
	"github.com/uptrace/bun"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Apply adds p to q as a WHERE condition on the table aliased as alias.
// Relations are rendered as correlated EXISTS subqueries so a book matched
// through several related rows is still returned once.
func Apply(q *bun.SelectQuery, p Predicate, alias string) (*bun.SelectQuery, error) {
	if p.IsEmpty() {
		return q, nil
	}

	r := &renderer{}
	expr, args, err := r.render(p, alias)
	if err != nil {
		return nil, err
	}

	return q.Where(expr, args...), nil
}

// ContainsPattern returns the LIKE pattern matching term anywhere in a folded
// value, with LIKE metacharacters escaped.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(fold.String(term)) + "%"
}

type renderer struct {
	seq int
}

func (r *renderer) render(p Predicate, alias string) (string, []interface{}, error) {
	switch p.Kind() {
	case KindAnd, KindOr:
		return r.renderGroup(p, alias)
	case KindAny:
		return r.renderAny(p, alias)
	case KindIn:
		switch len(p.values) {
		case 0:
			return "", nil, errors.Errorf("predicate: in(%s) has no values", p.column)
		case 1:
			return "?.? = ?", []interface{}{bun.Ident(alias), bun.Ident(p.column), p.values[0]}, nil
		}
		return "?.? IN (?)", []interface{}{bun.Ident(alias), bun.Ident(p.column), bun.In(p.values)}, nil
	case KindContains:
		if p.term == "" {
			return "", nil, errors.Errorf("predicate: contains(%s) has an empty term", p.column)
		}
		return `?.? LIKE ? ESCAPE '\'`, []interface{}{bun.Ident(alias), bun.Ident(p.column), ContainsPattern(p.term)}, nil
	case KindPrefix:
		if p.term == "" {
			return "", nil, errors.Errorf("predicate: prefix(%s) has an empty prefix", p.column)
		}
		n := utf8.RuneCountInString(p.term)
		return "substr(?.?, 1, ?) = ?", []interface{}{bun.Ident(alias), bun.Ident(p.column), n, p.term}, nil
	}
	return "", nil, errors.Errorf("predicate: unknown kind %s", p.Kind())
}

func (r *renderer) renderGroup(p Predicate, alias string) (string, []interface{}, error) {
	if len(p.children) == 0 {
		return "", nil, errors.Errorf("predicate: %s has no children", p.Kind())
	}

	sep := " AND "
	if p.Kind() == KindOr {
		sep = " OR "
	}

	parts := make([]string, 0, len(p.children))
	var args []interface{}
	for _, c := range p.children {
		expr, a, err := r.render(c, alias)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "("+expr+")")
		args = append(args, a...)
	}

	return strings.Join(parts, sep), args, nil
}

func (r *renderer) renderAny(p Predicate, alias string) (string, []interface{}, error) {
	rel := p.relation
	if rel.Table == "" || rel.OwnerKey == "" || len(p.children) != 1 {
		return "", nil, errors.Errorf("predicate: malformed relation %s", rel)
	}

	r.seq++
	related := fmt.Sprintf("r%d", r.seq)

	child, childArgs, err := r.render(p.children[0], related)
	if err != nil {
		return "", nil, err
	}

	var expr string
	var args []interface{}
	if rel.JoinTable == "" {
		expr = "EXISTS (SELECT 1 FROM ? AS ? WHERE ?.? = ?.id AND (" + child + "))"
		args = []interface{}{
			bun.Ident(rel.Table), bun.Ident(related),
			bun.Ident(related), bun.Ident(rel.OwnerKey), bun.Ident(alias),
		}
	} else {
		if rel.JoinKey == "" {
			return "", nil, errors.Errorf("predicate: malformed relation %s", rel)
		}
		join := fmt.Sprintf("j%d", r.seq)
		expr = "EXISTS (SELECT 1 FROM ? AS ? JOIN ? AS ? ON ?.id = ?.? WHERE ?.? = ?.id AND (" + child + "))"
		args = []interface{}{
			bun.Ident(rel.JoinTable), bun.Ident(join),
			bun.Ident(rel.Table), bun.Ident(related),
			bun.Ident(related), bun.Ident(join), bun.Ident(rel.JoinKey),
			bun.Ident(join), bun.Ident(rel.OwnerKey), bun.Ident(alias),
		}
	}

	return expr, append(args, childArgs...), nil
}
