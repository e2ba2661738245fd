package predicate

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var (
	languages = Relation{Table: "languages", JoinTable: "book_languages", JoinKey: "language_id", OwnerKey: "book_id"}
	formats   = Relation{Table: "formats", OwnerKey: "book_id"}
)

type row struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID int `bun:",pk"`
}

func newDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func render(t *testing.T, p Predicate) string {
	t.Helper()
	q, err := Apply(newDB(t).NewSelect().Model((*row)(nil)), p, "b")
	require.NoError(t, err)
	return q.String()
}

func TestAnd(t *testing.T) {
	t.Parallel()

	assert.True(t, And().IsEmpty())
	assert.True(t, Predicate{}.IsEmpty())
	assert.True(t, And(And(), And()).IsEmpty())

	p := And(And(), In("gutenberg_id", 1))
	assert.False(t, p.IsEmpty())
	assert.Len(t, p.Children(), 1)
	assert.Equal(t, "and(in(gutenberg_id, [1]))", p.String())
}

func TestString(t *testing.T) {
	t.Parallel()

	p := And(
		In("gutenberg_id", 1, 2),
		Any(languages, In("code", "en")),
		Any(formats, Or(Prefix("mime_type", "text/"))),
		Or(Contains("title", "war")),
	)
	assert.Equal(t, `and(in(gutenberg_id, [1 2]), any(book_languages->languages, in(code, [en])), any(formats, or(prefix(mime_type, "text/"))), or(contains(title, "war")))`, p.String())
}

func TestChildrenIsACopy(t *testing.T) {
	t.Parallel()

	p := Or(Contains("title", "a"), Contains("title", "b"))
	children := p.Children()
	children[0] = Contains("title", "z")
	assert.Equal(t, `or(contains(title, "a"), contains(title, "b"))`, p.String())
}

func TestContainsPattern(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "%fiction%", ContainsPattern("Fiction"))
	assert.Equal(t, `%50\%\_off\\%`, ContainsPattern(`50%_OFF\`))
	assert.Equal(t, "%zola, émile%", ContainsPattern("Zola, ÉMILE"))
	assert.Equal(t, "%strasse%", ContainsPattern("Straße"))
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("empty predicate leaves the query untouched", func(tt *testing.T) {
		query := render(tt, And())
		assert.NotContains(tt, query, "WHERE")
	})

	t.Run("single value is an equality", func(tt *testing.T) {
		query := render(tt, In("gutenberg_id", 7))
		assert.Contains(tt, query, `"b"."gutenberg_id" = 7`)
	})

	t.Run("several values are a set", func(tt *testing.T) {
		query := render(tt, In("gutenberg_id", 1, 2, 3))
		assert.Contains(tt, query, `"b"."gutenberg_id" IN (1, 2, 3)`)
	})

	t.Run("contains folds the term and matches with like", func(tt *testing.T) {
		query := render(tt, Contains("title_folded", "Pride"))
		assert.Contains(tt, query, `"b"."title_folded" LIKE '%pride%' ESCAPE '\'`)
	})

	t.Run("contains folds non-ascii terms", func(tt *testing.T) {
		query := render(tt, Contains("title_folded", "MISÉRABLES"))
		assert.Contains(tt, query, `"b"."title_folded" LIKE '%misérables%' ESCAPE '\'`)
	})

	t.Run("prefix compares a leading substring", func(tt *testing.T) {
		query := render(tt, Prefix("title", "Wär"))
		assert.Contains(tt, query, `substr("b"."title", 1, 3) = 'Wär'`)
	})

	t.Run("many-to-many relation is a correlated exists", func(tt *testing.T) {
		query := render(tt, Any(languages, In("code", "en", "fr")))
		assert.Contains(tt, query, `EXISTS (SELECT 1 FROM "book_languages" AS "j1" JOIN "languages" AS "r1" ON "r1".id = "j1"."language_id" WHERE "j1"."book_id" = "b".id AND ("r1"."code" IN ('en', 'fr')))`)
	})

	t.Run("one-to-many relation is a correlated exists", func(tt *testing.T) {
		query := render(tt, Any(formats, Or(Prefix("mime_type", "text/"), Prefix("mime_type", "image/"))))
		assert.Contains(tt, query, `EXISTS (SELECT 1 FROM "formats" AS "r1" WHERE "r1"."book_id" = "b".id AND ((substr("r1"."mime_type", 1, 5) = 'text/') OR (substr("r1"."mime_type", 1, 6) = 'image/')))`)
	})

	t.Run("sibling relations get distinct aliases", func(tt *testing.T) {
		query := render(tt, Or(Any(languages, In("code", "en")), Any(formats, Prefix("mime_type", "text/"))))
		assert.Contains(tt, query, `"r1"."code" = 'en'`)
		assert.Contains(tt, query, `"r2"."mime_type"`)
	})

	t.Run("groups are parenthesized", func(tt *testing.T) {
		query := render(tt, And(In("gutenberg_id", 1), Or(Contains("title_folded", "a"), Contains("title_folded", "b"))))
		assert.Contains(tt, query, `("b"."gutenberg_id" = 1) AND (("b"."title_folded" LIKE '%a%' ESCAPE '\') OR ("b"."title_folded" LIKE '%b%' ESCAPE '\'))`)
	})
}

func TestApplyMalformed(t *testing.T) {
	t.Parallel()

	db := newDB(t)
	cases := []struct {
		name string
		p    Predicate
	}{
		{"empty or", Or()},
		{"in without values", In("gutenberg_id")},
		{"empty contains", Contains("title", "")},
		{"empty prefix", Prefix("mime_type", "")},
		{"relation without table", Any(Relation{OwnerKey: "book_id"}, In("code", "en"))},
		{"many-to-many without join key", Any(Relation{Table: "languages", JoinTable: "book_languages", OwnerKey: "book_id"}, In("code", "en"))},
		{"nested failure", And(In("gutenberg_id", 1), Any(formats, Or()))},
		{"unknown kind", Predicate{kind: Kind(99)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(tt *testing.T) {
			_, err := Apply(db.NewSelect().Model((*row)(nil)), tc.p, "b")
			assert.Error(tt, err)
		})
	}
}
