package books

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/shelfsearch/shelfsearch/pkg/errcodes"
	"github.com/shelfsearch/shelfsearch/pkg/models"
	"github.com/shelfsearch/shelfsearch/pkg/predicate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

type ListBooksOptions struct {
	Filters  Filters
	Page     int
	PageSize int
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// ListBooksWithTotal returns one page of the books matching opts.Filters,
// most downloaded first, along with the number of matches across all pages.
// Both are read from the same snapshot.
func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	if opts.Page < 1 || opts.PageSize < 1 {
		return nil, 0, errors.Errorf("invalid page %d of size %d", opts.Page, opts.PageSize)
	}

	books := []*models.Book{}
	var total int

	q := svc.db.
		NewSelect().
		Model(&books).
		Relation("BookAuthors", orderByID("ba")).
		Relation("BookAuthors.Author").
		Relation("BookLanguages", orderByID("bl")).
		Relation("BookLanguages.Language").
		Relation("BookSubjects", orderByID("bsu")).
		Relation("BookSubjects.Subject").
		Relation("BookBookshelves", orderByID("bsh")).
		Relation("BookBookshelves.Bookshelf").
		Relation("Formats", orderByID("f")).
		Order("b.download_count DESC", "b.gutenberg_id ASC").
		Limit(opts.PageSize).
		Offset((opts.Page - 1) * opts.PageSize)

	// A predicate that cannot be rendered is a bug, not a store failure.
	q, err := predicate.Apply(q, opts.Filters.Predicate(), "b")
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	err = svc.db.RunInTx(ctx, svc.snapshotTxOptions(), func(ctx context.Context, tx bun.Tx) error {
		total, err = q.Conn(tx).ScanAndCount(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, 0, errcodes.ExecutionError(err)
	}

	return books, total, nil
}

// snapshotTxOptions returns the options for a read-only transaction that sees
// one snapshot. SQLite transactions are already serializable.
func (svc *Service) snapshotTxOptions() *sql.TxOptions {
	if svc.db.Dialect().Name() == dialect.PG {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return &sql.TxOptions{}
}

func orderByID(alias string) func(*bun.SelectQuery) *bun.SelectQuery {
	return func(sq *bun.SelectQuery) *bun.SelectQuery {
		return sq.OrderExpr("?.id ASC", bun.Ident(alias))
	}
}
