// Package crud implements the table-mapped CRUD shared by the content
// repositories. An entity type plugs in through a Mapping describing its
// table, writable columns and default sort order.
package crud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/carvingsite/internal/common"
	"github.com/dmitrijs2005/carvingsite/internal/dbx"
)

// Mapping binds an entity type T to a table.
type Mapping[T any] struct {
	// Entity names the record kind in errors ("event").
	Entity string
	Table  string
	// Columns are the writable columns, without the id.
	Columns []string
	// OrderBy is the ORDER BY clause used by GetAll.
	OrderBy string
	// Values returns the values for Columns, in order.
	Values func(*T) []any
	// Fields returns scan destinations for id followed by Columns.
	Fields func(*T) []any
}

// Repository performs parameterized CRUD for one Mapping over a DBTX,
// which may be a pool or a transaction.
type Repository[T any] struct {
	db      dbx.DBTX
	dialect dbx.Dialect
	m       Mapping[T]
}

func New[T any](db dbx.DBTX, dialect dbx.Dialect, m Mapping[T]) *Repository[T] {
	return &Repository[T]{db: db, dialect: dialect, m: m}
}

// Placeholder exposes the dialect bind marker for hand-written statements.
func (r *Repository[T]) Placeholder(n int) string {
	return r.dialect.Placeholder(n)
}

func (r *Repository[T]) selectList() string {
	return "id, " + strings.Join(r.m.Columns, ", ")
}

// GetAll returns every row in mapping order. An empty table yields an
// empty, non-nil slice.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", r.selectList(), r.m.Table, r.m.OrderBy)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, r.fail("list", 0, err)
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		var item T
		if err := rows.Scan(r.m.Fields(&item)...); err != nil {
			return nil, r.fail("list", 0, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("list", 0, err)
	}

	return result, nil
}

// GetByID returns common.ErrorNotFound when no row has the id.
func (r *Repository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = %s", r.selectList(), r.m.Table, r.Placeholder(1))

	item := new(T)
	err := r.db.QueryRowContext(ctx, query, id).Scan(r.m.Fields(item)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, r.fail("get", id, err)
	}

	return item, nil
}

// Create inserts item and returns the stored row, including its id.
func (r *Repository[T]) Create(ctx context.Context, item *T) (*T, error) {
	exprs := make([]string, len(r.m.Columns))
	for i := range exprs {
		exprs[i] = r.Placeholder(i + 1)
	}
	return r.Insert(ctx, exprs, r.m.Values(item)...)
}

// Insert adds a row whose column values are the SQL expressions exprs,
// aligned with Mapping.Columns. Expressions may reference args through
// Placeholder.
func (r *Repository[T]) Insert(ctx context.Context, exprs []string, args ...any) (*T, error) {
	if len(exprs) != len(r.m.Columns) {
		return nil, r.fail("create", 0, fmt.Errorf("%d values for %d columns", len(exprs), len(r.m.Columns)))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.m.Table, strings.Join(r.m.Columns, ", "), strings.Join(exprs, ", "), r.selectList())

	created := new(T)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(r.m.Fields(created)...); err != nil {
		return nil, r.fail("create", 0, err)
	}

	return created, nil
}

// Update loads the row, lets apply merge changes into it and writes every
// column back. It returns common.ErrorNotFound for an unknown id.
func (r *Repository[T]) Update(ctx context.Context, id int64, apply func(*T)) (*T, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(current)

	sets := make([]string, len(r.m.Columns))
	for i, c := range r.m.Columns {
		sets[i] = fmt.Sprintf("%s = %s", c, r.Placeholder(i+1))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s RETURNING %s",
		r.m.Table, strings.Join(sets, ", "), r.Placeholder(len(sets)+1), r.selectList())

	args := append(r.m.Values(current), id)

	updated := new(T)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(r.m.Fields(updated)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, r.fail("update", id, err)
	}

	return updated, nil
}

// SetColumn writes a single column of one row and reports whether the
// row existed.
func (r *Repository[T]) SetColumn(ctx context.Context, id int64, column string, value any) (bool, error) {
	query := fmt.Sprintf("UPDATE %s SET %s = %s WHERE id = %s",
		r.m.Table, column, r.Placeholder(1), r.Placeholder(2))

	n, err := r.exec(ctx, query, value, id)
	if err != nil {
		return false, r.fail("update", id, err)
	}
	return n > 0, nil
}

// Delete reports false, not an error, when the id does not exist.
func (r *Repository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", r.m.Table, r.Placeholder(1))

	n, err := r.exec(ctx, query, id)
	if err != nil {
		return false, r.fail("delete", id, err)
	}
	return n > 0, nil
}

func (r *Repository[T]) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *Repository[T]) fail(op string, id int64, err error) error {
	return &Error{Entity: r.m.Entity, Op: op, ID: id, Err: err}
}
