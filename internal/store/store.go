// Package store is the data access gateway: one generic repository per
// record kind over database/sql, with SQL built by squirrel for the active
// dialect. Every successful write is announced through a Notifier.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/database"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/metrics"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
)

// Notifier announces that records of kind changed.
type Notifier interface {
	Publish(ctx context.Context, kind sports.Kind) error
}

// Fields maps column names to values for Create, Update and Upsert.
type Fields map[string]any

type rowScanner interface {
	Scan(dest ...any) error
}

// Schema describes how one record kind maps onto its table.
type Schema[T any] struct {
	Kind    sports.Kind
	Columns []string
	// Stamp is the timestamp column set on insert, and on update when it is
	// "updated_at".
	Stamp string
	Scan  func(rowScanner) (T, error)
}

type Repository[T any] struct {
	db       *sql.DB
	sb       sq.StatementBuilderType
	schema   Schema[T]
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewRepository[T any](db *sql.DB, dialect database.Dialect, schema Schema[T], n Notifier, logger *slog.Logger) *Repository[T] {
	return &Repository[T]{
		db:       db,
		sb:       sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder()),
		schema:   schema,
		notifier: n,
		logger:   logger,
		now:      time.Now,
	}
}

func (r *Repository[T]) table() string { return string(r.schema.Kind) }

func (r *Repository[T]) List(ctx context.Context, q Query) ([]T, error) {
	query, args, err := q.applySelect(r.sb.Select(r.schema.Columns...).From(r.table())).ToSql()
	if err != nil {
		return nil, r.fail("list", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.fail("list", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := r.schema.Scan(rows)
		if err != nil {
			return nil, r.fail("list", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("list", err)
	}
	return out, nil
}

func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	query, args, err := r.sb.Select(r.schema.Columns...).From(r.table()).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return zero, r.fail("get", err)
	}

	v, err := r.schema.Scan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, &sports.NotFoundError{Kind: r.schema.Kind, ID: id}
	}
	if err != nil {
		return zero, r.fail("get", err)
	}
	return v, nil
}

func (r *Repository[T]) Count(ctx context.Context, q Query) (int, error) {
	query, args, err := q.applySelect(r.sb.Select("COUNT(*)").From(r.table())).ToSql()
	if err != nil {
		return 0, r.fail("count", err)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, r.fail("count", err)
	}
	return n, nil
}

// Create inserts a record with a fresh id and timestamp and returns it as
// stored.
func (r *Repository[T]) Create(ctx context.Context, f Fields) (T, error) {
	var zero T
	cols, vals := r.insertRow(f)

	query, args, err := r.sb.Insert(r.table()).Columns(cols...).Values(vals...).
		Suffix("RETURNING " + strings.Join(r.schema.Columns, ", ")).ToSql()
	if err != nil {
		return zero, r.fail("create", err)
	}

	v, err := r.schema.Scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, r.fail("create", err)
	}
	r.notify(ctx)
	return v, nil
}

// Update changes the given columns of record id. A missing record is a
// NotFoundError.
func (r *Repository[T]) Update(ctx context.Context, id string, f Fields) error {
	set := make(map[string]any, len(f)+1)
	for k, v := range f {
		set[k] = v
	}
	if r.schema.Stamp == "updated_at" {
		set["updated_at"] = formatTime(r.now())
	}

	query, args, err := r.sb.Update(r.table()).SetMap(set).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return r.fail("update", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.fail("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r.fail("update", err)
	}
	if n == 0 {
		return &sports.NotFoundError{Kind: r.schema.Kind, ID: id}
	}
	r.notify(ctx)
	return nil
}

// Delete removes record id. Deleting a missing record is a no-op and
// publishes nothing.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete(r.table()).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return r.fail("delete", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.fail("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r.fail("delete", err)
	}
	if n > 0 {
		r.notify(ctx)
	}
	return nil
}

// Upsert inserts f or, when a row already holds the same values in the
// conflict columns, overwrites that row's other columns. The statement is a
// single INSERT ... ON CONFLICT, so concurrent upserts never duplicate.
func (r *Repository[T]) Upsert(ctx context.Context, f Fields, conflict ...string) (T, error) {
	var zero T
	cols, vals := r.insertRow(f)

	var updates []string
	for _, c := range cols {
		if c == "id" || slices.Contains(conflict, c) {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", c, c))
	}

	suffix := fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s RETURNING %s",
		strings.Join(conflict, ", "), strings.Join(updates, ", "), strings.Join(r.schema.Columns, ", "))

	query, args, err := r.sb.Insert(r.table()).Columns(cols...).Values(vals...).Suffix(suffix).ToSql()
	if err != nil {
		return zero, r.fail("upsert", err)
	}

	v, err := r.schema.Scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, r.fail("upsert", err)
	}
	r.notify(ctx)
	return v, nil
}

// insertRow adds id and stamp to f and returns columns in sorted order with
// their values.
func (r *Repository[T]) insertRow(f Fields) ([]string, []any) {
	row := make(Fields, len(f)+2)
	for k, v := range f {
		row[k] = v
	}
	if _, ok := row["id"]; !ok {
		row["id"] = uuid.NewString()
	}
	if r.schema.Stamp != "" {
		row[r.schema.Stamp] = formatTime(r.now())
	}

	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	slices.Sort(cols)

	vals := make([]any, len(cols))
	for i, c := range cols {
		vals[i] = row[c]
	}
	return cols, vals
}

func (r *Repository[T]) notify(ctx context.Context) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Publish(ctx, r.schema.Kind); err != nil {
		r.logger.Warn("publishing change", "kind", r.schema.Kind, "error", err)
	}
}

func (r *Repository[T]) fail(op string, err error) error {
	metrics.StoreErrors.WithLabelValues(string(r.schema.Kind), op).Inc()
	return &sports.StoreError{Op: op, Kind: r.schema.Kind, Err: err}
}

// IsConflict reports whether err is a unique-constraint violation.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
