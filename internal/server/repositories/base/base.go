// Package base implements the generic CRUD engine shared by all entity
// repositories. It is parameterized by an entity descriptor (table name,
// column list, scan function) and enforces soft-deletion semantics: every
// read, update and delete path is restricted to active rows
// (deleted_at IS NULL); restore paths require a soft-deleted row.
package base

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ummataliyev/estatehub/internal/common"
	"github.com/ummataliyev/estatehub/internal/dbx"
)

// Scanner is the subset of *sql.Row / *sql.Rows used by entity scan funcs.
type Scanner interface {
	Scan(dest ...any) error
}

// Descriptor ties the engine to one entity type.
//
// Columns must list every selected column in scan order and include id,
// created_at, updated_at and deleted_at. Scan reads exactly those columns.
type Descriptor[T any] struct {
	Table   string
	Columns []string
	Scan    func(row Scanner) (*T, error)
}

// Filter is an exact-match filter set, ANDed together. Keys are column names.
type Filter map[string]any

// Values is a column->value write payload. A key present with a nil value
// writes SQL NULL; an absent key leaves the column untouched. This is how
// partial updates distinguish "unset" from "explicit null".
type Values map[string]any

// Repository is the generic soft-delete CRUD engine for one entity type,
// bound to a DBTX (either *sql.DB or an open transaction).
type Repository[T any] struct {
	db   dbx.DBTX
	desc Descriptor[T]
}

func New[T any](db dbx.DBTX, desc Descriptor[T]) *Repository[T] {
	return &Repository[T]{db: db, desc: desc}
}

// sortedKeys gives deterministic SQL for map-based payloads.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// whereClause renders the filter as "col1 = $n AND col2 = $n+1 ...".
// argOffset is the number of placeholders already used by the statement.
func whereClause(f Filter, argOffset int) (string, []any) {
	if len(f) == 0 {
		return "", nil
	}
	keys := sortedKeys(f)
	parts := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		args = append(args, f[k])
		parts = append(parts, fmt.Sprintf("%s = $%d", k, argOffset+len(args)))
	}
	return strings.Join(parts, " AND "), args
}

func (r *Repository[T]) columnList() string {
	return strings.Join(r.desc.Columns, ", ")
}

// selectActive builds "SELECT cols FROM table WHERE <filter> AND deleted_at IS NULL".
func (r *Repository[T]) selectActive(f Filter) (string, []any) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE deleted_at IS NULL", r.columnList(), r.desc.Table)
	clause, args := whereClause(f, 0)
	if clause != "" {
		query += " AND " + clause
	}
	return query, args
}

// collect reads every returned row. Used instead of QueryRow so callers can
// detect the "filter expected to be unique matched several rows" condition.
func (r *Repository[T]) collect(ctx context.Context, query string, args ...any) ([]*T, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		entity, err := r.desc.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

// one reduces a result set to exactly one entity. Zero rows is ErrNotFound;
// more than one is a data-integrity failure that must not be masked.
func (r *Repository[T]) one(entities []*T) (*T, error) {
	switch len(entities) {
	case 0:
		return nil, common.ErrNotFound
	case 1:
		return entities[0], nil
	default:
		return nil, fmt.Errorf("%s: filter matched %d rows, expected exactly one", r.desc.Table, len(entities))
	}
}

// GetOne returns the unique active entity matching the filter.
func (r *Repository[T]) GetOne(ctx context.Context, f Filter) (*T, error) {
	query, args := r.selectActive(f)
	entities, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, classify(err, opRead)
	}
	return r.one(entities)
}

// GetOneOrNone is GetOne that reports absence as (nil, nil).
func (r *Repository[T]) GetOneOrNone(ctx context.Context, f Filter) (*T, error) {
	entity, err := r.GetOne(ctx, f)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entity, nil
}

// GetAll returns a page of active entities ordered by descending id, plus
// the total number of active entities matching the filter (independent of
// limit/offset), for pagination metadata.
func (r *Repository[T]) GetAll(ctx context.Context, limit, offset int, f Filter) ([]*T, int, error) {
	if limit < 0 || offset < 0 {
		return nil, 0, fmt.Errorf("%w: limit and offset must be non-negative", common.ErrInvalidArgument)
	}

	total, err := r.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	query, args := r.selectActive(f)
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	entities, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, 0, classify(err, opRead)
	}
	return entities, total, nil
}

// Count counts active entities matching the filter.
func (r *Repository[T]) Count(ctx context.Context, f Filter) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE deleted_at IS NULL", r.desc.Table)
	clause, args := whereClause(f, 0)
	if clause != "" {
		query += " AND " + clause
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, classify(err, opRead)
	}
	return total, nil
}

// Add inserts a new row and returns the persisted entity including
// generated identity and timestamps.
func (r *Repository[T]) Add(ctx context.Context, v Values) (*T, error) {
	keys := sortedKeys(v)
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = v[k]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.desc.Table, strings.Join(keys, ", "), strings.Join(placeholders, ", "), r.columnList())

	entity, err := r.desc.Scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, classify(err, opInsert)
	}
	return entity, nil
}

// AddBulk inserts multiple rows in one statement. Payloads must share the
// same key set.
func (r *Repository[T]) AddBulk(ctx context.Context, items []Values) error {
	if len(items) == 0 {
		return nil
	}

	keys := sortedKeys(items[0])
	var tuples []string
	var args []any
	for _, item := range items {
		placeholders := make([]string, len(keys))
		for i, k := range keys {
			args = append(args, item[k])
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		tuples = append(tuples, "("+strings.Join(placeholders, ", ")+")")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		r.desc.Table, strings.Join(keys, ", "), strings.Join(tuples, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classify(err, opInsert)
	}
	return nil
}

// UpdateOne updates the unique active entity matching the filter. Only
// columns present in v are written (nil writes NULL); updated_at is always
// refreshed.
func (r *Repository[T]) UpdateOne(ctx context.Context, v Values, f Filter) (*T, error) {
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: empty update payload", common.ErrInvalidArgument)
	}

	keys := sortedKeys(v)
	sets := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		args = append(args, v[k])
		sets = append(sets, fmt.Sprintf("%s = $%d", k, len(args)))
	}
	sets = append(sets, "updated_at = now()")

	query := fmt.Sprintf("UPDATE %s SET %s WHERE deleted_at IS NULL", r.desc.Table, strings.Join(sets, ", "))
	clause, whereArgs := whereClause(f, len(args))
	if clause != "" {
		query += " AND " + clause
		args = append(args, whereArgs...)
	}
	query += " RETURNING " + r.columnList()

	entities, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, classify(err, opUpdate)
	}
	return r.one(entities)
}

// DeleteOne soft-deletes the unique active entity matching the filter and
// returns the row as stored after the deleted_at stamp is applied.
func (r *Repository[T]) DeleteOne(ctx context.Context, f Filter) (*T, error) {
	query := fmt.Sprintf("UPDATE %s SET deleted_at = now(), updated_at = now() WHERE deleted_at IS NULL", r.desc.Table)
	clause, args := whereClause(f, 0)
	if clause != "" {
		query += " AND " + clause
	}
	query += " RETURNING " + r.columnList()

	entities, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, classify(err, opDelete)
	}
	return r.one(entities)
}

// DeleteBulk soft-deletes all active entities with the given ids and
// returns the number of rows affected. A full miss is not an error.
func (r *Repository[T]) DeleteBulk(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders, args := idList(ids)
	query := fmt.Sprintf("UPDATE %s SET deleted_at = now(), updated_at = now() WHERE deleted_at IS NULL AND id IN (%s)",
		r.desc.Table, placeholders)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(err, opDelete)
	}
	return res.RowsAffected()
}

// RestoreOne clears deleted_at on the unique soft-deleted entity matching
// the filter. An already-active entity is reported as ErrNotFound: there is
// no matching row among the deleted ones.
func (r *Repository[T]) RestoreOne(ctx context.Context, f Filter) (*T, error) {
	query := fmt.Sprintf("UPDATE %s SET deleted_at = NULL, updated_at = now() WHERE deleted_at IS NOT NULL", r.desc.Table)
	clause, args := whereClause(f, 0)
	if clause != "" {
		query += " AND " + clause
	}
	query += " RETURNING " + r.columnList()

	entities, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, classify(err, opUpdate)
	}
	return r.one(entities)
}

// RestoreBulk restores all currently-deleted entities among the given ids
// and returns the number of rows affected.
func (r *Repository[T]) RestoreBulk(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders, args := idList(ids)
	query := fmt.Sprintf("UPDATE %s SET deleted_at = NULL, updated_at = now() WHERE deleted_at IS NOT NULL AND id IN (%s)",
		r.desc.Table, placeholders)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(err, opUpdate)
	}
	return res.RowsAffected()
}

func idList(ids []int64) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	return strings.Join(placeholders, ", "), args
}
