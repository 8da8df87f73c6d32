// Package uow provides the unit-of-work layer: a transactional scope (Tx)
// and a read-only scope (Readonly), each exposing one repository instance
// per registered entity type as a fixed struct field.
//
// Lifecycle contract for Tx: Begin opens exactly one transaction; Commit is
// always explicit; Close releases the scope on every exit path and rolls
// back anything uncommitted. A failed rollback propagates: it means the
// session is corrupted and must not be reused.
package uow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ummataliyev/estatehub/internal/server/migrations"
	"github.com/ummataliyev/estatehub/internal/server/repositories/buildings"
	"github.com/ummataliyev/estatehub/internal/server/repositories/complexes"
	"github.com/ummataliyev/estatehub/internal/server/repositories/users"
)

// ErrClosed is returned for any operation on a closed unit of work.
var ErrClosed = errors.New("unit of work is closed")

// Tx is the mutable unit of work. It owns one *sql.Tx for its whole scope;
// the repositories hold a back-reference to it and never outlive it.
type Tx struct {
	tx     *sql.Tx
	done   bool // committed or rolled back
	closed bool

	Users     users.Repository
	Complexes complexes.Repository
	Buildings buildings.Repository
}

// Begin opens a transaction and binds one repository per entity to it.
func Begin(ctx context.Context, db *sql.DB) (*Tx, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &Tx{
		tx:        tx,
		Users:     users.NewPostgresRepository(tx),
		Complexes: complexes.NewPostgresRepository(tx),
		Buildings: buildings.NewPostgresRepository(tx),
	}, nil
}

// Commit makes all pending writes durable. Never called implicitly.
func (u *Tx) Commit() error {
	if u.closed || u.done {
		return ErrClosed
	}
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	u.done = true
	return nil
}

// Rollback discards all pending writes.
func (u *Tx) Rollback() error {
	if u.closed || u.done {
		return ErrClosed
	}
	if err := u.tx.Rollback(); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	u.done = true
	return nil
}

// Close releases the scope. Safe to defer unconditionally: it is idempotent
// and a no-op after Commit or Rollback. If the transaction is still open it
// is rolled back; a rollback failure is returned, not swallowed.
func (u *Tx) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback on close: %w", err)
	}
	return nil
}

// Readonly exposes repositories bound directly to the connection pool, with
// no transaction and no commit/rollback. It performs no writes, so any
// number of Readonly scopes may exist concurrently.
type Readonly struct {
	Users     users.Repository
	Complexes complexes.Repository
	Buildings buildings.Repository
}

func NewReadonly(db *sql.DB) *Readonly {
	return &Readonly{
		Users:     users.NewPostgresRepository(db),
		Complexes: complexes.NewPostgresRepository(db),
		Buildings: buildings.NewPostgresRepository(db),
	}
}

// Manager owns the database handle, vends unit-of-work scopes and runs
// schema migrations.
type Manager struct {
	db *sql.DB
}

func NewManager(dsn string) (*Manager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return &Manager{db: db}, nil
}

func (m *Manager) DB() *sql.DB { return m.db }

func (m *Manager) Begin(ctx context.Context) (*Tx, error) { return Begin(ctx, m.db) }

func (m *Manager) Readonly() *Readonly { return NewReadonly(m.db) }

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and applies them.
func (m *Manager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

func (m *Manager) Close() error { return m.db.Close() }
