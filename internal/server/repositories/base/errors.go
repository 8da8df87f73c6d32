package base

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ummataliyev/estatehub/internal/common"
)

type operation int

const (
	opRead operation = iota
	opInsert
	opUpdate
	opDelete
)

// PostgreSQL error codes we translate into the repository taxonomy.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classify maps driver-level failures onto the sentinel errors in common.
// Anything unrecognized is wrapped so the original cause stays inspectable.
func classify(err error, op operation) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", common.ErrAlreadyExists, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			if op == opDelete {
				return fmt.Errorf("%w: %s", common.ErrCannotDelete, pgErr.ConstraintName)
			}
			return fmt.Errorf("%w: %s", common.ErrCannotUpdate, pgErr.ConstraintName)
		}
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", common.ErrConnectionFailure, err)
	}

	return fmt.Errorf("db error: %w", err)
}
