package uow

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestTx_CommitThenCloseIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := Begin(context.Background(), db)
	require.NoError(t, err)

	require.NoError(t, tx.Commit())
	require.NoError(t, tx.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_CloseWithoutCommitRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := Begin(context.Background(), db)
	require.NoError(t, err)

	require.NoError(t, tx.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_CloseIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := Begin(context.Background(), db)
	require.NoError(t, err)

	require.NoError(t, tx.Close())
	require.NoError(t, tx.Close())
}

func TestTx_RollbackFailurePropagatesFromClose(t *testing.T) {
	db, mock := newMockDB(t)
	cause := errors.New("connection torn down")
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(cause)

	tx, err := Begin(context.Background(), db)
	require.NoError(t, err)

	err = tx.Close()
	require.ErrorIs(t, err, cause)
}

func TestTx_OperationsAfterCloseAreRejected(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := Begin(context.Background(), db)
	require.NoError(t, err)
	require.NoError(t, tx.Close())

	require.ErrorIs(t, tx.Commit(), ErrClosed)
	require.ErrorIs(t, tx.Rollback(), ErrClosed)
}

func TestTx_ExplicitRollbackThenClose(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := Begin(context.Background(), db)
	require.NoError(t, err)

	require.NoError(t, tx.Rollback())
	require.NoError(t, tx.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_RepositoriesAreBound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := Begin(context.Background(), db)
	require.NoError(t, err)
	defer tx.Close()

	assert.NotNil(t, tx.Users)
	assert.NotNil(t, tx.Complexes)
	assert.NotNil(t, tx.Buildings)
}

func TestTx_UncommittedWriteIsRolledBack(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@x.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "a@x.com", "hash", time.Now(), time.Now(), nil))
	mock.ExpectRollback()

	tx, err := Begin(context.Background(), db)
	require.NoError(t, err)

	_, err = tx.Users.Create(context.Background(), "a@x.com", "hash")
	require.NoError(t, err)

	// scope exits without Commit: the write must be rolled back
	require.NoError(t, tx.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadonly_RepositoriesAreBound(t *testing.T) {
	db, _ := newMockDB(t)

	ro := NewReadonly(db)
	assert.NotNil(t, ro.Users)
	assert.NotNil(t, ro.Complexes)
	assert.NotNil(t, ro.Buildings)
}

func TestManager_BeginAndReadonly(t *testing.T) {
	db, mock := newMockDB(t)
	m := &Manager{db: db}

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := m.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Close())

	require.NotNil(t, m.Readonly())
	require.Same(t, db, m.DB())
}
