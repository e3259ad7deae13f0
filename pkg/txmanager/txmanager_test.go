package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LessonBooking/pkg/dbmetrics"
)

var errConflict = errors.New("could not serialize access")

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs       []*fakeTx
	lastOpts  *sql.TxOptions
	commitErr []error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	if len(b.commitErr) > 0 {
		tx.commitErr = b.commitErr[0]
		b.commitErr = b.commitErr[1:]
	}
	b.txs = append(b.txs, tx)
	b.lastOpts = opts
	return tx, nil
}

type countingRecorder struct{ retries int }

func (r *countingRecorder) IncTxRetry() { r.retries++ }

func TestDo_CommitsAndExposesTxInContext(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.False(t, db.txs[0].rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDo_RollsBackOnPanic(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	assert.Panics(t, func() {
		_ = m.Do(context.Background(), func(context.Context) error { panic("boom") })
	})
	assert.True(t, db.txs[0].rolledBack)
}

func TestDo_NestedCallReusesOuterTx(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestDoSerializable_RetriesRetryableErrors(t *testing.T) {
	db := &fakeBeginner{}
	rec := &countingRecorder{}
	m := NewTransactionManager(db,
		WithRetryable(func(err error) bool { return errors.Is(err, errConflict) }),
		WithBaseBackoff(0),
		WithRetryRecorder(rec),
	)

	calls := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errConflict
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, rec.retries)
	assert.Equal(t, sql.LevelSerializable, db.lastOpts.Isolation)
}

func TestDoSerializable_RetriesCommitConflict(t *testing.T) {
	db := &fakeBeginner{commitErr: []error{errConflict}}
	m := NewTransactionManager(db,
		WithRetryable(func(err error) bool { return errors.Is(err, errConflict) }),
		WithBaseBackoff(0),
	)

	calls := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoSerializable_StopsOnNonRetryableError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db,
		WithRetryable(func(err error) bool { return errors.Is(err, errConflict) }),
		WithBaseBackoff(0),
	)
	business := errors.New("slot not available")

	calls := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		return business
	})

	assert.ErrorIs(t, err, business)
	assert.Equal(t, 1, calls)
}

func TestDoSerializable_GivesUpAfterMaxAttempts(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db,
		WithRetryable(func(err error) bool { return errors.Is(err, errConflict) }),
		WithBaseBackoff(0),
		WithMaxAttempts(3),
	)

	calls := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		return errConflict
	})

	assert.ErrorIs(t, err, errConflict)
	assert.Equal(t, 3, calls)
}
