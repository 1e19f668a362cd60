package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
)

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
	tx    *fakeTx
	opts  []*sql.TxOptions
	err   error
	calls int
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.calls++
	b.opts = append(b.opts, opts)
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestTransactionManager_Commit(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	manager := NewTransactionManager(beginner)

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, beginner.tx.committed)
	assert.False(t, beginner.tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, beginner.opts[0].Isolation)
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	manager := NewTransactionManager(beginner)
	fnErr := errors.New("slot is full")

	err := manager.Do(context.Background(), func(context.Context) error { return fnErr })

	assert.ErrorIs(t, err, fnErr)
	assert.False(t, beginner.tx.committed)
	assert.True(t, beginner.tx.rolledBack)
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	manager := NewTransactionManager(beginner)

	assert.Panics(t, func() {
		_ = manager.Do(context.Background(), func(context.Context) error { panic("boom") })
	})
	assert.True(t, beginner.tx.rolledBack)
}

func TestTransactionManager_Errors(t *testing.T) {
	t.Run("begin", func(t *testing.T) {
		manager := NewTransactionManager(&fakeBeginner{err: errors.New("connection refused")})
		err := manager.Do(context.Background(), func(context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrBeginTx)
	})

	t.Run("commit", func(t *testing.T) {
		beginner := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("serialization failure")}}
		manager := NewTransactionManager(beginner)
		err := manager.Do(context.Background(), func(context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrCommitTx)
		assert.True(t, beginner.tx.rolledBack)
	})
}

func TestTransactionManager_Nested(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	manager := NewTransactionManager(beginner)

	err := manager.Do(context.Background(), func(ctx context.Context) error {
		return manager.DoReadOnly(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, beginner.calls, "inner call reuses the outer transaction")
}

func TestNopManager(t *testing.T) {
	called := false
	err := NopManager{}.DoSerializable(context.Background(), func(ctx context.Context) error {
		called = true
		assert.False(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
}
