package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/m04kA/SMC-LessonBooking/pkg/dbmetrics"
)

const (
	defaultMaxAttempts = 5
	defaultBaseBackoff = 10 * time.Millisecond
)

var (
	// ErrTransaction возвращается при ошибках начала/фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")
)

// Beginner источник транзакций (реализуется *dbmetrics.DB)
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryRecorder получает уведомления о повторах транзакций
type RetryRecorder interface {
	IncTxRetry()
}

// Option настройка менеджера транзакций
type Option func(*TransactionManager)

// WithSerializableOptions задает опции транзакции для DoSerializable.
// Для Postgres это sql.LevelSerializable; для SQLite nil, так как сериализацию обеспечивает BEGIN IMMEDIATE.
func WithSerializableOptions(opts *sql.TxOptions) Option {
	return func(m *TransactionManager) {
		m.serializableOpts = opts
	}
}

// WithMaxAttempts ограничивает число попыток DoSerializable
func WithMaxAttempts(n int) Option {
	return func(m *TransactionManager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// WithRetryable задает классификатор ошибок, после которых транзакцию можно повторить
func WithRetryable(fn func(error) bool) Option {
	return func(m *TransactionManager) {
		m.isRetryable = fn
	}
}

// WithBaseBackoff задает базовую паузу между попытками
func WithBaseBackoff(d time.Duration) Option {
	return func(m *TransactionManager) {
		m.baseBackoff = d
	}
}

// WithRetryRecorder подключает метрику повторов
func WithRetryRecorder(r RetryRecorder) Option {
	return func(m *TransactionManager) {
		m.recorder = r
	}
}

// TransactionManager выполняет функции внутри транзакции, передавая её через context
type TransactionManager struct {
	db               Beginner
	serializableOpts *sql.TxOptions
	maxAttempts      int
	baseBackoff      time.Duration
	isRetryable      func(error) bool
	recorder         RetryRecorder
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db Beginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:               db,
		serializableOpts: &sql.TxOptions{Isolation: sql.LevelSerializable},
		maxAttempts:      defaultMaxAttempts,
		baseBackoff:      defaultBaseBackoff,
		isRetryable:      func(error) bool { return false },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// При конфликте сериализации транзакция откатывается и fn выполняется заново,
// поэтому fn не должна иметь побочных эффектов вне БД.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err = m.run(ctx, m.serializableOpts, fn)
		if err == nil || !m.isRetryable(err) {
			return err
		}
		if attempt == m.maxAttempts {
			break
		}
		if m.recorder != nil {
			m.recorder.IncTxRetry()
		}
		if waitErr := m.sleep(ctx, attempt); waitErr != nil {
			return waitErr
		}
	}
	return err
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTransaction, err)
	}
	return nil
}

func (m *TransactionManager) sleep(ctx context.Context, attempt int) error {
	backoff := m.baseBackoff * time.Duration(1<<(attempt-1))
	if backoff > 0 {
		backoff += time.Duration(rand.Int63n(int64(backoff)))
	}

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
