// Package storagetest поднимает временную SQLite БД с миграциями для тестов сервисов и репозиториев.
package storagetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/database"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-LessonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LessonBooking/pkg/sqlbuilder"
	"github.com/m04kA/SMC-LessonBooking/pkg/txmanager"
)

// Env окружение хранилища для теста
type Env struct {
	DB        *dbmetrics.DB
	Dialect   sqlbuilder.Dialect
	TxManager *txmanager.TransactionManager
}

// NewSQLite создает файл БД во временной директории теста и применяет миграции
func NewSQLite(t testing.TB) *Env {
	t.Helper()

	cfg := database.Config{
		Driver:       database.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "lessons.db"),
		MaxOpenConns: 8,
	}

	sqlDB, err := database.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	dialect, err := cfg.Dialect()
	require.NoError(t, err)

	_, err = migrations.Apply(context.Background(), sqlDB, dialect, nil)
	require.NoError(t, err)

	db := dbmetrics.Wrap(sqlDB, nil)

	return &Env{
		DB:      db,
		Dialect: dialect,
		TxManager: txmanager.NewTransactionManager(db,
			txmanager.WithSerializableOptions(cfg.SerializableTxOptions()),
			txmanager.WithRetryable(database.IsRetryable),
			txmanager.WithMaxAttempts(20),
		),
	}
}
