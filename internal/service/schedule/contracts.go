package schedule

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// OverrideRepository интерфейс репозитория переопределений доступности
type OverrideRepository interface {
	ReplaceAll(ctx context.Context, overrides []domain.Override) (int64, error)
	ListInRange(ctx context.Context, from, to types.Date) ([]domain.Override, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
