package retention

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DeleteResolvedUpTo(ctx context.Context, upTo types.Date) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock источник текущей даты в часовом поясе школы
type Clock interface {
	Now() time.Time
	Today() types.Date
	Location() *time.Location
}

// MetricsRecorder учет очисток
type MetricsRecorder interface {
	ObserveSweep(deleted int64, at time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
