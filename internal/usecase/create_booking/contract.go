package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountConfirmedByPhone(ctx context.Context, phone string, from, to types.Date) (int, error)
}

// AvailabilityResolver проверка доступности слота
type AvailabilityResolver interface {
	IsAvailable(ctx context.Context, date types.Date, slot domain.Slot) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder учет исходов допуска
type MetricsRecorder interface {
	ObserveAdmission(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
