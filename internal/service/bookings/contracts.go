package bookings

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByPhone(ctx context.Context, phone string, from types.Date) ([]*domain.Booking, error)
	ListFrom(ctx context.Context, from types.Date) ([]*domain.Booking, error)
	CountConfirmedByPhone(ctx context.Context, phone string, from, to types.Date) (int, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	SetAttendance(ctx context.Context, id int64, attendance domain.Attendance) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учет переходов статусов
type MetricsRecorder interface {
	ObserveTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
