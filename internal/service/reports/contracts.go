package reports

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// BookingRepository интерфейс агрегирующих запросов по бронированиям
type BookingRepository interface {
	CountActiveByDate(ctx context.Context, from, to types.Date) (map[types.Date]int, error)
	CountAttendance(ctx context.Context) (present int, absent int, err error)
	TopClients(ctx context.Context, limit int) ([]booking.ClientStat, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
