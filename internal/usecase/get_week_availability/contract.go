package get_week_availability

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/internal/service/availability"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// AvailabilityResolver загрузка среза доступности
type AvailabilityResolver interface {
	Load(ctx context.Context, from, to types.Date) (*availability.Snapshot, error)
}

// Clock источник текущей даты в часовом поясе бизнеса
type Clock interface {
	Today() types.Date
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
