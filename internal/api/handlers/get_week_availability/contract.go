package get_week_availability

import (
	"context"

	getWeekAvailability "github.com/m04kA/SMC-LessonBooking/internal/usecase/get_week_availability"
)

type GetWeekAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getWeekAvailability.Request) (*getWeekAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
