package get_schedule

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

type ScheduleService interface {
	GetWeekSchedule(ctx context.Context, grant adminauth.Grant, date types.Date) (*models.WeekScheduleResponse, error)
}

type Clock interface {
	Today() types.Date
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
