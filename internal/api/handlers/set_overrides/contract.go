package set_overrides

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

type ScheduleService interface {
	SetOverrides(ctx context.Context, grant adminauth.Grant, req *models.SetOverridesRequest) (*models.SetOverridesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
