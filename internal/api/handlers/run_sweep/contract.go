package run_sweep

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/internal/service/retention"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

type RetentionService interface {
	SweepNow(ctx context.Context, grant adminauth.Grant) (*retention.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
