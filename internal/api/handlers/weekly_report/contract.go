package weekly_report

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/internal/service/reports/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

type ReportService interface {
	WeeklyReport(ctx context.Context, grant adminauth.Grant, today types.Date) (*models.WeeklyReportResponse, error)
}

type Clock interface {
	Today() types.Date
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
