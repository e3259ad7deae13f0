package set_attendance

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

type BookingService interface {
	SetAttendance(ctx context.Context, grant adminauth.Grant, bookingID int64, attendance string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
