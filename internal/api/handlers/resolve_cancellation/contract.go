package resolve_cancellation

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

type BookingService interface {
	ApproveCancellation(ctx context.Context, grant adminauth.Grant, bookingID int64) error
	RejectCancellation(ctx context.Context, grant adminauth.Grant, bookingID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
