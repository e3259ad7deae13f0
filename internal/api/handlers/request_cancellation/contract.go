package request_cancellation

import (
	"context"
)

type BookingService interface {
	RequestCancellation(ctx context.Context, bookingID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
