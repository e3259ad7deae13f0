package list_upcoming_bookings

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

type BookingService interface {
	ListUpcoming(ctx context.Context, grant adminauth.Grant, from types.Date) (*models.BookingListResponse, error)
}

type Clock interface {
	Today() types.Date
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
