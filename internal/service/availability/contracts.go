package availability

import (
	"context"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveInRange(ctx context.Context, from, to types.Date) ([]*domain.Booking, error)
}

// OverrideRepository интерфейс репозитория переопределений доступности
type OverrideRepository interface {
	ListInRange(ctx context.Context, from, to types.Date) ([]domain.Override, error)
}
