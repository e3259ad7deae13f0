package create_booking

import (
	"time"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Name  string     // Имя клиента
	Phone string     // Телефон клиента (идентифицирует клиента для квот)
	Date  types.Date // Дата занятия
	Slot  string     // Метка слота, например "14:00-14:30"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	Name      string
	Phone     string
	Date      types.Date
	Slot      domain.Slot
	Status    domain.BookingStatus
	CreatedAt time.Time
}

// Исходы допуска для метрик
const (
	outcomeCreated        = "created"
	outcomeInvalidInput   = "invalid_input"
	outcomeSlotTaken      = "slot_not_available"
	outcomeBookedToday    = "already_booked_today"
	outcomeWeeklyLimit    = "weekly_limit_exceeded"
	outcomeInternalFailed = "error"
)
