package request_cancellation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgCannotCancel     = "бронирование уже отменено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
// Запись переходит в ожидание решения администратора, слот остается занятым.
// Повторный запрос по ожидающей записи возвращает 202.
// 409 отдается для уже отмененной записи: отменить ее повторно нельзя.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.RequestCancellation(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to request cancellation: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Cancellation requested: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusAccepted, StatusResponse{ID: bookingID, Status: string(domain.StatusPendingCancellation)})
}
