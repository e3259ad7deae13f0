package resolve_cancellation

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgNotPending       = "бронирование не ожидает решения по отмене"
	msgQuotaConflict    = "восстановление записи превысит лимит клиента"
	msgUnauthorized     = "требуется авторизация администратора"
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

// Approve POST /api/v1/admin/bookings/{bookingId}/cancellation/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, "approve", domain.StatusCancelled, h.service.ApproveCancellation)
}

// Reject POST /api/v1/admin/bookings/{bookingId}/cancellation/reject
// Кроме 409 для записи не в статусе ожидания, возвращает 409 при конфликте квоты:
// восстановленная запись не должна превышать дневной и недельный лимит клиента.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, "reject", domain.StatusConfirmed, h.service.RejectCancellation)
}

func (h *Handler) resolve(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	result domain.BookingStatus,
	apply func(ctx context.Context, grant adminauth.Grant, bookingID int64) error,
) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/cancellation/%s - Invalid booking ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := apply(r.Context(), adminauth.GrantFromContext(r.Context()), bookingID); err != nil {
		switch {
		case errors.Is(err, adminauth.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/cancellation/%s - Booking not found: booking_id=%d", action, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /admin/bookings/{id}/cancellation/%s - Not pending: booking_id=%d", action, bookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, bookings.ErrQuotaConflict):
			h.logger.Warn("POST /admin/bookings/{id}/cancellation/%s - Quota conflict: booking_id=%d", action, bookingID)
			handlers.RespondConflict(w, msgQuotaConflict)

		default:
			h.logger.Error("POST /admin/bookings/{id}/cancellation/%s - Failed: booking_id=%d, error=%v",
				action, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/cancellation/%s - Done: booking_id=%d, status=%s", action, bookingID, result)
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{ID: bookingID, Status: string(result)})
}
