package set_attendance

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-LessonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LessonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAttendance  = "посещаемость должна быть present или absent"
	msgNotFound           = "бронирование не найдено"
	msgUnauthorized       = "требуется авторизация администратора"
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

// Handle PUT /api/v1/admin/bookings/{bookingId}/attendance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{id}/attendance - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SetAttendanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/bookings/{id}/attendance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.SetAttendance(r.Context(), adminauth.GrantFromContext(r.Context()), bookingID, req.Attendance)
	if err != nil {
		switch {
		case errors.Is(err, adminauth.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/bookings/{id}/attendance - Invalid attendance: %q", req.Attendance)
			handlers.RespondBadRequest(w, msgInvalidAttendance)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /admin/bookings/{id}/attendance - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /admin/bookings/{id}/attendance - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/bookings/{id}/attendance - Marked: booking_id=%d, attendance=%s", bookingID, req.Attendance)
	handlers.RespondJSON(w, http.StatusOK, AttendanceResponse{ID: bookingID, Attendance: strings.TrimSpace(req.Attendance)})
}
