package list_upcoming_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

const (
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized = "требуется авторизация администратора"
)

type Handler struct {
	service BookingService
	clock   Clock
	logger  Logger
}

func NewHandler(service BookingService, clock Clock, logger Logger) *Handler {
	return &Handler{
		service: service,
		clock:   clock,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: from (optional, YYYY-MM-DD; по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if from.IsZero() {
		from = h.clock.Today()
	}

	result, err := h.service.ListUpcoming(r.Context(), adminauth.GrantFromContext(r.Context()), from)
	if err != nil {
		if errors.Is(err, adminauth.ErrUnauthorized) {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to get bookings: from=%s, error=%v", from, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: from=%s, count=%d", from, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
