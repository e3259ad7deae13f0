package list_bookings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-LessonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LessonBooking/internal/service/bookings"
)

const (
	msgMissingPhone = "телефон обязателен"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/bookings
// Query params: phone (required), from (optional, YYYY-MM-DD; по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))
	if phone == "" {
		h.logger.Warn("GET /bookings - Missing phone")
		handlers.RespondBadRequest(w, msgMissingPhone)
		return
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if from.IsZero() {
		from = h.clock.Today()
	}

	result, err := h.service.ListForPhone(r.Context(), phone, from)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingPhone)
			return
		}
		h.logger.Error("GET /bookings - Failed to get bookings: phone=%s, error=%v", phone, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: phone=%s, count=%d", phone, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
