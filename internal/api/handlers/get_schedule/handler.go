package get_schedule

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
	service ScheduleService
	clock   Clock
	logger  Logger
}

func NewHandler(service ScheduleService, clock Clock, logger Logger) *Handler {
	return &Handler{
		service: service,
		clock:   clock,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/overrides
// Query params: date (optional, YYYY-MM-DD; по умолчанию текущая неделя)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /admin/overrides - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if date.IsZero() {
		date = h.clock.Today()
	}

	result, err := h.service.GetWeekSchedule(r.Context(), adminauth.GrantFromContext(r.Context()), date)
	if err != nil {
		if errors.Is(err, adminauth.ErrUnauthorized) {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		h.logger.Error("GET /admin/overrides - Failed to get schedule: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/overrides - Schedule retrieved successfully: date=%s", date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
