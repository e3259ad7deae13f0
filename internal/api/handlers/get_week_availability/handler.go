package get_week_availability

import (
	"net/http"

	"github.com/m04kA/SMC-LessonBooking/internal/api/handlers"
	getWeekAvailability "github.com/m04kA/SMC-LessonBooking/internal/usecase/get_week_availability"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetWeekAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (optional, YYYY-MM-DD; по умолчанию текущая неделя)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getWeekAvailability.Request{Date: date})
	if err != nil {
		h.logger.Error("GET /availability - Failed to get availability: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability - Availability retrieved successfully: days=%d", len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
