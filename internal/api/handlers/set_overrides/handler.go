package set_overrides

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LessonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-LessonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректная дата или слот в переопределениях"
	msgUnauthorized       = "требуется авторизация администратора"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/overrides
// Тело запроса заменяет весь набор переопределений; пустой список снимает все ограничения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SetOverridesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetOverrides(r.Context(), adminauth.GrantFromContext(r.Context()), &req)
	if err != nil {
		switch {
		case errors.Is(err, adminauth.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /admin/overrides - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /admin/overrides - Failed to set overrides: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/overrides - Overrides replaced: removed=%d, stored=%d", result.Removed, result.Stored)
	handlers.RespondJSON(w, http.StatusOK, result)
}
