package run_sweep

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

const (
	msgUnauthorized = "требуется авторизация администратора"
)

type Handler struct {
	service RetentionService
	logger  Logger
}

func NewHandler(service RetentionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/retention/sweep
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SweepNow(r.Context(), adminauth.GrantFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, adminauth.ErrUnauthorized) {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		h.logger.Error("POST /admin/retention/sweep - Failed to sweep: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/retention/sweep - Swept: cutoff=%s, deleted=%d", result.Cutoff, result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, result)
}
