package admin_login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPassword    = "неверный пароль"
)

type Handler struct {
	authority Authority
	logger    Logger
}

func NewHandler(authority Authority, logger Logger) *Handler {
	return &Handler{
		authority: authority,
		logger:    logger,
	}
}

// Handle POST /api/v1/admin/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	token, err := h.authority.Login(req.Password)
	if err != nil {
		if errors.Is(err, adminauth.ErrInvalidPassword) {
			h.logger.Warn("POST /admin/login - Invalid password from %s", r.RemoteAddr)
			handlers.RespondUnauthorized(w, msgInvalidPassword)
			return
		}
		h.logger.Error("POST /admin/login - Failed to issue token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/login - Token issued, expires at %s", token.ExpiresAt)
	handlers.RespondJSON(w, http.StatusOK, newLoginResponse(token.Value, token.ExpiresAt))
}
