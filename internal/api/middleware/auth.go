package middleware

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-LessonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
)

const (
	msgMissingToken = "требуется токен администратора"
	msgInvalidToken = "токен администратора недействителен или истек"
)

// TokenVerifier проверяет токен администратора
type TokenVerifier interface {
	Verify(raw string) (adminauth.Grant, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// AdminAuth проверяет заголовок Authorization: Bearer <token> и кладет grant в контекст запроса.
// Сервисы получают grant явным аргументом из контекста в хендлере.
func AdminAuth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				logger.Warn("%s %s - Missing admin token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			grant, err := verifier.Verify(raw)
			if err != nil {
				logger.Warn("%s %s - Invalid admin token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(adminauth.WithGrant(r.Context(), grant)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
