package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/accessservice"
)

const (
	msgForbidden         = "доступ запрещен"
	msgAccessUnavailable = "сервис проверки прав недоступен"
)

// PermissionChecker проверяет право пользователя
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID int64, permission string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequirePermission пропускает запрос, только если у пользователя есть право.
// Должен стоять после Auth.
func RequirePermission(checker PermissionChecker, permission string, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			allowed, err := checker.HasPermission(r.Context(), userID, permission)
			if err != nil {
				if errors.Is(err, accessservice.ErrServiceUnavailable) {
					handlers.RespondError(w, http.StatusServiceUnavailable, msgAccessUnavailable)
					return
				}
				log.Error("%s %s - permission check failed: user_id=%d, error=%v", r.Method, r.URL.Path, userID, err)
				handlers.RespondInternalError(w)
				return
			}

			if !allowed {
				log.Warn("%s %s - access denied: user_id=%d, permission=%s", r.Method, r.URL.Path, userID, permission)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
