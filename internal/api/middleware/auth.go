package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/velline/salon-booking-service/internal/api/handlers"
	"github.com/velline/salon-booking-service/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

const (
	msgMissingIdentity = "отсутствуют заголовки аутентификации"
	msgInvalidIdentity = "некорректные заголовки аутентификации"
)

// Auth извлекает личность инициатора из доверенных заголовков
// X-User-ID и X-User-Role и кладет Actor в контекст запроса
// Проверку учетных данных выполняет внешняя identity-граница;
// сервис доверяет ей полностью
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := r.Header.Get(headerUserID)
		roleStr := r.Header.Get(headerUserRole)

		if idStr == "" || roleStr == "" {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidIdentity)
			return
		}

		role := domain.Role(roleStr)
		if role != domain.RoleClient && role != domain.RoleStaff && role != domain.RoleAdmin {
			handlers.RespondUnauthorized(w, msgInvalidIdentity)
			return
		}

		actor := domain.Actor{ID: id, Role: role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
	})
}

// GetActor возвращает Actor из контекста запроса
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
