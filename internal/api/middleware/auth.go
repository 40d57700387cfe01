package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-RentalWizard/internal/api/handlers"
	"github.com/m04kA/SMC-RentalWizard/pkg/authctx"
)

const (
	headerAuthorization = "Authorization"
	headerUserID        = "X-User-ID"

	bearerPrefix = "Bearer "

	msgMissingToken  = "отсутствует токен авторизации"
	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
)

type userIDKey struct{}

// Auth проверяет заголовки аутентификации на защищенных маршрутах
// Валидацию токена выполняет API gateway перед нами: здесь токен только
// прокидывается дальше, а X-User-ID становится владельцем сессии
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get(headerAuthorization)
		if !strings.HasPrefix(auth, bearerPrefix) {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}
		token := strings.TrimPrefix(auth, bearerPrefix)

		userID, err := strconv.ParseInt(r.Header.Get(headerUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := authctx.WithToken(r.Context(), token)
		ctx = context.WithValue(ctx, userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}
