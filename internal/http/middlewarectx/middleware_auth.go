// Package middlewarectx содержит HTTP middleware для проверки сессии и
// ограничения частоты запросов.
//
// JWTMiddleware берёт токен из cookie сессии, валидирует его через сервис
// аутентификации и в случае успеха кладёт идентификатор пользователя в контекст.
// В случае ошибки возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/healthmate/internal/http/response"
	"github.com/magabrotheeeer/healthmate/internal/http/session"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID ключ идентификатора пользователя в контексте.
const UserID Key = "user_id"

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен из cookie.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := session.FromRequest(r)
			if token == "" {
				log.Info("missing session cookie")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			userID, err := authService.ValidateToken(r.Context(), token)
			if err != nil || userID == "" {
				log.Info("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID кладёт идентификатор пользователя в контекст.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserID, userID)
}

// UserIDFromContext достаёт идентификатор пользователя, положенный JWTMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserID).(string)
	return userID, ok && userID != ""
}
