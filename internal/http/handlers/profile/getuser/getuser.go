// Package getuser реализует HTTP-обработчик получения текущего пользователя.
package getuser

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/healthmate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/healthmate/internal/http/response"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
	"github.com/magabrotheeeer/healthmate/internal/models"
	services "github.com/magabrotheeeer/healthmate/internal/services/auth"
)

// Service возвращает пользователя по идентификатору.
type Service interface {
	UserByID(ctx context.Context, userID string) (*models.User, error)
}

// Handler обрабатывает запрос профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Tags Profile
// @Produce  json
// @Success 200 {object} response.Response "Пользователь"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /profile/getuser [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.getuser"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.service.UserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			log.Info("session user no longer exists", slog.String("user_id", userID))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}
		log.Error("failed to get user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get user"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
