// Package logout реализует HTTP-обработчик выхода: cookie сессии удаляется всегда.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/healthmate/internal/http/response"
	"github.com/magabrotheeeer/healthmate/internal/http/session"
)

// Handler обрабатывает выход пользователя.
type Handler struct {
	log *slog.Logger
}

// New создает Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Удаляет cookie сессии.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Сессия завершена"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	h.log.Info("logout",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	session.Clear(w)
	render.JSON(w, r, response.Message("logged out successfully"))
}
