// Package insights реализует HTTP-обработчик страницы инсайтов: краткие
// выжимки по каждому отчёту пользователя.
package insights

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/healthmate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/healthmate/internal/http/response"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
	"github.com/magabrotheeeer/healthmate/internal/models"
)

// Service возвращает инсайты пользователя.
type Service interface {
	Insights(ctx context.Context, userID string) ([]models.Insight, error)
}

// Handler обрабатывает запрос инсайтов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Инсайты по отчётам
// @Tags Report
// @Produce  json
// @Success 200 {object} response.Response "Список инсайтов"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /report/insights [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.insights"

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

	insights, err := h.service.Insights(r.Context(), userID)
	if err != nil {
		log.Error("failed to build insights", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch insights"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"insights": insights,
	}))
}
