// Package list реализует HTTP-обработчик списка отчётов текущего пользователя.
package list

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

// Service возвращает отчёты пользователя, новые первыми.
type Service interface {
	List(ctx context.Context, userID string) ([]models.Report, error)
}

// Handler обрабатывает запрос списка отчётов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Мои отчёты
// @Tags Report
// @Produce  json
// @Success 200 {object} response.Response "Список отчётов"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /report/myreports [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.list"

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

	reports, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to list reports", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch reports"))
		return
	}

	log.Debug("reports listed", slog.Int("count", len(reports)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"reports": reports,
	}))
}
