// Package read реализует HTTP-обработчик получения одного отчёта по id.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/healthmate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/healthmate/internal/http/response"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
	"github.com/magabrotheeeer/healthmate/internal/models"
	services "github.com/magabrotheeeer/healthmate/internal/services/report"
)

// Service возвращает отчёт пользователя.
type Service interface {
	Get(ctx context.Context, userID, reportID string) (*models.Report, error)
}

// Handler обрабатывает запрос отчёта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отчёт по id
// @Description Чужой или несуществующий отчёт возвращает 404.
// @Tags Report
// @Produce  json
// @Param id path string true "ID отчёта"
// @Success 200 {object} response.Response "Отчёт"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 404 {object} response.ErrorResponse "Отчёт не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /report/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.read"

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

	id := chi.URLParam(r, "id")
	report, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Info("report not found", slog.String("report_id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("report not found"))
			return
		}
		log.Error("failed to get report", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch report"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"report": report,
	}))
}
