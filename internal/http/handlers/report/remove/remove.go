// Package remove реализует HTTP-обработчик удаления отчёта вместе с файлом.
package remove

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
	services "github.com/magabrotheeeer/healthmate/internal/services/report"
)

// Service удаляет отчёт пользователя.
type Service interface {
	Delete(ctx context.Context, userID, reportID string) error
}

// Handler обрабатывает удаление отчёта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление отчёта
// @Tags Report
// @Produce  json
// @Param id path string true "ID отчёта"
// @Success 200 {object} response.Response "Отчёт удалён"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 404 {object} response.ErrorResponse "Отчёт не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /report/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.remove"

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
	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Info("report not found", slog.String("report_id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("report not found"))
			return
		}
		log.Error("failed to delete report", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete report"))
		return
	}

	log.Info("report deleted", slog.String("report_id", id))
	render.JSON(w, r, response.Message("report deleted successfully"))
}
