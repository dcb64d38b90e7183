// Package download отдаёт загруженные файлы локального хранилища.
//
// Файл отдаётся только владельцу отчёта, которому он принадлежит. Для
// остальных, как и для несуществующих файлов, ответ 404.
package download

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/healthmate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/healthmate/internal/http/response"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
)

// Files локальное хранилище файлов.
type Files interface {
	Path(name string) (string, error)
	URL(name string) string
}

// Service проверяет владение файлом.
type Service interface {
	OwnsFile(ctx context.Context, userID, fileURL string) (bool, error)
}

// Handler отдаёт файлы.
type Handler struct {
	log     *slog.Logger
	files   Files
	service Service
}

// New создает Handler.
func New(log *slog.Logger, files Files, service Service) *Handler {
	return &Handler{log: log, files: files, service: service}
}

// ServeHTTP godoc
// @Summary Файл отчёта
// @Description Доступно только для локального хранилища.
// @Tags Report
// @Produce  octet-stream
// @Param name path string true "Имя файла"
// @Success 200 {file} file "Содержимое файла"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 404 {object} response.ErrorResponse "Файл не найден"
// @Router /report/uploads/{name} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.download"

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

	name := chi.URLParam(r, "name")
	p, err := h.files.Path(name)
	if err != nil {
		log.Info("invalid file name", slog.String("name", name), sl.Err(err))
		notFound(w, r)
		return
	}

	owns, err := h.service.OwnsFile(r.Context(), userID, h.files.URL(name))
	if err != nil {
		log.Error("failed to check file owner", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch file"))
		return
	}
	if !owns {
		log.Info("file not owned by user", slog.String("name", name))
		notFound(w, r)
		return
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeFile(w, r, p)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, response.Error("file not found"))
}
