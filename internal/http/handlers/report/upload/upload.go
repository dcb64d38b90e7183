// Package upload реализует HTTP-обработчик загрузки медицинского отчёта.
//
// Файл принимается из multipart-поля "file", сохраняется в хранилище и
// отправляется на AI-анализ. В ответе возвращается созданный отчёт.
package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/healthmate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/healthmate/internal/http/response"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
	"github.com/magabrotheeeer/healthmate/internal/models"
	services "github.com/magabrotheeeer/healthmate/internal/services/report"
)

// FormField имя multipart-поля с файлом.
const FormField = "file"

// Service описывает загрузку отчёта.
type Service interface {
	Upload(ctx context.Context, userID string, file services.UploadFile) (*models.Report, error)
}

// Handler обрабатывает загрузку отчётов.
type Handler struct {
	log           *slog.Logger
	service       Service
	maxUploadSize int64
}

// New создает Handler. maxUploadSize ограничивает размер тела запроса в байтах.
func New(log *slog.Logger, service Service, maxUploadSize int64) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		maxUploadSize: maxUploadSize,
	}
}

// ServeHTTP godoc
// @Summary Загрузка отчёта
// @Description Сохраняет файл, анализирует его и возвращает созданный отчёт.
// @Tags Report
// @Accept  multipart/form-data
// @Produce  json
// @Param file formData file true "Файл отчёта (PDF или изображение)"
// @Success 200 {object} response.Response "Отчёт создан"
// @Failure 400 {object} response.ErrorResponse "Файл не передан или слишком большой"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Ошибка анализа или сохранения"
// @Router /report/upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.upload"

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

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	file, header, err := r.FormFile(FormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Info("upload too large", slog.Int64("limit", tooLarge.Limit))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("file is too large"))
			return
		}
		log.Info("no file in request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("no file uploaded"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read uploaded file", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to read file"))
		return
	}

	report, err := h.service.Upload(r.Context(), userID, services.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoFile) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("no file uploaded"))
			return
		}
		log.Error("failed to upload report", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to process report"))
		return
	}

	log.Info("report uploaded", slog.String("report_id", report.ID), slog.Int("size", len(content)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"report": report,
	}))
}
