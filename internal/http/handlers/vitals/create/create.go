// Package create реализует HTTP-обработчик добавления записи показателей.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/healthmate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/healthmate/internal/http/response"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
	"github.com/magabrotheeeer/healthmate/internal/models"
	services "github.com/magabrotheeeer/healthmate/internal/services/vitals"
)

// Request входные данные записи. Date в формате RFC3339 или 2006-01-02,
// пустая дата означает текущий момент.
type Request struct {
	BP     string `json:"bp" validate:"max=32"`
	Sugar  string `json:"sugar" validate:"max=32"`
	Weight string `json:"weight" validate:"max=32"`
	Note   string `json:"note" validate:"max=1000"`
	Date   string `json:"date"`
}

// Service сохраняет запись показателей.
type Service interface {
	Add(ctx context.Context, userID string, in services.VitalsInput) (*models.Vitals, error)
}

// Handler обрабатывает добавление показателей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ParseDate разбирает дату в формате RFC3339 или 2006-01-02. Пустая строка даёт nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("date must be RFC3339 or YYYY-MM-DD")
}

// ServeHTTP godoc
// @Summary Добавить показатели
// @Description Нужно хотя бы одно из bp, sugar, weight.
// @Tags Vitals
// @Accept  json
// @Produce  json
// @Param request body Request true "Показатели"
// @Success 201 {object} response.Response "Запись создана"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /vitals/add [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vitals.create"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.JSON(w, r, response.Error("invalid request"))
		return
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		log.Info("invalid date", slog.String("date", req.Date))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	v, err := h.service.Add(r.Context(), userID, services.VitalsInput{
		BP:     req.BP,
		Sugar:  req.Sugar,
		Weight: req.Weight,
		Note:   req.Note,
		Date:   date,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoMeasurement) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(services.ErrNoMeasurement.Error()))
			return
		}
		log.Error("failed to add vitals", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save vitals"))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"vitals": v,
	}))
}
