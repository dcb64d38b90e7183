// Package signup реализует HTTP-обработчик регистрации пользователя.
//
// После успешной регистрации пользователь сразу получает cookie сессии.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/healthmate/internal/http/response"
	"github.com/magabrotheeeer/healthmate/internal/http/session"
	"github.com/magabrotheeeer/healthmate/internal/lib/password"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
	"github.com/magabrotheeeer/healthmate/internal/models"
	services "github.com/magabrotheeeer/healthmate/internal/services/auth"
)

// Request входные данные для регистрации.
type Request struct {
	FirstName string `json:"firstname" validate:"required,notblank,max=100"`
	LastName  string `json:"lastname" validate:"required,notblank,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,strong_password,bcrypt_max"`
}

// LogValue скрывает пароль в логах.
func (r Request) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("firstname", r.FirstName),
		slog.String("lastname", r.LastName),
		slog.String("email", r.Email),
	)
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Signup(ctx context.Context, in services.SignupInput) (*models.User, string, error)
}

// Handler обрабатывает запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	tokenTTL time.Duration
	validate *validator.Validate
}

// NewValidator возвращает валидатор с правилами strong_password,
// bcrypt_max (не длиннее 72 байт) и notblank.
func NewValidator() *validator.Validate {
	v := validator.New()
	rules := map[string]validator.Func{
		"strong_password": func(fl validator.FieldLevel) bool {
			return password.IsStrong(fl.Field().String())
		},
		"bcrypt_max": func(fl validator.FieldLevel) bool {
			return password.FitsBcrypt(fl.Field().String())
		},
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("signup: register validation %q: %s", tag, err))
		}
	}
	return v
}

// New создает Handler. tokenTTL задаёт время жизни cookie.
func New(log *slog.Logger, service Service, tokenTTL time.Duration) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		tokenTTL: tokenTTL,
		validate: NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя и выставляет cookie сессии.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные пользователя"
// @Success 200 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или email занят"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

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

	user, token, err := h.service.Signup(r.Context(), services.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		log.Info("email already registered")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Email already registered"))
		return
	case errors.Is(err, services.ErrWeakPassword):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(services.ErrWeakPassword.Error()))
		return
	case errors.Is(err, services.ErrPasswordTooLong):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(services.ErrPasswordTooLong.Error()))
		return
	case errors.Is(err, services.ErrEmptyName):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(services.ErrEmptyName.Error()))
		return
	case err != nil:
		log.Error("signup failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	session.SetToken(w, token, h.tokenTTL)
	log.Info("user registered", slog.String("user_id", user.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":    user,
		"message": "user registered successfully",
	}))
}
