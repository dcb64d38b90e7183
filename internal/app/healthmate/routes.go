// Package healthmate собирает HTTP-приложение HealthMate: маршруты, middleware и зависимости.
package healthmate

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// Регистрация сгенерированной swagger-спецификации.
	_ "github.com/magabrotheeeer/healthmate/docs"
	"github.com/magabrotheeeer/healthmate/internal/filestore"
	"github.com/magabrotheeeer/healthmate/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/healthmate/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/healthmate/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/healthmate/internal/http/handlers/profile/getuser"
	"github.com/magabrotheeeer/healthmate/internal/http/handlers/report/download"
	"github.com/magabrotheeeer/healthmate/internal/http/handlers/report/insights"
	reportlist "github.com/magabrotheeeer/healthmate/internal/http/handlers/report/list"
	reportread "github.com/magabrotheeeer/healthmate/internal/http/handlers/report/read"
	reportremove "github.com/magabrotheeeer/healthmate/internal/http/handlers/report/remove"
	"github.com/magabrotheeeer/healthmate/internal/http/handlers/report/upload"
	vitalscreate "github.com/magabrotheeeer/healthmate/internal/http/handlers/vitals/create"
	vitalslist "github.com/magabrotheeeer/healthmate/internal/http/handlers/vitals/list"
	vitalsremove "github.com/magabrotheeeer/healthmate/internal/http/handlers/vitals/remove"
	"github.com/magabrotheeeer/healthmate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/healthmate/internal/metrics"
	authservice "github.com/magabrotheeeer/healthmate/internal/services/auth"
	reportservice "github.com/magabrotheeeer/healthmate/internal/services/report"
	vitalsservice "github.com/magabrotheeeer/healthmate/internal/services/vitals"
)

// Deps зависимости, нужные маршрутам.
type Deps struct {
	Auth    *authservice.AuthService
	Reports *reportservice.ReportService
	Vitals  *vitalsservice.VitalsService
	// LocalFiles задан только для локального хранилища, тогда файлы отдаются
	// по /report/uploads/{name}.
	LocalFiles    *filestore.Local
	Metrics       *metrics.Metrics
	UploadLimiter *rate.Limiter
	TokenTTL      time.Duration
	MaxUploadSize int64
	ClientURL     string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{deps.ClientURL},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		deps.Metrics.InstrumentHandler,
	)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "Backend is running")
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", signup.New(logger, deps.Auth, deps.TokenTTL).ServeHTTP)
		r.Post("/login", login.New(logger, deps.Auth, deps.TokenTTL).ServeHTTP)
		r.Post("/logout", logout.New(logger).ServeHTTP)
	})

	// Группа с проверкой сессии
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(deps.Auth, logger))

		r.Get("/profile/getuser", getuser.New(logger, deps.Auth).ServeHTTP)

		r.Route("/report", func(r chi.Router) {
			r.With(middlewarectx.RateLimitMiddleware(logger, deps.UploadLimiter)).
				Post("/upload", upload.New(logger, deps.Reports, deps.MaxUploadSize).ServeHTTP)
			r.Get("/myreports", reportlist.New(logger, deps.Reports).ServeHTTP)
			r.Get("/insights", insights.New(logger, deps.Reports).ServeHTTP)
			if deps.LocalFiles != nil {
				r.Get("/uploads/{name}", download.New(logger, deps.LocalFiles, deps.Reports).ServeHTTP)
			}
			r.Get("/{id}", reportread.New(logger, deps.Reports).ServeHTTP)
			r.Delete("/{id}", reportremove.New(logger, deps.Reports).ServeHTTP)
		})

		r.Route("/vitals", func(r chi.Router) {
			r.Post("/add", vitalscreate.New(logger, deps.Vitals).ServeHTTP)
			r.Get("/myvitals", vitalslist.New(logger, deps.Vitals).ServeHTTP)
			r.Delete("/{id}", vitalsremove.New(logger, deps.Vitals).ServeHTTP)
		})
	})

	r.Handle("/metrics", deps.Metrics.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
