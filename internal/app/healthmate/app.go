package healthmate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/healthmate/internal/analyzer"
	"github.com/magabrotheeeer/healthmate/internal/cache"
	"github.com/magabrotheeeer/healthmate/internal/config"
	"github.com/magabrotheeeer/healthmate/internal/events"
	"github.com/magabrotheeeer/healthmate/internal/filestore"
	"github.com/magabrotheeeer/healthmate/internal/lib/jwt"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
	"github.com/magabrotheeeer/healthmate/internal/metrics"
	"github.com/magabrotheeeer/healthmate/internal/migrations"
	authservice "github.com/magabrotheeeer/healthmate/internal/services/auth"
	reportservice "github.com/magabrotheeeer/healthmate/internal/services/report"
	vitalsservice "github.com/magabrotheeeer/healthmate/internal/services/vitals"
	"github.com/magabrotheeeer/healthmate/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-сервер со всеми зависимостями.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *storage.Storage
	closers []io.Closer
}

// New поднимает зависимости по конфигу: БД с миграциями, кеш, хранилище файлов,
// AI-клиент и публикацию событий. Redis и RabbitMQ необязательны.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.healthmate.New"

	db, err := storage.New(ctx, cfg.Database.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app := &App{logger: logger, db: db}

	if err = migrations.Run(db.DB, cfg.Database.MigrationsPath); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var reportCache reportservice.Cache = cache.Noop{}
	if cfg.Redis.Enabled {
		redisCache, err := cache.InitServer(ctx, cfg.Redis)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, redisCache)
		reportCache = redisCache
		logger.Info("redis cache enabled", slog.String("address", cfg.Redis.Address))
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := events.NewAMQP(logger, cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange,
			cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, amqpPublisher)
		publisher = amqpPublisher
		logger.Info("event publishing enabled", slog.String("exchange", cfg.RabbitMQ.Exchange))
	}

	files, err := filestore.New(ctx, cfg.Storage)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	localFiles, _ := files.(*filestore.Local)

	m := metrics.New()
	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.SecretKey, cfg.JWTToken.TokenTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Auth: authservice.NewAuthService(logger, db, jwtMaker, cfg.Password.HashCost, m),
		Reports: reportservice.NewReportService(logger, db, files, analyzer.New(cfg.Analyzer),
			reportCache, cfg.Redis.TTL, publisher, m),
		Vitals:        vitalsservice.NewVitalsService(logger, db, m),
		LocalFiles:    localFiles,
		Metrics:       m,
		UploadLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit.UploadRPS), cfg.RateLimit.UploadBurst),
		TokenTTL:      jwtMaker.TTL(),
		MaxUploadSize: cfg.HTTPServer.MaxUploadSize,
		ClientURL:     cfg.HTTPServer.ClientURL,
	})

	app.server = &http.Server{
		Addr:         cfg.HTTPServer.Address(),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return app, nil
}

// Run запускает сервер и блокируется до ошибки или отмены ctx,
// после чего сервер останавливается, а соединения закрываются.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("failed to close dependency", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
