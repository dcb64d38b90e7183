// Package main HealthMate API
//
// @title           HealthMate API
// @version         1.0
// @description     API для загрузки медицинских отчётов, их AI-анализа и учёта показателей здоровья

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/healthmate/internal/app/healthmate"
	"github.com/magabrotheeeer/healthmate/internal/config"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
)

func main() {
	// .env необязателен, переменные могут прийти из окружения.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	logger := sl.SetupLogger(cfg.Env, os.Stdout)

	logger.Info("starting healthmate", slog.Any("config", cfg))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := healthmate.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("healthmate stopped gracefully")
}
