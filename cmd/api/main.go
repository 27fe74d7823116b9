package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shutterspot/api/internal/config"
	"github.com/shutterspot/api/internal/database"
	"github.com/shutterspot/api/internal/handler"
	loggerPkg "github.com/shutterspot/api/internal/logger"
	"github.com/shutterspot/api/internal/middleware"
	"github.com/shutterspot/api/internal/repository"
	"github.com/shutterspot/api/internal/router"
	"github.com/shutterspot/api/internal/server"
	"github.com/shutterspot/api/internal/service"

	_ "github.com/joho/godotenv/autoload"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	bootstrapLogger := loggerPkg.New(cfg, nil)

	loggerService, err := loggerPkg.NewLoggerService(cfg, bootstrapLogger)
	if err != nil {
		bootstrapLogger.Fatal().Err(err).Msg("failed to initialize logger service")
	}

	logger := loggerPkg.New(cfg, loggerService)

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := database.Migrate(migrateCtx, logger, cfg); err != nil {
		cancelMigrate()
		logger.Fatal().Err(err).Msg("failed to run database migrations")
	}
	cancelMigrate()

	s, err := server.New(cfg, logger, loggerService)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(s.DB)

	s.Job.InitHandlers(cfg, logger, repos.Challenges)
	if err := s.Job.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start job worker")
	}

	services, err := service.NewServices(s, repos)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s, services.Token, repos.Users)

	e := router.New(handlers, middlewares)
	s.SetupHTTPServer(e)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if loggerService != nil {
		loggerService.Shutdown(5 * time.Second)
	}

	logger.Info().Msg("server stopped")
}
