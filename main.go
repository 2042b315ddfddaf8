package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"advisor/src/api"
	apicontrollers "advisor/src/api/controllers"
	apihandlers "advisor/src/api/handlers"
	"advisor/src/clients/amfi"
	"advisor/src/config"
	"advisor/src/database"
	"advisor/src/repositories"
	"advisor/src/services"
	"advisor/src/utils"
	aws_handler "advisor/src/utils/aws"
	redis_utils "advisor/src/utils/redis"
	"advisor/src/worker"
	workercontrollers "advisor/src/worker/controllers"
	workerhandlers "advisor/src/worker/handlers"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}
	logger := utils.NewLogger(utils.ParseLogLevel(cfg.Service.LogLevel), cfg.Service.LogFile != "", cfg.Service.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.SetupDB(ctx, cfg)
	if err != nil {
		logger.WithError(err).Error("Couldn't connect to the database")
		return
	}
	defer pool.Close()

	httpServer, cleanup, err := build(ctx, cfg, pool, logger)
	if err != nil {
		logger.WithError(err).Error("Couldn't run")
		return
	}
	defer cleanup()

	errC := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"type": cfg.Service.Type, "port": cfg.Service.Port}).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		logger.WithError(err).Error("An error raised while running the server")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Graceful shutdown failed")
		}
		logger.Info("Server stopped")
	}
}

// build wires the process selected by service.type. The returned cleanup
// releases what the server holds besides the pool.
func build(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *logrus.Logger) (*http.Server, func(), error) {
	requestLogRepo := repositories.NewRequestLogRepository(pool)

	if cfg.Service.Type == config.WORKER {
		controller := workercontrollers.NewController(requestLogRepo, cfg.RequestLogs.RetentionDays, logger)
		if err := controller.ScheduleRequestLogRetention(cfg.RequestLogs.CleanupCron); err != nil {
			return nil, nil, err
		}
		server := worker.NewServer(workerhandlers.NewHandler(controller))
		return worker.NewHTTPServer(server, cfg.Service.Port), controller.StopSchedulers, nil
	}

	db, err := database.NewGormDB(pool, logger)
	if err != nil {
		return nil, nil, err
	}
	cache, err := redis_utils.NewCacheHandler(cfg)
	if err != nil {
		return nil, nil, err
	}
	secret, err := aws_handler.ResolveJWTSecret(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	userRepo := repositories.NewUserRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	tokenService := services.NewTokenService(secret, cfg.Auth.AccessLifetime, cfg.Auth.RefreshLifetime)
	spreadsheets := services.NewSpreadsheetService()

	handler := apihandlers.NewHandler(
		apicontrollers.NewAuthController(userRepo, amfi.NewClient(cfg, cache), tokenService),
		apicontrollers.NewTransactionsController(
			transactionRepo,
			services.NewTransactionImportService(transactionRepo, spreadsheets),
			services.NewSummaryService(transactionRepo),
			spreadsheets,
		),
		requestLogRepo,
		logger,
	)
	server := api.NewServer(handler, cfg.Service.AllowedOrigins)

	cleanup := func() {
		if closer, ok := cache.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close cache")
			}
		}
	}
	return api.NewHTTPServer(server, cfg.Service.Port), cleanup, nil
}
