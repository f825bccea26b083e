package main

import (
	"cat-async/internal/adapters/eventbroker/nats"
	"cat-async/internal/adapters/handlers/http/chi"
	v1session "cat-async/internal/adapters/handlers/http/chi/v1/session"
	"cat-async/internal/adapters/notifier"
	"cat-async/internal/adapters/repository/memory"
	"cat-async/internal/adapters/storage"
	"cat-async/internal/adapters/transfer/httpupload"
	"cat-async/internal/config"
	"cat-async/internal/core/port"
	"cat-async/internal/core/service/cleanup"
	"cat-async/internal/core/service/session"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	//storage
	fileSource, err := storage.NewFileSource(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init file source", "error", err)
		os.Exit(1)
	}

	//transfer
	driver, err := httpupload.NewDriver(cfg.Upload, &http.Client{}, fileSource, logger)
	if err != nil {
		logger.Error("failed to init transfer driver", "error", err)
		os.Exit(1)
	}

	//observers
	observers := []port.Observer{notifier.NewLogObserver(logger)}
	if cfg.NATS.Enabled() {
		publisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
		if err != nil {
			logger.Error("failed to init NATS publisher", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close NATS publisher", "error", err)
			}
		}()
		observers = append(observers, publisher)
		logger.Info("NATS publisher initialized", "stream", cfg.NATS.StreamName, "subject", cfg.NATS.Subject)
	}

	//repositories
	sessionRepo := memory.NewSessionRepository()

	sessionService := session.NewSessionService(sessionRepo, fileSource, driver, notifier.NewFanout(observers...), cfg.Upload, logger)
	cleanupService := cleanup.NewCleanupService(sessionRepo, cfg.Session.TTL, logger)

	//http
	sessionHandler := v1session.NewSessionHandlerV1(sessionService, logger)

	router := chi.NewRouter(logger, sessionHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port, "upload_endpoint", cfg.Upload.EndpointBase)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// init cleanup task
	wg.Add(1)
	go func() {
		defer wg.Done()
		initCleanupTask(ctx, cleanupService, cfg.Session.CleanupEvery, logger)
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	// in-flight transfers are cancelled and awaited before observers close
	if err := cleanupService.CloseAllSessions(shutdownCtx); err != nil {
		logger.Error("failed to close sessions", "error", err)
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initCleanupTask(ctx context.Context, service port.CleanupService, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("cleanup task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			logger.Info("cleanup task starting")
			err := service.CleanupExpiredSessions(ctx, time.Now())
			if err != nil {
				logger.Error("failed to cleanup expired sessions", "error", err)
			} else {
				logger.Info("cleanup task completed successfully")
			}
		case <-ctx.Done():
			logger.Info("cleanup task stopped")
			return
		}
	}

}
