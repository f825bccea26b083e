package main

import (
	"cat-async/internal/adapters/eventbroker/nats"
	"cat-async/internal/adapters/handlers/terminal"
	"cat-async/internal/config"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if !cfg.NATS.Enabled() {
		logger.Error("NATS_URL is required to watch sessions")
		os.Exit(1)
	}

	// Initialize NATS consumer
	natsConsumer, err := nats.NewNATSConsumer(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to create NATS consumer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := natsConsumer.Close(); err != nil {
			logger.Error("failed to close NATS consumer", "error", err)
		}
	}()
	logger.Info("NATS consumer initialized")

	renderer := terminal.NewRenderer(os.Stdout, true, logger)

	// Subscribe to NATS
	if err := natsConsumer.Subscribe(ctx, renderer); err != nil {
		logger.Error("failed to subscribe to NATS", "error", err)
		os.Exit(1)
	}
	logger.Info("watching upload sessions", "stream", cfg.NATS.StreamName, "subject", cfg.NATS.Subject)

	<-ctx.Done()
	logger.Info("shutting down watcher")
}
