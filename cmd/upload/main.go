package main

import (
	"cat-async/internal/adapters/eventbroker/nats"
	"cat-async/internal/adapters/handlers/terminal"
	"cat-async/internal/adapters/notifier"
	"cat-async/internal/adapters/storage"
	"cat-async/internal/adapters/transfer/httpupload"
	"cat-async/internal/config"
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"cat-async/internal/core/service/session"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
)

const (
	exitSucceeded = 0
	exitFailed    = 1
	exitUsage     = 2
	exitCancelled = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	strategy := flag.String("strategy", "", "transfer strategy, streaming or buffered (defaults to UPLOAD_STRATEGY)")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <upload-link> <file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		return exitUsage
	}
	link, location := flag.Arg(0), flag.Arg(1)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return exitFailed
	}
	if *strategy != "" {
		cfg.Upload.Strategy = *strategy
	}

	identifier, err := domain.ParseIdentifier(link)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	fileSource, err := storage.NewFileSource(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init file source", "error", err)
		return exitFailed
	}

	driver, err := httpupload.NewDriver(cfg.Upload, &http.Client{}, fileSource, logger)
	if err != nil {
		logger.Error("failed to init transfer driver", "error", err)
		return exitUsage
	}

	observers := []port.Observer{terminal.NewRenderer(os.Stdout, false, logger)}
	if cfg.NATS.Enabled() {
		publisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
		if err != nil {
			logger.Error("failed to init NATS publisher", "error", err)
			return exitFailed
		}
		defer publisher.Close()
		observers = append(observers, publisher)
	}

	target := domain.NewUploadTarget(cfg.Upload.EndpointBase, identifier)
	controller := session.NewController(uuid.New(), target, driver, notifier.NewFanout(observers...), cfg.Upload, logger)

	file, err := fileSource.Stat(ctx, location)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not select %s: %v\n", location, err)
		return exitFailed
	}
	controller.SelectFile(ctx, file)

	if err := controller.Submit(ctx); err != nil {
		return exitFailed
	}

	done := make(chan struct{})
	go func() {
		controller.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		_ = controller.Cancel(context.Background())
		<-done
	}

	switch controller.Snapshot().State {
	case domain.SessionStateSucceeded:
		return exitSucceeded
	case domain.SessionStateCancelled:
		return exitCancelled
	default:
		return exitFailed
	}
}

