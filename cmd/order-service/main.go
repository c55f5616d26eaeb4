package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/app"
	"github.com/vladislavdragonenkov/burger-oms/internal/version"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger(logger *log.Logger, level, format string) error {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q (use text|json)", format)
	}
	return nil
}

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if err := setupLogger(log.StandardLogger(), cfg.LogLevel, cfg.LogFormat); err != nil {
		log.WithError(err).Fatal("failed to configure logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":      cfg.HTTPAddr,
		"grpc_addr":      cfg.GRPCAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"kafka_enabled":  cfg.KafkaEnabled(),
		"version":        version.String(),
	}).Info("starting burger order service")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("service stopped with error")
	}

	log.Info("burger order service stopped")
}
