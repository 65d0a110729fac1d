package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	httpapi "todoapi/internal/adapter/http"
	"todoapi/internal/adapter/telemetry"
	"todoapi/pkg/config"
)

func main() {
	ctx := context.Background()

	logger, err := telemetry.NewLogger("todoapi")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	tel, err := telemetry.Init(telemetry.Config{
		ServiceName:    "todoapi",
		ServiceVersion: "1.0.0",
		Environment:    os.Getenv("APP_ENV"),
		MetricsPort:    "9091",
		OTLPEndpoint:   "localhost:4317",
	}, logger.Zap())

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(ctx)

	metrics := telemetry.NewAppMetrics(tel.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		httpapi.StartServerWithConfig(metrics, logger, config.GetDefaultConfig())
	}()

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
