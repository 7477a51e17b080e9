package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/arunvm123/bookingportal/notification-service/config"
	"github.com/arunvm123/bookingportal/notification-service/processor"
	"github.com/segmentio/kafka-go"
)

// Headless variant of the notification service: consumes without serving
// the health endpoint.
func main() {
	// Load configuration
	cfg, err := config.Initialise("config.yaml", false)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("service", "notification-worker")

	// Setup Kafka consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.NotificationTopic,
		GroupID: cfg.Kafka.ConsumerGroup,
	})
	defer consumer.Close()

	// Graceful shutdown context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := processor.NewProcessor(consumer, processor.NewLogSender(logger), cfg.Email.FromEmail, cfg.Worker.MaxWorkers, logger)

	logger.Info("notification worker started", "workers", cfg.Worker.MaxWorkers)
	proc.Run(ctx)
	logger.Info("worker stopped gracefully", "processed", proc.Processed(), "failed", proc.Failed())
}
