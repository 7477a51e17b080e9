package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arunvm123/bookingportal/notification-service/config"
	"github.com/arunvm123/bookingportal/notification-service/model"
	"github.com/arunvm123/bookingportal/notification-service/processor"
	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
)

func main() {
	// Load configuration
	cfg, err := config.Initialise("config.yaml", false)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("service", "notification-service")
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup Kafka consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.NotificationTopic,
		GroupID: cfg.Kafka.ConsumerGroup,
	})
	defer consumer.Close()

	proc := processor.NewProcessor(consumer, processor.NewLogSender(logger), cfg.Email.FromEmail, cfg.Worker.MaxWorkers, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           healthRouter(proc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", "error", err)
			stop()
		}
	}()

	logger.Info("notification processor started", "port", cfg.Port, "workers", cfg.Worker.MaxWorkers)
	proc.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)
	logger.Info("notification processor stopped", "processed", proc.Processed(), "failed", proc.Failed())
}

// healthRouter serves the health endpoint with the processor's counters
func healthRouter(proc *processor.Processor) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, model.HealthResponse{
			Status:            "healthy",
			Service:           "notification-service",
			Timestamp:         time.Now(),
			MessagesProcessed: proc.Processed(),
			MessagesFailed:    proc.Failed(),
		})
	})

	return r
}
