package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arunvm123/bookingportal/api-service/cache"
	"github.com/arunvm123/bookingportal/api-service/cache/redis"
	"github.com/arunvm123/bookingportal/api-service/config"
	"github.com/arunvm123/bookingportal/api-service/notifier/kafka"
	"github.com/arunvm123/bookingportal/api-service/repository"
	"github.com/arunvm123/bookingportal/api-service/repository/postgres"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds every dependency from cfg. The returned func releases
// the cache client and the notification writer.
func SetupRouter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gin.Engine, func(), error) {
	// Initialize repository
	repo, err := postgres.NewRepository(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	created, err := repo.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to seed admin user: %w", err)
	}
	if created {
		logger.Info("admin user ready", "email", cfg.Admin.Email)
	}

	// Initialize cache; the service runs uncached without Redis
	var eventCache cache.CacheRepository = cache.Disabled{}
	redisCache, err := redis.NewRedisCacheRepository(ctx, cfg.Redis.GetRedisURL(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Error("redis unavailable, event list will not be cached", "error", err)
	} else {
		eventCache = redisCache
	}

	// Initialize Kafka publisher
	publisher := kafka.NewKafkaPublisher(&cfg.Kafka, logger)

	// Initialize JWT service
	jwtService := NewJWTService(cfg.JWTSecret, cfg.Auth.TokenTTL())

	// Initialize handlers
	handler := NewHandler(repo, eventCache, publisher, jwtService, cfg.Redis.EventListTTL(), logger)

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close notification writer", "error", err)
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}

	return NewEngine(handler, jwtService, repo, logger), cleanup, nil
}

// NewEngine registers every route on a fresh gin engine
func NewEngine(handler *Handler, jwtService *JWTService, repo repository.Repository, logger *slog.Logger) *gin.Engine {
	useWireFieldNames()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())
	r.Use(LoggingMiddleware(logger))

	// Public endpoints
	r.GET("/health", handler.HealthCheck)
	r.POST("/token", handler.Login)
	r.POST("/signup", handler.Signup)
	r.GET("/events", handler.ListEvents)

	// Protected endpoints (require authentication)
	protected := r.Group("")
	protected.Use(AuthMiddleware(jwtService, repo))

	protected.GET("/users/me", handler.Me)
	protected.GET("/bookings/my", handler.MyBookings)
	protected.POST("/bookings", handler.CreateBooking)
	protected.DELETE("/bookings/:id", handler.CancelBooking)

	// Admin endpoints
	protected.POST("/events", RequireAdmin("Not authorized to create events"), handler.CreateEvent)
	protected.PUT("/events/:id", RequireAdmin("Not authorized to update events"), handler.UpdateEvent)
	protected.DELETE("/events/:id", RequireAdmin("Not authorized to delete events"), handler.DeleteEvent)
	protected.GET("/admin/bookings", RequireAdmin("Not authorized"), handler.AllBookings)

	return r
}
