package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/arunvm123/bookingportal/api-service/cache"
	"github.com/arunvm123/bookingportal/api-service/model"
	"github.com/arunvm123/bookingportal/api-service/notifier"
	"github.com/arunvm123/bookingportal/api-service/repository"
	"github.com/gin-gonic/gin"
)

const detailInternal = "Internal server error"

type Handler struct {
	repo         repository.Repository
	cache        cache.CacheRepository
	publisher    notifier.Publisher
	jwtService   *JWTService
	eventListTTL time.Duration
	logger       *slog.Logger
}

func NewHandler(repo repository.Repository, cache cache.CacheRepository, publisher notifier.Publisher, jwtService *JWTService, eventListTTL time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		repo:         repo,
		cache:        cache,
		publisher:    publisher,
		jwtService:   jwtService,
		eventListTTL: eventListTTL,
		logger:       logger,
	}
}

func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, model.ErrorResponse{Detail: msg})
}

// Login exchanges form-encoded credentials for an access token
func (h *Handler) Login(c *gin.Context) {
	var req model.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidRequest(c, "body", err)
		return
	}

	user, err := h.repo.GetUserByEmail(c.Request.Context(), req.Username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		h.logger.Error("failed to load user", "error", err)
		detail(c, http.StatusInternalServerError, detailInternal)
		return
	}
	if user == nil || !h.repo.ValidatePassword(user, req.Password) {
		unauthorized(c, "Incorrect username or password")
		return
	}

	token, err := h.jwtService.GenerateToken(user.Email)
	if err != nil {
		h.logger.Error("failed to sign token", "error", err)
		detail(c, http.StatusInternalServerError, detailInternal)
		return
	}

	c.JSON(http.StatusOK, model.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Signup registers a regular user
func (h *Handler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "body", err)
		return
	}

	user, err := h.repo.CreateUser(c.Request.Context(), req.ToCreateUserRequest())
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			detail(c, http.StatusBadRequest, "Email already registered")
			return
		}
		h.logger.Error("failed to create user", "error", err)
		detail(c, http.StatusInternalServerError, detailInternal)
		return
	}

	c.JSON(http.StatusCreated, user.ToUserResponse())
}

// Me returns the authenticated user
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c).ToUserResponse())
}

// ListEvents serves the catalog, from the cache when it holds a copy
func (h *Handler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	cached, err := h.cache.GetEventList(ctx)
	if err != nil {
		h.logger.Warn("event cache read failed", "error", err)
	}
	if cached != nil {
		h.logger.Debug("serving events from cache")
		c.JSON(http.StatusOK, cached)
		return
	}

	events, err := h.repo.ListEvents(ctx)
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		detail(c, http.StatusInternalServerError, detailInternal)
		return
	}
	responses := model.ToEventResponses(events)

	if err := h.cache.SetEventList(ctx, responses, h.eventListTTL); err != nil {
		h.logger.Warn("failed to cache events", "error", err)
	}

	c.JSON(http.StatusOK, responses)
}

// CreateEvent adds an event with every seat available
func (h *Handler) CreateEvent(c *gin.Context) {
	var req model.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "body", err)
		return
	}

	event, err := h.repo.CreateEvent(c.Request.Context(), req.ToCreateEventRequest())
	if err != nil {
		h.logger.Error("failed to create event", "error", err)
		detail(c, http.StatusInternalServerError, detailInternal)
		return
	}
	h.invalidateEvents(c.Request.Context())

	c.JSON(http.StatusCreated, event.ToEventResponse())
}

// UpdateEvent replaces an event's fields
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "body", err)
		return
	}

	event, err := h.repo.UpdateEvent(c.Request.Context(), model.UpdateEventRequest{
		ID:                 id,
		CreateEventRequest: req.ToCreateEventRequest(),
	})
	switch {
	case errors.Is(err, repository.ErrEventNotFound):
		detail(c, http.StatusNotFound, "Event not found")
		return
	case errors.Is(err, repository.ErrSeatsBelowBooked):
		detail(c, http.StatusBadRequest, "Total seats cannot be less than seats already booked")
		return
	case err != nil:
		h.logger.Error("failed to update event", "event_id", id, "error", err)
		detail(c, http.StatusInternalServerError, detailInternal)
		return
	}
	h.invalidateEvents(c.Request.Context())

	c.JSON(http.StatusOK, event.ToEventResponse())
}

// DeleteEvent removes an event
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.repo.DeleteEvent(c.Request.Context(), id)
	switch {
	case errors.Is(err, repository.ErrEventNotFound):
		detail(c, http.StatusNotFound, "Event not found")
		return
	case err != nil:
		h.logger.Error("failed to delete event", "event_id", id, "error", err)
		detail(c, http.StatusInternalServerError, detailInternal)
		return
	}
	h.invalidateEvents(c.Request.Context())

	c.Status(http.StatusNoContent)
}

// CreateBooking reserves seats for the current user
func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "body", err)
		return
	}

	user := currentUser(c)
	booking, event, err := h.repo.CreateBooking(c.Request.Context(), req.ToCreateBookingRequest(user.ID))
	switch {
	case errors.Is(err, repository.ErrEventNotFound):
		detail(c, http.StatusNotFound, "Event not found")
		return
	case errors.Is(err, repository.ErrNotEnoughSeats):
		detail(c, http.StatusBadRequest, "Not enough seats available")
		return
	case err != nil:
		h.logger.Error("booking transaction failed", "event_id", req.EventID, "error", err)
		detail(c, http.StatusInternalServerError, detailInternal)
		return
	}
	h.invalidateEvents(c.Request.Context())

	h.logger.Info("booking confirmed", "user", user.Email, "event", event.Title, "booking_id", booking.ID)
	h.notify(c.Request.Context(), model.NewBookingNotification(model.NotificationBookingConfirmed, user, booking, event))

	c.JSON(http.StatusCreated, booking.ToBookingResponse())
}

// MyBookings lists the current user's bookings
func (h *Handler) MyBookings(c *gin.Context) {
	bookings, err := h.repo.ListUserBookings(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.logger.Error("failed to list bookings", "error", err)
		detail(c, http.StatusInternalServerError, detailInternal)
		return
	}
	c.JSON(http.StatusOK, model.ToBookingResponses(bookings))
}

// CancelBooking cancels one of the current user's bookings and returns its seats
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user := currentUser(c)
	booking, event, err := h.repo.CancelBooking(c.Request.Context(), id, user.ID)
	switch {
	case errors.Is(err, repository.ErrBookingNotFound):
		detail(c, http.StatusNotFound, "Booking not found")
		return
	case errors.Is(err, repository.ErrNotBookingOwner):
		detail(c, http.StatusForbidden, "Not authorized to cancel this booking")
		return
	case errors.Is(err, repository.ErrAlreadyCancelled):
		detail(c, http.StatusBadRequest, "Booking already cancelled")
		return
	case err != nil:
		h.logger.Error("failed to cancel booking", "booking_id", id, "error", err)
		detail(c, http.StatusInternalServerError, detailInternal)
		return
	}
	h.invalidateEvents(c.Request.Context())

	if event != nil {
		h.notify(c.Request.Context(), model.NewBookingNotification(model.NotificationBookingCancelled, user, booking, event))
	}

	c.Status(http.StatusNoContent)
}

// AllBookings lists every booking with its event and user (admin only)
func (h *Handler) AllBookings(c *gin.Context) {
	rows, err := h.repo.ListAllBookings(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list all bookings", "error", err)
		detail(c, http.StatusInternalServerError, detailInternal)
		return
	}
	c.JSON(http.StatusOK, model.ToAdminBookingResponses(rows))
}

// HealthCheck handles health check endpoint
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.repo.Ping(ctx); err != nil {
		detail(c, http.StatusServiceUnavailable, "Database ping failed")
		return
	}

	cacheStatus := "ok"
	if err := h.cache.Ping(ctx); err != nil {
		cacheStatus = "unavailable"
	}

	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "healthy",
		Service:   "api-service",
		Timestamp: time.Now(),
		Cache:     cacheStatus,
	})
}

func (h *Handler) invalidateEvents(ctx context.Context) {
	if err := h.cache.InvalidateEventList(ctx); err != nil {
		h.logger.Warn("failed to clear event cache", "error", err)
	}
}

func (h *Handler) notify(ctx context.Context, req model.NotificationRequest) {
	if err := h.publisher.Publish(ctx, req); err != nil {
		h.logger.Warn("failed to publish notification", "type", req.Type, "booking_id", req.BookingData.BookingID, "error", err)
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{Detail: []model.FieldError{{
			Loc:  []string{"path", name},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		}}})
		return 0, false
	}
	return id, true
}
