package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arunvm123/bookingportal/web-client/config"
	"github.com/arunvm123/bookingportal/web-client/model"
	"github.com/arunvm123/bookingportal/web-client/service"
	"github.com/google/uuid"
)

// maxResponseSize bounds every response body read.
const maxResponseSize int64 = 8 << 20

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

type APIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewAPIClient(baseURL string, logger *slog.Logger) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewAPIClientWithConfig creates a new API client with connection pooling
func NewAPIClientWithConfig(cfg *config.API, logger *slog.Logger) *APIClient {
	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     time.Duration(cfg.IdleConnTimeout) * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &APIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: transport,
		},
	}
}

// Authenticate exchanges credentials for an access token
func (c *APIClient) Authenticate(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var tokenResp model.TokenResponse
	err := c.do(ctx, "authenticate", http.MethodPost, "/token", "",
		strings.NewReader(form.Encode()), contentTypeForm, &tokenResp)
	if err != nil {
		return "", err
	}
	return tokenResp.AccessToken, nil
}

// Signup registers a new user account
func (c *APIClient) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var user model.User
	if err := c.do(ctx, "signup", http.MethodPost, "/signup", "", bytes.NewReader(body), contentTypeJSON, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the identity behind a token
func (c *APIClient) Me(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, "identity", http.MethodGet, "/users/me", token, nil, "", &user); err != nil {
		return nil, err
	}
	if err := model.Check(&user); err != nil {
		return nil, malformed("identity", err)
	}
	return &user, nil
}

// ListEvents returns the whole event catalog
func (c *APIClient) ListEvents(ctx context.Context, token string) ([]model.Event, error) {
	var events []model.Event
	if err := c.do(ctx, "list events", http.MethodGet, "/events", token, nil, "", &events); err != nil {
		return nil, err
	}
	if err := model.CheckEach(events); err != nil {
		return nil, malformed("list events", err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// CreateEvent creates a new event (admin only)
func (c *APIClient) CreateEvent(ctx context.Context, token string, req model.CreateEventRequest) (*model.Event, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var event model.Event
	if err := c.do(ctx, "create event", http.MethodPost, "/events", token, bytes.NewReader(body), contentTypeJSON, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes an event (admin only)
func (c *APIClient) DeleteEvent(ctx context.Context, token string, eventID int64) error {
	path := fmt.Sprintf("/events/%d", eventID)
	return c.do(ctx, "delete event", http.MethodDelete, path, token, nil, "", nil)
}

// CreateBooking books seats for an event
func (c *APIClient) CreateBooking(ctx context.Context, token string, req model.CreateBookingRequest) (*model.Booking, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var booking model.Booking
	if err := c.do(ctx, "create booking", http.MethodPost, "/bookings", token, bytes.NewReader(body), contentTypeJSON, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// MyBookings returns the caller's bookings
func (c *APIClient) MyBookings(ctx context.Context, token string) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.do(ctx, "my bookings", http.MethodGet, "/bookings/my", token, nil, "", &bookings); err != nil {
		return nil, err
	}
	if err := model.CheckEach(bookings); err != nil {
		return nil, malformed("my bookings", err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}

// CancelBooking cancels one of the caller's bookings
func (c *APIClient) CancelBooking(ctx context.Context, token string, bookingID int64) error {
	path := fmt.Sprintf("/bookings/%d", bookingID)
	return c.do(ctx, "cancel booking", http.MethodDelete, path, token, nil, "", nil)
}

// AllBookings returns every user's bookings (admin only)
func (c *APIClient) AllBookings(ctx context.Context, token string) ([]model.AdminBooking, error) {
	var bookings []model.AdminBooking
	if err := c.do(ctx, "all bookings", http.MethodGet, "/admin/bookings", token, nil, "", &bookings); err != nil {
		return nil, err
	}
	if err := model.CheckEach(bookings); err != nil {
		return nil, malformed("all bookings", err)
	}
	if bookings == nil {
		bookings = []model.AdminBooking{}
	}
	return bookings, nil
}

// do issues a single request and decodes a success body into out (when non-nil).
func (c *APIClient) do(ctx context.Context, op, method, path, token string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "op", op, "method", method, "path", path, "request_id", requestID, "error", err)
		return &service.APIError{Op: op, Kind: service.KindNetwork, Err: fmt.Errorf("failed to make request: %w", err)}
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "request_id", requestID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return service.NewStatusError(op, resp.StatusCode, parseDetail(data))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &service.APIError{Op: op, Kind: service.KindNetwork, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &service.APIError{Op: op, Kind: service.KindServer, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func malformed(op string, err error) error {
	return &service.APIError{Op: op, Kind: service.KindServer, StatusCode: http.StatusOK, Err: err}
}

// parseDetail extracts a readable message from an error body. The detail
// field is either a plain string or a list of field errors with "msg" keys.
func parseDetail(data []byte) string {
	var envelope model.ErrorResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}

	switch detail := envelope.Detail.(type) {
	case string:
		return detail
	case []interface{}:
		var messages []string
		for _, item := range detail {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if msg, ok := entry["msg"].(string); ok && msg != "" {
				messages = append(messages, msg)
			}
		}
		return strings.Join(messages, "; ")
	default:
		return ""
	}
}
