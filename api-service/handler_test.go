package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/arunvm123/bookingportal/api-service/model"
	"github.com/arunvm123/bookingportal/api-service/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	alice = &model.User{ID: 1, Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Role: model.RoleUser}
	admin = &model.User{ID: 2, Name: "Admin", Email: "admin@admin.com", PasswordHash: "hash", Role: model.RoleAdmin}

	meetupDate = time.Date(2030, 5, 1, 18, 30, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServer struct {
	repo      *mockRepository
	cache     *mockCache
	publisher *mockPublisher
	jwt       *JWTService
	engine    *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		repo:      &mockRepository{},
		cache:     &mockCache{},
		publisher: &mockPublisher{},
		jwt:       NewJWTService("test-secret", 30*time.Minute),
	}
	handler := NewHandler(s.repo, s.cache, s.publisher, s.jwt, time.Minute, discardLogger())
	s.engine = NewEngine(handler, s.jwt, s.repo, discardLogger())
	return s
}

// login issues a token for user and lets the auth middleware resolve it.
func (s *testServer) login(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := s.jwt.GenerateToken(user.Email)
	require.NoError(t, err)
	s.repo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)
	return token
}

func (s *testServer) do(method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(method, path, token, body string) *httptest.ResponseRecorder {
	return s.do(method, path, token, "application/json", strings.NewReader(body))
}

func detailOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Detail
}

func fieldErrorsOf(t *testing.T, w *httptest.ResponseRecorder) []model.FieldError {
	t.Helper()
	var resp struct {
		Detail []model.FieldError `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Detail
}

func TestLoginIssuesToken(t *testing.T) {
	s := newTestServer(t)
	s.repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil)
	s.repo.On("ValidatePassword", alice, "secret").Return(true)

	form := url.Values{"username": {"alice@example.com"}, "password": {"secret"}}
	w := s.do(http.MethodPost, "/token", "", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := s.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil)
	s.repo.On("ValidatePassword", alice, "wrong").Return(false)
	s.repo.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	for _, username := range []string{"alice@example.com", "nobody@example.com"} {
		form := url.Values{"username": {username}, "password": {"wrong"}}
		w := s.do(http.MethodPost, "/token", "", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))

		assert.Equal(t, http.StatusUnauthorized, w.Code, username)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		assert.Equal(t, "Incorrect username or password", detailOf(t, w))
	}
}

func TestLoginMissingFieldIsValidationError(t *testing.T) {
	s := newTestServer(t)

	form := url.Values{"password": {"secret"}}
	w := s.do(http.MethodPost, "/token", "", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := fieldErrorsOf(t, w)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"body", "username"}, errs[0].Loc)
	assert.Equal(t, "field required", errs[0].Msg)
	s.repo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
}

func TestSignupCreatesRegularUser(t *testing.T) {
	s := newTestServer(t)
	s.repo.On("CreateUser", mock.Anything, model.CreateUserRequest{
		Name: "Bob", Email: "bob@example.com", Password: "pw", Role: model.RoleUser,
	}).Return(&model.User{ID: 5, Name: "Bob", Email: "bob@example.com", Role: model.RoleUser}, nil)

	w := s.doJSON(http.MethodPost, "/signup", "", `{"name":"Bob","email":"bob@example.com","password":"pw"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp model.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.UserResponse{ID: 5, Name: "Bob", Email: "bob@example.com", Role: model.RoleUser}, resp)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestSignupDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	s.repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil, repository.ErrEmailTaken)

	w := s.doJSON(http.MethodPost, "/signup", "", `{"name":"Alice","email":"alice@example.com","password":"pw"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", detailOf(t, w))
}

func TestSignupInvalidEmail(t *testing.T) {
	s := newTestServer(t)

	w := s.doJSON(http.MethodPost, "/signup", "", `{"name":"Bob","email":"not-an-email","password":"pw"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := fieldErrorsOf(t, w)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"body", "email"}, errs[0].Loc)
	assert.Equal(t, "value is not a valid email address", errs[0].Msg)
	s.repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestMeReturnsCurrentUser(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, admin)

	w := s.doJSON(http.MethodGet, "/users/me", token, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.RoleAdmin, resp.Role)
	assert.Equal(t, "admin@admin.com", resp.Email)
}

func TestAuthFailures(t *testing.T) {
	s := newTestServer(t)
	orphan, err := s.jwt.GenerateToken("deleted@example.com")
	require.NoError(t, err)
	s.repo.On("GetUserByEmail", mock.Anything, "deleted@example.com").Return(nil, repository.ErrUserNotFound)

	tests := []struct {
		name   string
		header string
		detail string
	}{
		{"missing header", "", "Not authenticated"},
		{"wrong scheme", "Basic abc", "Not authenticated"},
		{"garbage token", "Bearer not-a-jwt", "Could not validate credentials"},
		{"unknown subject", "Bearer " + orphan, "Could not validate credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			s.engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.detail, detailOf(t, w))
		})
	}
}

func TestListEventsServesCachedCopy(t *testing.T) {
	s := newTestServer(t)
	cached := []model.EventResponse{{ID: 1, Title: "Go Meetup", Location: "Hall A", Date: meetupDate, TotalSeats: 50, AvailableSeats: 12}}
	s.cache.On("GetEventList", mock.Anything).Return(cached, nil)

	w := s.doJSON(http.MethodGet, "/events", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp []model.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, cached, resp)
	s.repo.AssertNotCalled(t, "ListEvents", mock.Anything)
}

func TestListEventsFillsCacheOnMiss(t *testing.T) {
	s := newTestServer(t)
	events := []model.Event{{ID: 1, Title: "Go Meetup", Location: "Hall A", Date: meetupDate, TotalSeats: 50, AvailableSeats: 50}}
	s.cache.On("GetEventList", mock.Anything).Return(nil, nil)
	s.repo.On("ListEvents", mock.Anything).Return(events, nil)
	s.cache.On("SetEventList", mock.Anything, model.ToEventResponses(events), time.Minute).Return(nil)

	w := s.doJSON(http.MethodGet, "/events", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available_seats":50`)
	s.cache.AssertExpectations(t)
}

func TestListEventsSurvivesCacheFailures(t *testing.T) {
	s := newTestServer(t)
	s.cache.On("GetEventList", mock.Anything).Return(nil, errors.New("connection refused"))
	s.repo.On("ListEvents", mock.Anything).Return([]model.Event{}, nil)
	s.cache.On("SetEventList", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	w := s.doJSON(http.MethodGet, "/events", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateBookingReservesSeats(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, alice)
	booking := &model.Booking{ID: 7, UserID: 1, EventID: 3, SeatsBooked: 2, Status: model.BookingStatusConfirmed}
	event := &model.Event{ID: 3, Title: "Go Meetup", Location: "Hall A", Date: meetupDate, TotalSeats: 50, AvailableSeats: 10}

	s.repo.On("CreateBooking", mock.Anything, model.CreateBookingRequest{UserID: 1, EventID: 3, SeatsBooked: 2}).Return(booking, event, nil)
	s.cache.On("InvalidateEventList", mock.Anything).Return(nil).Once()
	s.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(req model.NotificationRequest) bool {
		return req.Type == model.NotificationBookingConfirmed &&
			req.RecipientEmail == "alice@example.com" &&
			req.BookingData.BookingID == 7 &&
			req.BookingData.EventTitle == "Go Meetup"
	})).Return(nil).Once()

	w := s.doJSON(http.MethodPost, "/bookings", token, `{"event_id":3,"seats_booked":2}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp model.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, booking.ToBookingResponse(), resp)
	s.cache.AssertExpectations(t)
	s.publisher.AssertExpectations(t)
}

func TestCreateBookingFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"not enough seats", repository.ErrNotEnoughSeats, http.StatusBadRequest, "Not enough seats available"},
		{"event missing", repository.ErrEventNotFound, http.StatusNotFound, "Event not found"},
		{"database down", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			token := s.login(t, alice)
			s.repo.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, nil, tt.err)

			w := s.doJSON(http.MethodPost, "/bookings", token, `{"event_id":3,"seats_booked":60}`)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.detail, detailOf(t, w))
			s.cache.AssertNotCalled(t, "InvalidateEventList", mock.Anything)
			s.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateBookingRejectsNonPositiveSeats(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, alice)

	w := s.doJSON(http.MethodPost, "/bookings", token, `{"event_id":3,"seats_booked":-2}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := fieldErrorsOf(t, w)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"body", "seats_booked"}, errs[0].Loc)
	s.repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBookingSucceedsWhenPublishFails(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, alice)
	booking := &model.Booking{ID: 7, UserID: 1, EventID: 3, SeatsBooked: 1, Status: model.BookingStatusConfirmed}
	event := &model.Event{ID: 3, Title: "Go Meetup", Date: meetupDate, TotalSeats: 5, AvailableSeats: 4}

	s.repo.On("CreateBooking", mock.Anything, mock.Anything).Return(booking, event, nil)
	s.cache.On("InvalidateEventList", mock.Anything).Return(errors.New("redis down"))
	s.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	w := s.doJSON(http.MethodPost, "/bookings", token, `{"event_id":3,"seats_booked":1}`)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMyBookingsListsOwnBookings(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, alice)
	s.repo.On("ListUserBookings", mock.Anything, int64(1)).Return([]model.Booking{
		{ID: 1, UserID: 1, EventID: 3, SeatsBooked: 2, Status: model.BookingStatusConfirmed},
		{ID: 2, UserID: 1, EventID: 4, SeatsBooked: 1, Status: model.BookingStatusCancelled},
	}, nil)

	w := s.doJSON(http.MethodGet, "/bookings/my", token, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp []model.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, model.BookingStatusCancelled, resp[1].Status)
}

func TestMyBookingsEmptyIsArray(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, alice)
	s.repo.On("ListUserBookings", mock.Anything, int64(1)).Return(nil, nil)

	w := s.doJSON(http.MethodGet, "/bookings/my", token, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCancelBookingReturnsSeats(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, alice)
	booking := &model.Booking{ID: 7, UserID: 1, EventID: 3, SeatsBooked: 2, Status: model.BookingStatusCancelled}
	event := &model.Event{ID: 3, Title: "Go Meetup", Date: meetupDate, TotalSeats: 50, AvailableSeats: 12}

	s.repo.On("CancelBooking", mock.Anything, int64(7), int64(1)).Return(booking, event, nil)
	s.cache.On("InvalidateEventList", mock.Anything).Return(nil).Once()
	s.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(req model.NotificationRequest) bool {
		return req.Type == model.NotificationBookingCancelled && req.BookingData.BookingID == 7
	})).Return(nil).Once()

	w := s.doJSON(http.MethodDelete, "/bookings/7", token, "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	s.cache.AssertExpectations(t)
	s.publisher.AssertExpectations(t)
}

func TestCancelBookingOfDeletedEventSkipsNotification(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, alice)
	booking := &model.Booking{ID: 7, UserID: 1, EventID: 3, SeatsBooked: 2, Status: model.BookingStatusCancelled}

	s.repo.On("CancelBooking", mock.Anything, int64(7), int64(1)).Return(booking, nil, nil)
	s.cache.On("InvalidateEventList", mock.Anything).Return(nil)

	w := s.doJSON(http.MethodDelete, "/bookings/7", token, "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	s.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCancelBookingFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"missing", repository.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
		{"someone else's", repository.ErrNotBookingOwner, http.StatusForbidden, "Not authorized to cancel this booking"},
		{"already cancelled", repository.ErrAlreadyCancelled, http.StatusBadRequest, "Booking already cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			token := s.login(t, alice)
			s.repo.On("CancelBooking", mock.Anything, int64(7), int64(1)).Return(nil, nil, tt.err)

			w := s.doJSON(http.MethodDelete, "/bookings/7", token, "")

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.detail, detailOf(t, w))
			s.cache.AssertNotCalled(t, "InvalidateEventList", mock.Anything)
		})
	}
}

func TestCancelBookingRejectsNonNumericID(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, alice)

	w := s.doJSON(http.MethodDelete, "/bookings/abc", token, "")

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := fieldErrorsOf(t, w)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"path", "id"}, errs[0].Loc)
}

func TestAdminEndpointsRejectRegularUsers(t *testing.T) {
	tests := []struct {
		method string
		path   string
		body   string
		detail string
	}{
		{http.MethodPost, "/events", `{"title":"X","location":"Y","date":"2030-05-01T18:30:00Z","total_seats":5}`, "Not authorized to create events"},
		{http.MethodPut, "/events/3", `{"title":"X","location":"Y","date":"2030-05-01T18:30:00Z","total_seats":5}`, "Not authorized to update events"},
		{http.MethodDelete, "/events/3", "", "Not authorized to delete events"},
		{http.MethodGet, "/admin/bookings", "", "Not authorized"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			s := newTestServer(t)
			token := s.login(t, alice)

			w := s.doJSON(tt.method, tt.path, token, tt.body)

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, tt.detail, detailOf(t, w))
		})
	}
}

func TestCreateEventByAdmin(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, admin)
	s.repo.On("CreateEvent", mock.Anything, mock.MatchedBy(func(req model.CreateEventRequest) bool {
		return req.Title == "Go Meetup" && req.TotalSeats == 50 && req.Date.Equal(meetupDate)
	})).Return(&model.Event{ID: 9, Title: "Go Meetup", Location: "Hall A", Date: meetupDate, TotalSeats: 50, AvailableSeats: 50}, nil)
	s.cache.On("InvalidateEventList", mock.Anything).Return(nil).Once()

	w := s.doJSON(http.MethodPost, "/events", token,
		`{"title":"Go Meetup","location":"Hall A","date":"2030-05-01T20:30:00+02:00","total_seats":50}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp model.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, 50, resp.AvailableSeats)
	s.cache.AssertExpectations(t)
}

func TestCreateEventRejectsZeroSeats(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, admin)

	w := s.doJSON(http.MethodPost, "/events", token,
		`{"title":"Go Meetup","location":"Hall A","date":"2030-05-01T18:30:00Z","total_seats":0}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := fieldErrorsOf(t, w)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"body", "total_seats"}, errs[0].Loc)
	s.repo.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestUpdateEventBelowBookedSeats(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, admin)
	s.repo.On("UpdateEvent", mock.Anything, mock.MatchedBy(func(req model.UpdateEventRequest) bool {
		return req.ID == 3 && req.TotalSeats == 1
	})).Return(nil, repository.ErrSeatsBelowBooked)

	w := s.doJSON(http.MethodPut, "/events/3", token,
		`{"title":"Go Meetup","location":"Hall A","date":"2030-05-01T18:30:00Z","total_seats":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Total seats cannot be less than seats already booked", detailOf(t, w))
}

func TestDeleteEvent(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, admin)
	s.repo.On("DeleteEvent", mock.Anything, int64(3)).Return(nil)
	s.repo.On("DeleteEvent", mock.Anything, int64(4)).Return(repository.ErrEventNotFound)
	s.cache.On("InvalidateEventList", mock.Anything).Return(nil).Once()

	w := s.doJSON(http.MethodDelete, "/events/3", token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.doJSON(http.MethodDelete, "/events/4", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Event not found", detailOf(t, w))

	s.cache.AssertExpectations(t)
}

func TestAllBookingsForAdmin(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, admin)
	s.repo.On("ListAllBookings", mock.Anything).Return([]model.AdminBookingRow{{
		ID: 1, EventID: 3, EventTitle: "Go Meetup", UserID: 1, UserName: "Alice",
		UserEmail: "alice@example.com", SeatsBooked: 2, Status: model.BookingStatusConfirmed,
	}}, nil)

	w := s.doJSON(http.MethodGet, "/admin/bookings", token, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp []model.AdminBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Go Meetup", resp[0].EventTitle)
	assert.Equal(t, "alice@example.com", resp[0].UserEmail)
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	s.repo.On("Ping", mock.Anything).Return(nil)
	s.cache.On("Ping", mock.Anything).Return(errors.New("redis down"))

	w := s.doJSON(http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "unavailable", resp.Cache)
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	s := newTestServer(t)
	s.repo.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	w := s.doJSON(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSignupMalformedBody(t *testing.T) {
	s := newTestServer(t)

	w := s.doJSON(http.MethodPost, "/signup", "", `{"name":`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := fieldErrorsOf(t, w)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"body"}, errs[0].Loc)
	assert.Equal(t, "value_error", errs[0].Type)
}
