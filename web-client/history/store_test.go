package history

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/arunvm123/bookingportal/web-client/confirm"
	"github.com/arunvm123/bookingportal/web-client/model"
	"github.com/arunvm123/bookingportal/web-client/resource"
	"github.com/arunvm123/bookingportal/web-client/service"
	"github.com/arunvm123/bookingportal/web-client/service/mocks"
	"github.com/arunvm123/bookingportal/web-client/session"
	"github.com/arunvm123/bookingportal/web-client/session/sessiontest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type countingRefresher struct {
	mu    sync.Mutex
	calls int
}

func (c *countingRefresher) Refresh(context.Context) (resource.State[[]model.Event], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return resource.State[[]model.Event]{Status: resource.StatusReady}, nil
}

func (c *countingRefresher) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func bookings() []model.Booking {
	return []model.Booking{
		{ID: 5, EventID: 1, SeatsBooked: 2, Status: model.BookingStatusConfirmed},
		{ID: 6, EventID: 2, SeatsBooked: 1, Status: model.BookingStatusCancelled},
	}
}

func ids(list []model.Booking) []int64 {
	out := make([]int64, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}

func TestCancelConfirmedRefetchesAndRefreshesInventory(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("MyBookings", mock.Anything, "tok-1").Return(bookings(), nil).Once()
	api.On("CancelBooking", mock.Anything, "tok-1", int64(5)).Return(nil).Once()
	api.On("MyBookings", mock.Anything, "tok-1").Return(bookings()[1:], nil).Once()
	inv := &countingRefresher{}
	store := NewStore(api, sessiontest.NewSource("tok-1"), confirm.Always(true), inv, discardLogger())

	_, err := store.Fetch(context.Background())
	require.NoError(t, err)

	state, err := store.Cancel(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, model.SucceededOperation(MessageCancelled), state)
	assert.NotContains(t, ids(store.Snapshot().Data), int64(5))
	assert.Equal(t, 1, inv.Calls())
	api.AssertExpectations(t)
}

func TestDeclinedCancelMakesNoRequest(t *testing.T) {
	api := new(mocks.MockAPI)
	var prompt string
	gate := confirm.GateFunc(func(_ context.Context, p string) (bool, error) {
		prompt = p
		return false, nil
	})
	store := NewStore(api, sessiontest.NewSource("tok-1"), gate, &countingRefresher{}, discardLogger())

	_, err := store.Cancel(context.Background(), 5)
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Equal(t, confirm.PromptCancelBooking, prompt)
	api.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestAlreadyCancelledIsRejectedLocally(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("MyBookings", mock.Anything, "tok-1").Return(bookings(), nil).Once()
	store := NewStore(api, sessiontest.NewSource("tok-1"), confirm.Always(true), &countingRefresher{}, discardLogger())
	_, err := store.Fetch(context.Background())
	require.NoError(t, err)

	_, err = store.Cancel(context.Background(), 6)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	api.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelFailureLeavesSnapshotUntouched(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("MyBookings", mock.Anything, "tok-1").Return(bookings(), nil).Once()
	api.On("CancelBooking", mock.Anything, "tok-1", int64(5)).
		Return(service.NewStatusError("cancel booking", 403, "Not authorized to cancel this booking")).Once()
	inv := &countingRefresher{}
	store := NewStore(api, sessiontest.NewSource("tok-1"), confirm.Always(true), inv, discardLogger())
	_, err := store.Fetch(context.Background())
	require.NoError(t, err)

	state, err := store.Cancel(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, model.FailedOperation("Not authorized to cancel this booking"), state)
	assert.Equal(t, bookings(), store.Snapshot().Data)
	assert.Equal(t, 0, inv.Calls())
	api.AssertNumberOfCalls(t, "MyBookings", 1)
}

func TestCancelFailureWithoutDetailIsGeneric(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("CancelBooking", mock.Anything, "tok-1", int64(5)).
		Return(service.NewStatusError("cancel booking", 500, "")).Once()
	store := NewStore(api, sessiontest.NewSource("tok-1"), confirm.Always(true), &countingRefresher{}, discardLogger())

	state, _ := store.Cancel(context.Background(), 5)
	assert.Equal(t, model.FailedOperation(MessageCancelFailed), state)
	assert.Equal(t, state, store.CancelState(5))
}

func TestFetchErrorDoesNotTouchInventory(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("MyBookings", mock.Anything, "tok-1").Return(nil, service.NewStatusError("my bookings", 500, "")).Once()
	inv := &countingRefresher{}
	store := NewStore(api, sessiontest.NewSource("tok-1"), confirm.Always(true), inv, discardLogger())

	state, err := store.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, resource.StatusFailed, state.Status)
	assert.Equal(t, 0, inv.Calls())
}

func TestEmptyHistoryIsNotAnError(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("MyBookings", mock.Anything, "tok-1").Return([]model.Booking{}, nil).Once()
	store := NewStore(api, sessiontest.NewSource("tok-1"), confirm.Always(true), &countingRefresher{}, discardLogger())

	state, err := store.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, resource.StatusReady, state.Status)
	assert.Empty(t, state.Data)
}

func TestFetchWithoutSession(t *testing.T) {
	api := new(mocks.MockAPI)
	store := NewStore(api, sessiontest.NewSource(""), confirm.Always(true), &countingRefresher{}, discardLogger())

	_, err := store.Fetch(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)
	_, err = store.Cancel(context.Background(), 5)
	assert.ErrorIs(t, err, session.ErrNoSession)
	api.AssertExpectations(t)
}

func TestConcurrentCancelOfSameBooking(t *testing.T) {
	api := new(mocks.MockAPI)
	entered := make(chan struct{})
	release := make(chan struct{})
	api.On("CancelBooking", mock.Anything, "tok-1", int64(5)).Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return(nil).Once()
	api.On("MyBookings", mock.Anything, "tok-1").Return([]model.Booking{}, nil)
	store := NewStore(api, sessiontest.NewSource("tok-1"), confirm.Always(true), &countingRefresher{}, discardLogger())

	done := make(chan error, 1)
	go func() {
		_, err := store.Cancel(context.Background(), 5)
		done <- err
	}()
	<-entered

	_, err := store.Cancel(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInFlight)

	close(release)
	require.NoError(t, <-done)
	api.AssertNumberOfCalls(t, "CancelBooking", 1)
}

func TestUnauthorizedCancelInvalidatesSession(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("CancelBooking", mock.Anything, "tok-1", int64(5)).
		Return(service.NewStatusError("cancel booking", 401, "Could not validate credentials")).Once()
	source := sessiontest.NewSource("tok-1")
	store := NewStore(api, source, confirm.Always(true), &countingRefresher{}, discardLogger())

	_, err := store.Cancel(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, []string{"tok-1"}, source.Invalidated())
}
