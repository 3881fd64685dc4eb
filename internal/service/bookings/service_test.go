package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookings) GetDetails(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetails), args.Error(1)
}

func (m *mockBookings) ListByClient(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.BookingDetails, error) {
	args := m.Called(ctx, clientID, status)
	return args.Get(0).([]*domain.BookingDetails), args.Error(1)
}

func (m *mockBookings) ListByShop(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.BookingDetails, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.BookingDetails), args.Error(1)
}

func (m *mockBookings) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

func (m *mockBookings) Cancel(ctx context.Context, id int64, reason *string, at time.Time) error {
	return m.Called(ctx, id, reason, at).Error(0)
}

type mockClients struct {
	mock.Mock
}

func (m *mockClients) GetClientByUserID(ctx context.Context, userID string) (*domain.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	now    = time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC)
	admin  = domain.Caller{UserID: "admin-1", Role: domain.RoleAdmin}
	client = domain.Caller{UserID: "user-7", Role: domain.RoleClient}
)

func newTestService() (*Service, *mockBookings, *mockClients) {
	b := &mockBookings{}
	c := &mockClients{}
	return NewService(b, c, passTx{}, fixedClock{now: now}, logger.Nop()), b, c
}

func confirmedBooking(clientID int64) *domain.Booking {
	return &domain.Booking{
		ID:              10,
		BookingNumber:   "BK-1A2B3C4D",
		ShopID:          1,
		TeamMemberID:    2,
		ServiceID:       3,
		ClientID:        clientID,
		BookingDate:     time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString("10:00"),
		EndTime:         types.MustTimeString("10:45"),
		StartsAt:        time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC),
		EndsAt:          time.Date(2024, 3, 14, 10, 45, 0, 0, time.UTC),
		DurationMinutes: 45,
		Price:           55,
		Status:          domain.StatusConfirmed,
	}
}

func TestGetByID_OwnerSeesBooking(t *testing.T) {
	svc, b, c := newTestService()
	ctx := context.Background()

	b.On("GetDetails", ctx, int64(10)).Return(&domain.BookingDetails{Booking: *confirmedBooking(5), ShopName: "Central"}, nil)
	c.On("GetClientByUserID", ctx, "user-7").Return(&domain.Client{ID: 5, UserID: "user-7"}, nil)

	resp, err := svc.GetByID(ctx, 10, client)
	require.NoError(t, err)
	assert.Equal(t, "BK-1A2B3C4D", resp.BookingNumber)
	assert.Equal(t, "Central", resp.ShopName)
	assert.Equal(t, "2024-03-14", resp.BookingDate)
	assert.Equal(t, "10:45", resp.EndTime)
}

func TestGetByID_OtherClientDenied(t *testing.T) {
	svc, b, c := newTestService()
	ctx := context.Background()

	b.On("GetDetails", ctx, int64(10)).Return(&domain.BookingDetails{Booking: *confirmedBooking(5)}, nil)
	c.On("GetClientByUserID", ctx, "user-7").Return(&domain.Client{ID: 6}, nil)

	_, err := svc.GetByID(ctx, 10, client)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_AdminSkipsOwnership(t *testing.T) {
	svc, b, c := newTestService()
	ctx := context.Background()

	b.On("GetDetails", ctx, int64(10)).Return(&domain.BookingDetails{Booking: *confirmedBooking(5)}, nil)

	_, err := svc.GetByID(ctx, 10, admin)
	require.NoError(t, err)
	c.AssertNotCalled(t, "GetClientByUserID", mock.Anything, mock.Anything)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, b, _ := newTestService()
	ctx := context.Background()

	b.On("GetDetails", ctx, int64(10)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := svc.GetByID(ctx, 10, admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetClientBookings_InvalidStatus(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		Caller: client,
		Status: ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetClientBookings_UnknownClient(t *testing.T) {
	svc, _, c := newTestService()
	ctx := context.Background()

	c.On("GetClientByUserID", ctx, "user-7").Return(nil, catalogRepo.ErrClientNotFound)

	_, err := svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{Caller: client})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestGetShopBookings_RequiresAdmin(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetShopBookings(context.Background(), &models.GetShopBookingsRequest{Caller: client, ShopID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetShopBookings_PassesFilter(t *testing.T) {
	svc, b, _ := newTestService()
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	expected := domain.ShopBookingsFilter{
		ShopID:    1,
		StartDate: &start,
		EndDate:   &end,
		Status:    ptr.Ptr(domain.StatusCompleted),
	}
	b.On("ListByShop", ctx, expected).Return([]*domain.BookingDetails{{Booking: *confirmedBooking(5)}}, nil)

	resp, err := svc.GetShopBookings(ctx, &models.GetShopBookingsRequest{
		Caller:    admin,
		ShopID:    1,
		StartDate: &start,
		EndDate:   &end,
		Status:    ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestCancel_OwnerCancelsConfirmed(t *testing.T) {
	svc, b, c := newTestService()
	ctx := context.Background()
	reason := "заболел"

	b.On("GetByID", ctx, int64(10)).Return(confirmedBooking(5), nil)
	c.On("GetClientByUserID", ctx, "user-7").Return(&domain.Client{ID: 5}, nil)
	b.On("Cancel", ctx, int64(10), &reason, now).Return(nil)

	err := svc.Cancel(ctx, 10, &models.CancelBookingRequest{Caller: client, CancellationReason: &reason})
	require.NoError(t, err)
	b.AssertExpectations(t)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc, b, _ := newTestService()
	ctx := context.Background()

	booking := confirmedBooking(5)
	booking.Status = domain.StatusCancelled
	b.On("GetByID", ctx, int64(10)).Return(booking, nil)

	err := svc.Cancel(ctx, 10, &models.CancelBookingRequest{Caller: admin})
	assert.ErrorIs(t, err, ErrCannotCancel)
	b.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_CompletesConfirmed(t *testing.T) {
	svc, b, _ := newTestService()
	ctx := context.Background()

	b.On("GetByID", ctx, int64(10)).Return(confirmedBooking(5), nil)
	b.On("UpdateStatus", ctx, int64(10), domain.StatusCompleted, now).Return(nil)

	require.NoError(t, svc.UpdateStatus(ctx, 10, &models.UpdateStatusRequest{Caller: admin, Status: "completed"}))
	b.AssertExpectations(t)
}

func TestUpdateStatus_TerminalStatusRejected(t *testing.T) {
	svc, b, _ := newTestService()
	ctx := context.Background()

	booking := confirmedBooking(5)
	booking.Status = domain.StatusNoShow
	b.On("GetByID", ctx, int64(10)).Return(booking, nil)

	err := svc.UpdateStatus(ctx, 10, &models.UpdateStatusRequest{Caller: admin, Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_ClientForbidden(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{Caller: client, Status: "no_show"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
