package get_available_slots

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	shopID    = int64(1)
	serviceID = int64(5)
	anna      = int64(10)
	boris     = int64(11)
)

var day = time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

type fakeCatalog struct {
	offers map[int64]bool
}

func (f *fakeCatalog) GetShop(_ context.Context, id int64) (*domain.Shop, error) {
	if id != shopID {
		return nil, catalogRepo.ErrShopNotFound
	}
	return &domain.Shop{ID: id, Timezone: "Europe/London", IsActive: true}, nil
}

func (f *fakeCatalog) GetService(_ context.Context, shop, id int64) (*domain.Service, error) {
	if id != serviceID {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &domain.Service{ID: id, ShopID: shop, DurationMinutes: 60, IsActive: true}, nil
}

func (f *fakeCatalog) GetTeamMember(_ context.Context, id int64) (*domain.TeamMember, error) {
	if _, ok := f.offers[id]; !ok {
		return nil, catalogRepo.ErrTeamMemberNotFound
	}
	return &domain.TeamMember{ID: id, ShopID: shopID, IsActive: true}, nil
}

func (f *fakeCatalog) ListMembersForService(_ context.Context, _, _ int64) ([]*domain.TeamMember, error) {
	var out []*domain.TeamMember
	for _, id := range []int64{anna, boris} {
		if f.offers[id] {
			out = append(out, &domain.TeamMember{ID: id, ShopID: shopID, IsActive: true})
		}
	}
	return out, nil
}

func (f *fakeCatalog) MemberOffersService(_ context.Context, id, _ int64) (bool, error) {
	return f.offers[id], nil
}

type fakeWindows struct {
	windows []*domain.AvailabilityWindow
}

func (f *fakeWindows) List(_ context.Context, filter domain.WindowsFilter) ([]*domain.AvailabilityWindow, error) {
	var out []*domain.AvailabilityWindow
	for _, w := range f.windows {
		for _, id := range filter.TeamMemberIDs {
			if w.TeamMemberID == id {
				out = append(out, w)
			}
		}
	}
	return out, nil
}

type fakeBookings struct {
	bookings []*domain.Booking
}

func (f *fakeBookings) GetBlockingForDate(_ context.Context, _ int64, _ []int64, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeReservations struct {
	holds      []*domain.TemporaryReservation
	askedFor   string
	calledWith time.Time
}

func (f *fakeReservations) Blocking(_ context.Context, _ int64, date time.Time, sessionID string) ([]*domain.TemporaryReservation, error) {
	f.askedFor = sessionID
	f.calledWith = date
	return f.holds, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func window(member int64, start, end string) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		TeamMemberID: member,
		ShopID:       shopID,
		Date:         day,
		StartTime:    types.MustTimeString(start),
		EndTime:      types.MustTimeString(end),
		IsAvailable:  true,
	}
}

type fixture struct {
	uc           *UseCase
	windows      *fakeWindows
	bookings     *fakeBookings
	reservations *fakeReservations
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		windows:      &fakeWindows{},
		bookings:     &fakeBookings{},
		reservations: &fakeReservations{},
	}
	catalog := &fakeCatalog{offers: map[int64]bool{anna: true, boris: true}}
	f.uc = NewUseCase(catalog, f.windows, f.bookings, f.reservations, fixedClock{now: now}, logger.Nop(), 30)
	return f
}

func starts(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestExecute_SingleMemberExcludesBookingsAndHolds(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC))
	f.windows.windows = []*domain.AvailabilityWindow{window(anna, "09:00", "13:00")}
	f.bookings.bookings = []*domain.Booking{{
		ID:              1,
		TeamMemberID:    anna,
		BookingDate:     day,
		StartTime:       types.MustTimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}
	f.reservations.holds = []*domain.TemporaryReservation{{
		SessionID:    "other",
		TeamMemberID: anna,
		Date:         day,
		StartTime:    types.MustTimeString("12:00"),
		EndTime:      types.MustTimeString("13:00"),
		ExpiresAt:    time.Date(2024, 3, 12, 23, 0, 0, 0, time.UTC),
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{
		SessionID:    "mine",
		ShopID:       shopID,
		ServiceID:    serviceID,
		TeamMemberID: ptr.Ptr(anna),
		Date:         day,
	})
	require.NoError(t, err)

	assert.Equal(t, "mine", f.reservations.askedFor)
	assert.Equal(t, []string{"09:00", "11:00"}, starts(resp.Slots))
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[1].EndTime)
}

func TestExecute_AnyMemberOneSlotPerTime(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC))
	f.windows.windows = []*domain.AvailabilityWindow{
		window(anna, "09:00", "11:00"),
		window(boris, "10:00", "12:00"),
	}

	resp, err := f.uc.Execute(context.Background(), &Request{ShopID: shopID, ServiceID: serviceID, Date: day})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, starts(resp.Slots))
	assert.Equal(t, anna, resp.Slots[2].TeamMemberID)
	assert.Equal(t, boris, resp.Slots[4].TeamMemberID)
}

func TestExecute_TodayDropsStartedSlots(t *testing.T) {
	// 09:40 UTC = 09:40 GMT в Лондоне в марте до перехода на летнее время
	f := newFixture(time.Date(2024, 3, 12, 9, 40, 0, 0, time.UTC))
	f.windows.windows = []*domain.AvailabilityWindow{window(anna, "09:00", "12:00")}

	resp, err := f.uc.Execute(context.Background(), &Request{
		ShopID: shopID, ServiceID: serviceID, TeamMemberID: ptr.Ptr(anna), Date: day,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, starts(resp.Slots))
}

func TestExecute_PastDateIsEmpty(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC))
	f.windows.windows = []*domain.AvailabilityWindow{window(anna, "09:00", "12:00")}

	resp, err := f.uc.Execute(context.Background(), &Request{ShopID: shopID, ServiceID: serviceID, Date: day})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{ShopID: 2, ServiceID: serviceID, Date: day})
	assert.ErrorIs(t, err, ErrShopNotFound)

	_, err = f.uc.Execute(ctx, &Request{ShopID: shopID, ServiceID: 6, Date: day})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.uc.Execute(ctx, &Request{ShopID: shopID, ServiceID: serviceID, TeamMemberID: ptr.Ptr(int64(99)), Date: day})
	assert.ErrorIs(t, err, ErrTeamMemberNotFound)

	_, err = f.uc.Execute(ctx, &Request{ShopID: shopID, ServiceID: serviceID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
