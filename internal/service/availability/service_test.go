package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	windowRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type memWindows struct {
	nextID  int64
	windows map[int64]*domain.AvailabilityWindow
	filter  domain.WindowsFilter
}

func newMemWindows() *memWindows {
	return &memWindows{windows: map[int64]*domain.AvailabilityWindow{}}
}

func (m *memWindows) Create(_ context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	m.nextID++
	w.ID = m.nextID
	m.windows[w.ID] = w
	return w, nil
}

func (m *memWindows) GetByID(_ context.Context, id int64) (*domain.AvailabilityWindow, error) {
	w, ok := m.windows[id]
	if !ok {
		return nil, windowRepo.ErrWindowNotFound
	}
	return w, nil
}

func (m *memWindows) List(_ context.Context, filter domain.WindowsFilter) ([]*domain.AvailabilityWindow, error) {
	m.filter = filter
	list := make([]*domain.AvailabilityWindow, 0, len(m.windows))
	for _, w := range m.windows {
		list = append(list, w)
	}
	return list, nil
}

func (m *memWindows) Delete(_ context.Context, id int64) error {
	if _, ok := m.windows[id]; !ok {
		return windowRepo.ErrWindowNotFound
	}
	delete(m.windows, id)
	return nil
}

type members map[int64]*domain.TeamMember

func (m members) GetTeamMember(_ context.Context, id int64) (*domain.TeamMember, error) {
	member, ok := m[id]
	if !ok {
		return nil, catalogRepo.ErrTeamMemberNotFound
	}
	return member, nil
}

func newTestService() (*Service, *memWindows) {
	repo := newMemWindows()
	team := members{1: {ID: 1, ShopID: 10, IsActive: true}}
	return NewService(repo, team, logger.Nop()), repo
}

func TestCreateWindow(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		ShopID:       10,
		TeamMemberID: 1,
		Date:         "2024-03-12",
		StartTime:    "09:00",
		EndTime:      "17:30:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "17:30", resp.EndTime)
	assert.True(t, resp.IsAvailable)
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), repo.windows[resp.ID].Date)
}

func TestCreateWindow_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateWindowRequest
		want error
	}{
		{
			name: "bad date",
			req:  models.CreateWindowRequest{ShopID: 10, TeamMemberID: 1, Date: "12.03.2024", StartTime: "09:00", EndTime: "10:00"},
			want: ErrInvalidInput,
		},
		{
			name: "empty range",
			req:  models.CreateWindowRequest{ShopID: 10, TeamMemberID: 1, Date: "2024-03-12", StartTime: "10:00", EndTime: "10:00"},
			want: ErrInvalidInput,
		},
		{
			name: "member of another shop",
			req:  models.CreateWindowRequest{ShopID: 11, TeamMemberID: 1, Date: "2024-03-12", StartTime: "09:00", EndTime: "10:00"},
			want: ErrTeamMemberNotFound,
		},
		{
			name: "unknown member",
			req:  models.CreateWindowRequest{ShopID: 10, TeamMemberID: 2, Date: "2024-03-12", StartTime: "09:00", EndTime: "10:00"},
			want: ErrTeamMemberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateWindow(ctx, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListWindows_BuildsFilter(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.ListWindows(context.Background(), &models.ListWindowsRequest{
		ShopID:       10,
		TeamMemberID: ptr.Ptr(int64(1)),
		StartDate:    "2024-03-01",
		EndDate:      "2024-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.filter.TeamMemberIDs)
	assert.Equal(t, int64(10), repo.filter.ShopID)

	_, err = svc.ListWindows(context.Background(), &models.ListWindowsRequest{
		ShopID: 10, StartDate: "2024-03-31", EndDate: "2024-03-01",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteWindow_OtherShop(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	w, err := repo.Create(ctx, &domain.AvailabilityWindow{ShopID: 10, TeamMemberID: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteWindow(ctx, 11, w.ID), ErrWindowNotFound)
	require.NoError(t, svc.DeleteWindow(ctx, 10, w.ID))
	assert.ErrorIs(t, svc.DeleteWindow(ctx, 10, w.ID), ErrWindowNotFound)
}
