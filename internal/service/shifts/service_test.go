package shifts

import (
	"bytes"
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	shiftRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shift"
	"github.com/m04kA/SMC-SalonBooking/internal/service/shifts/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type memShifts struct {
	nextID int64
	shifts map[int64]*domain.Shift
}

func newMemShifts() *memShifts {
	return &memShifts{shifts: map[int64]*domain.Shift{}}
}

func (m *memShifts) Create(_ context.Context, s *domain.Shift) (*domain.Shift, error) {
	for _, existing := range m.shifts {
		if existing.TeamMemberID == s.TeamMemberID && existing.IsActive() {
			return nil, shiftRepo.ErrActiveShiftExists
		}
	}
	m.nextID++
	s.ID = m.nextID
	m.shifts[s.ID] = s
	return s, nil
}

func (m *memShifts) GetByID(_ context.Context, id int64) (*domain.Shift, error) {
	s, ok := m.shifts[id]
	if !ok {
		return nil, shiftRepo.ErrShiftNotFound
	}
	return s, nil
}

func (m *memShifts) GetActiveByMember(_ context.Context, memberID int64) (*domain.Shift, error) {
	for _, s := range m.shifts {
		if s.TeamMemberID == memberID && s.IsActive() {
			return s, nil
		}
	}
	return nil, shiftRepo.ErrShiftNotFound
}

func (m *memShifts) Update(_ context.Context, s *domain.Shift) error {
	if _, ok := m.shifts[s.ID]; !ok {
		return shiftRepo.ErrShiftNotFound
	}
	m.shifts[s.ID] = s
	return nil
}

func (m *memShifts) MarkPaid(_ context.Context, ids []int64, at time.Time) (int64, error) {
	var n int64
	for _, id := range ids {
		s, ok := m.shifts[id]
		if !ok || s.Status != domain.ShiftCompleted {
			continue
		}
		s.Status = domain.ShiftPaid
		s.PaidAt = ptr.Ptr(at)
		n++
	}
	return n, nil
}

func (m *memShifts) List(_ context.Context, filter domain.ShiftsFilter) ([]*domain.Shift, error) {
	var out []*domain.Shift
	for _, s := range m.shifts {
		if s.Date.Before(filter.StartDate) || s.Date.After(filter.EndDate) {
			continue
		}
		for _, st := range filter.Statuses {
			if s.Status == st {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

type fakePayroll struct{}

func (fakePayroll) ListRates(context.Context) ([]*domain.HourlyRate, error) {
	return []*domain.HourlyRate{
		{DayType: domain.DayTypeWeekday, Rate: 20, IsActive: true},
		{DayType: domain.DayTypePublicHoliday, Rate: 40, IsActive: true},
	}, nil
}

func (fakePayroll) ListHolidays(context.Context, *time.Time, *time.Time, bool) ([]*domain.PublicHoliday, error) {
	return []*domain.PublicHoliday{
		{Date: time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), Name: "Праздник", IsActive: true},
	}, nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetShop(_ context.Context, id int64) (*domain.Shop, error) {
	if id != 1 {
		return nil, catalogRepo.ErrShopNotFound
	}
	return &domain.Shop{ID: 1, Timezone: "Australia/Sydney", IsActive: true}, nil
}

func (fakeCatalog) GetTeamMember(_ context.Context, id int64) (*domain.TeamMember, error) {
	if id > 10 {
		return nil, catalogRepo.ErrTeamMemberNotFound
	}
	return &domain.TeamMember{ID: id, ShopID: 1, Name: "Анна", IsActive: true}, nil
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func (passTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func (c *clock) advance(d time.Duration) { c.now = c.now.Add(d) }

// 2024-03-11 22:00 UTC = 2024-03-12 09:00 в Сиднее (вторник)
func newTestService() (*Service, *memShifts, *clock) {
	return newTestServiceWithLogger(logger.Nop())
}

func newTestServiceWithLogger(log Logger) (*Service, *memShifts, *clock) {
	repo := newMemShifts()
	c := &clock{now: time.Date(2024, 3, 11, 22, 0, 0, 0, time.UTC)}
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	return NewService(repo, fakePayroll{}, fakeCatalog{}, passTx{}, m, c, log), repo, c
}

func TestShiftLifecycle(t *testing.T) {
	svc, _, c := newTestService()
	ctx := context.Background()

	opened, err := svc.ClockIn(ctx, &models.ClockInRequest{TeamMemberID: 1, ShopID: 1})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", opened.Date)
	assert.Equal(t, "active", opened.Status)

	_, err = svc.ClockIn(ctx, &models.ClockInRequest{TeamMemberID: 1, ShopID: 1})
	assert.ErrorIs(t, err, ErrShiftAlreadyActive)

	c.advance(3 * time.Hour)
	_, err = svc.StartBreak(ctx, 1)
	require.NoError(t, err)

	_, err = svc.StartBreak(ctx, 1)
	assert.ErrorIs(t, err, ErrBreakAlreadyOpen)

	c.advance(30 * time.Minute)
	afterBreak, err := svc.EndBreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 30, afterBreak.TotalBreakMinutes)
	assert.True(t, afterBreak.Calculation.Live)

	_, err = svc.EndBreak(ctx, 1)
	assert.ErrorIs(t, err, ErrNoOpenBreak)

	c.advance(4*time.Hour + 30*time.Minute)
	closed, err := svc.ClockOut(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "completed", closed.Status)
	assert.False(t, closed.Calculation.Live)
	assert.Equal(t, 8.0, closed.Calculation.GrossHours)
	assert.Equal(t, 10, closed.Calculation.UnpaidBreakMinutes)
	assert.Equal(t, 7.83, closed.Calculation.NetHours)
	assert.Equal(t, "weekday", closed.Calculation.DayType)
	assert.Equal(t, 156.67, closed.Calculation.TotalPay)

	_, err = svc.ClockOut(ctx, 1)
	assert.ErrorIs(t, err, ErrNoActiveShift)
}

func TestClockOut_ClosesOpenBreak(t *testing.T) {
	svc, repo, c := newTestService()
	ctx := context.Background()

	opened, err := svc.ClockIn(ctx, &models.ClockInRequest{TeamMemberID: 2, ShopID: 1})
	require.NoError(t, err)

	c.advance(2 * time.Hour)
	_, err = svc.StartBreak(ctx, 2)
	require.NoError(t, err)

	c.advance(15 * time.Minute)
	closed, err := svc.ClockOut(ctx, 2)
	require.NoError(t, err)

	stored := repo.shifts[opened.ID]
	require.Len(t, stored.Breaks, 1)
	require.NotNil(t, stored.Breaks[0].End)
	assert.Equal(t, *stored.ShiftEnd, *stored.Breaks[0].End)
	assert.Equal(t, 15, closed.TotalBreakMinutes)
}

func TestClockIn_MemberOfAnotherShop(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ClockIn(context.Background(), &models.ClockInRequest{TeamMemberID: 1, ShopID: 2})
	assert.ErrorIs(t, err, ErrTeamMemberNotFound)

	_, err = svc.ClockIn(context.Background(), &models.ClockInRequest{TeamMemberID: 11, ShopID: 1})
	assert.ErrorIs(t, err, ErrTeamMemberNotFound)
}

func seedCompleted(repo *memShifts, memberID int64, date time.Time, hours int) *domain.Shift {
	start := date.Add(9 * time.Hour)
	s, _ := repo.Create(context.Background(), &domain.Shift{
		TeamMemberID: memberID,
		ShopID:       1,
		Date:         date,
		ShiftStart:   start,
		ShiftEnd:     ptr.Ptr(start.Add(time.Duration(hours) * time.Hour)),
		Status:       domain.ShiftCompleted,
	})
	return s
}

func TestMarkPaid_SkipsActiveAndPaid(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

	completed := seedCompleted(repo, 1, day, 4)
	paid := seedCompleted(repo, 2, day, 4)
	paid.Status = domain.ShiftPaid
	active, err := svc.ClockIn(ctx, &models.ClockInRequest{TeamMemberID: 3, ShopID: 1})
	require.NoError(t, err)

	result, err := svc.MarkPaid(ctx, &models.MarkPaidRequest{ShiftIDs: []int64{completed.ID, paid.ID, active.ID, completed.ID}})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, int64(1), result.Paid)
	assert.Equal(t, domain.ShiftPaid, repo.shifts[completed.ID].Status)
	assert.Equal(t, domain.ShiftActive, repo.shifts[active.ID].Status)

	_, err = svc.MarkPaid(ctx, &models.MarkPaidRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkPaid_CountsDuplicatesOnce(t *testing.T) {
	var out bytes.Buffer
	svc, repo, _ := newTestServiceWithLogger(logger.NewWithWriter(&out, "debug"))
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	completed := seedCompleted(repo, 1, day, 4)

	result, err := svc.MarkPaid(context.Background(), &models.MarkPaidRequest{ShiftIDs: []int64{completed.ID, completed.ID}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Requested)
	assert.Equal(t, int64(1), result.Paid)
	assert.NotContains(t, out.String(), "only 1 of 2")
}

func TestTimesheet_LogsUnknownMember(t *testing.T) {
	var out bytes.Buffer
	svc, repo, _ := newTestServiceWithLogger(logger.NewWithWriter(&out, "debug"))

	seedCompleted(repo, 11, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), 8)

	sheet, err := svc.Timesheet(context.Background(), &models.TimesheetRequest{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Empty(t, sheet.Rows[0].TeamMemberName)
	assert.Contains(t, out.String(), "failed to get member id=11")
}

func TestTimesheet_UsesHolidayRate(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	seedCompleted(repo, 1, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), 8)
	seedCompleted(repo, 1, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), 5)
	seedCompleted(repo, 2, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), 6)
	seedCompleted(repo, 2, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 6)

	sheet, err := svc.Timesheet(ctx, &models.TimesheetRequest{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)

	assert.Equal(t, int64(1), sheet.Rows[0].TeamMemberID)
	assert.Equal(t, 2, sheet.Rows[0].DaysWorked)
	assert.Equal(t, 13.0, sheet.Rows[0].NetHours)
	assert.Equal(t, 8*20.0+5*40.0, sheet.Rows[0].TotalPay)
	assert.Equal(t, 6*20.0, sheet.Rows[1].TotalPay)
	assert.Equal(t, 19.0, sheet.TotalNetHours)

	_, err = svc.Timesheet(ctx, &models.TimesheetRequest{StartDate: "2024-03-31", EndDate: "2024-03-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExportTimesheet_WritesWorkbook(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	seedCompleted(repo, 1, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), 8)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportTimesheet(ctx, &models.TimesheetRequest{StartDate: "2024-03-01", EndDate: "2024-03-31"}, &buf))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(timesheetSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, timesheetColumns, rows[2])
	assert.Equal(t, "Анна", rows[3][0])
	assert.Equal(t, "160", rows[3][5])
	assert.Equal(t, "Итого", rows[4][0])
}
