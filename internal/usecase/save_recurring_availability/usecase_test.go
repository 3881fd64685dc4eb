package save_recurring_availability

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/recurrence"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	shopID   = int64(1)
	memberID = int64(10)
)

// memoryWindows хранит окна и применяет изменения только при успешной транзакции
type memoryWindows struct {
	rows      []*domain.AvailabilityWindow
	insertErr error
}

func (m *memoryWindows) DeleteRange(_ context.Context, member, shop int64, start, end time.Time) (int64, error) {
	var kept []*domain.AvailabilityWindow
	var deleted int64
	for _, w := range m.rows {
		if w.TeamMemberID == member && w.ShopID == shop && !w.Date.Before(start) && !w.Date.After(end) {
			deleted++
			continue
		}
		kept = append(kept, w)
	}
	m.rows = kept
	return deleted, nil
}

func (m *memoryWindows) CreateBatch(_ context.Context, windows []*domain.AvailabilityWindow) (int64, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.rows = append(m.rows, windows...)
	return int64(len(windows)), nil
}

func (m *memoryWindows) dump() []string {
	out := make([]string, 0, len(m.rows))
	for _, w := range m.rows {
		out = append(out, w.Date.Format(types.DateLayout)+" "+w.StartTime.String()+"-"+w.EndTime.String())
	}
	sort.Strings(out)
	return out
}

// snapshotTx откатывает окна, если функция вернула ошибку
type snapshotTx struct {
	windows *memoryWindows
}

func (s snapshotTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	before := append([]*domain.AvailabilityWindow(nil), s.windows.rows...)
	if err := fn(ctx); err != nil {
		s.windows.rows = before
		return err
	}
	return nil
}

type fakeMembers struct{}

func (fakeMembers) GetTeamMember(_ context.Context, id int64) (*domain.TeamMember, error) {
	if id != memberID {
		return nil, catalogRepo.ErrTeamMemberNotFound
	}
	return &domain.TeamMember{ID: id, ShopID: shopID, IsActive: true}, nil
}

func date(s string) time.Time {
	d, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mondayMorning() recurrence.WeekTemplate {
	var w recurrence.WeekTemplate
	w[time.Monday] = []recurrence.SlotTemplate{{Start: "09:00", End: "12:00"}}
	return w
}

func newUseCase(windows *memoryWindows) *UseCase {
	return NewUseCase(windows, fakeMembers{}, snapshotTx{windows: windows}, logger.Nop())
}

func TestExecute_ResaveIsIdempotent(t *testing.T) {
	windows := &memoryWindows{rows: []*domain.AvailabilityWindow{
		// вне периода, должно остаться
		{TeamMemberID: memberID, ShopID: shopID, Date: date("2024-01-22"), StartTime: "10:00", EndTime: "11:00"},
		// другой мастер
		{TeamMemberID: 11, ShopID: shopID, Date: date("2024-01-08"), StartTime: "10:00", EndTime: "11:00"},
	}}
	uc := newUseCase(windows)

	req := &Request{
		ShopID:       shopID,
		TeamMemberID: memberID,
		StartDate:    date("2024-01-01"),
		EndDate:      ptr.Ptr(date("2024-01-15")),
		Cadence:      "everyWeek",
		Week:         mondayMorning(),
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.Created)
	assert.Equal(t, int64(0), first.Deleted)
	afterFirst := windows.dump()

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(3), second.Deleted)
	assert.Equal(t, int64(3), second.Created)
	assert.Equal(t, afterFirst, windows.dump())

	assert.Equal(t, []string{
		"2024-01-01 09:00-12:00",
		"2024-01-08 09:00-12:00",
		"2024-01-08 10:00-11:00",
		"2024-01-15 09:00-12:00",
		"2024-01-22 10:00-11:00",
	}, windows.dump())
}

func TestExecute_DefaultEndIsTwelveWeeks(t *testing.T) {
	windows := &memoryWindows{}
	uc := newUseCase(windows)

	resp, err := uc.Execute(context.Background(), &Request{
		ShopID:       shopID,
		TeamMemberID: memberID,
		StartDate:    date("2024-01-01"),
		Cadence:      "everyTwoWeeks",
		Week:         mondayMorning(),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-25", resp.EndDate.Format(types.DateLayout))
	// 01-01 .. 03-25 через две недели: 7 дат
	assert.Equal(t, int64(7), resp.Created)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "no enabled days", mutate: func(r *Request) { r.Week = recurrence.WeekTemplate{} }, wantErr: ErrNothingToSave},
		{name: "unknown cadence", mutate: func(r *Request) { r.Cadence = "daily" }, wantErr: ErrInvalidInput},
		{name: "end before start", mutate: func(r *Request) { r.EndDate = ptr.Ptr(date("2023-12-01")) }, wantErr: ErrInvalidInput},
		{name: "period too long", mutate: func(r *Request) { r.EndDate = ptr.Ptr(date("2025-06-01")) }, wantErr: ErrInvalidInput},
		{name: "unknown member", mutate: func(r *Request) { r.TeamMemberID = 99 }, wantErr: ErrTeamMemberNotFound},
		{name: "inverted template", mutate: func(r *Request) {
			r.Week[time.Tuesday] = []recurrence.SlotTemplate{{Start: "12:00", End: "09:00"}}
		}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows := &memoryWindows{}
			req := &Request{
				ShopID:       shopID,
				TeamMemberID: memberID,
				StartDate:    date("2024-01-01"),
				Cadence:      "everyWeek",
				Week:         mondayMorning(),
			}
			tt.mutate(req)

			_, err := newUseCase(windows).Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, windows.rows)
		})
	}
}

func TestExecute_InsertFailureKeepsOldWindows(t *testing.T) {
	old := &domain.AvailabilityWindow{TeamMemberID: memberID, ShopID: shopID, Date: date("2024-01-08"), StartTime: "10:00", EndTime: "11:00"}
	windows := &memoryWindows{rows: []*domain.AvailabilityWindow{old}, insertErr: errors.New("disk full")}

	_, err := newUseCase(windows).Execute(context.Background(), &Request{
		ShopID:       shopID,
		TeamMemberID: memberID,
		StartDate:    date("2024-01-01"),
		EndDate:      ptr.Ptr(date("2024-01-15")),
		Cadence:      "everyWeek",
		Week:         mondayMorning(),
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []*domain.AvailabilityWindow{old}, windows.rows)
}
