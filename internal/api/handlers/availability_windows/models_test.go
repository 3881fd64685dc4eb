package availability_windows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/recurrence"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func TestRecurringRequest_ToUseCaseRequest(t *testing.T) {
	req := &RecurringRequest{
		StartDate: "2024-01-01",
		Cadence:   "everyTwoWeeks",
		Days: []DayRequest{
			{Weekday: "Monday", Slots: []SlotRequest{
				{StartTime: "09:00", EndTime: "12:00"},
				{StartTime: "13:00", EndTime: "18:00"},
			}},
			{Weekday: "tuesday"},
			{Weekday: "saturday", Slots: []SlotRequest{{StartTime: "10:00", EndTime: "14:00"}}},
		},
	}

	got, err := req.ToUseCaseRequest(1, 7)
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.ShopID)
	assert.Equal(t, int64(7), got.TeamMemberID)
	assert.Nil(t, got.EndDate)
	assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(got.StartDate))
	assert.Equal(t, 2, got.Week.EnabledDays())
	assert.Equal(t, []recurrence.SlotTemplate{
		{Start: types.MustTimeString("09:00"), End: types.MustTimeString("12:00")},
		{Start: types.MustTimeString("13:00"), End: types.MustTimeString("18:00")},
	}, got.Week[time.Monday])
	assert.Empty(t, got.Week[time.Tuesday])
}

func TestRecurringRequest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     RecurringRequest
		wantErr error
	}{
		{name: "bad start", req: RecurringRequest{StartDate: "01/01/2024"}, wantErr: errInvalidDate},
		{name: "bad end", req: RecurringRequest{StartDate: "2024-01-01", EndDate: ptrTo("soon")}, wantErr: errInvalidDate},
		{
			name:    "unknown weekday",
			req:     RecurringRequest{StartDate: "2024-01-01", Days: []DayRequest{{Weekday: "funday"}}},
			wantErr: errInvalidWeekday,
		},
		{
			name: "bad slot",
			req: RecurringRequest{StartDate: "2024-01-01", Days: []DayRequest{
				{Weekday: "monday", Slots: []SlotRequest{{StartTime: "9", EndTime: "18:00"}}},
			}},
			wantErr: errInvalidSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.ToUseCaseRequest(1, 7)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func ptrTo(s string) *string { return &s }
