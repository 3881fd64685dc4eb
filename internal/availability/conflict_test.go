package availability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func candidate(member int64, start, end string) Candidate {
	return Candidate{TeamMemberID: member, Date: day, Start: types.MustTimeString(start), End: types.MustTimeString(end)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		cStart, cEnd, bStart, bEnd int
		want                       bool
	}{
		{name: "same range", cStart: 600, cEnd: 630, bStart: 600, bEnd: 630, want: true},
		{name: "touching after", cStart: 630, cEnd: 660, bStart: 600, bEnd: 630, want: false},
		{name: "touching before", cStart: 570, cEnd: 600, bStart: 600, bEnd: 630, want: false},
		{name: "inside", cStart: 610, cEnd: 620, bStart: 600, bEnd: 630, want: true},
		{name: "covering", cStart: 540, cEnd: 700, bStart: 600, bEnd: 630, want: true},
		{name: "zero width at same start", cStart: 600, cEnd: 600, bStart: 600, bEnd: 600, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.cStart, tt.cEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []*domain.Booking{
		booking(memberA, "10:00", "10:30", domain.StatusConfirmed),
		booking(memberA, "12:00", "13:00", domain.StatusCancelled),
	}

	res := HasConflict(candidate(memberA, "10:00", "10:30"), existing, nil)
	assert.True(t, res.Conflict)
	assert.Equal(t, []string{"BK-10:00"}, res.ConflictingBookingNumbers)

	assert.False(t, HasConflict(candidate(memberA, "10:30", "11:00"), existing, nil).Conflict)
	assert.False(t, HasConflict(candidate(memberB, "10:00", "10:30"), existing, nil).Conflict)
	assert.False(t, HasConflict(candidate(memberA, "12:00", "12:30"), existing, nil).Conflict)
}

func TestHasConflict_ExcludesOwnBooking(t *testing.T) {
	own := booking(memberA, "10:00", "11:00", domain.StatusConfirmed)
	own.ID = 77

	res := HasConflict(candidate(memberA, "10:30", "11:30"), []*domain.Booking{own}, ptr.Ptr(int64(77)))

	assert.False(t, res.Conflict)
	assert.Empty(t, res.ConflictingBookingNumbers)
	assert.NoError(t, res.Err())
}

func TestHasConflict_ReportsEveryOverlap(t *testing.T) {
	first := booking(memberA, "10:00", "10:30", domain.StatusConfirmed)
	second := booking(memberA, "10:30", "11:00", domain.StatusCompleted)
	second.BookingNumber = "BK-SECOND"

	res := HasConflict(candidate(memberA, "10:00", "11:00"), []*domain.Booking{first, second}, nil)

	require.True(t, res.Conflict)
	assert.Equal(t, []string{"BK-10:00", "BK-SECOND"}, res.ConflictingBookingNumbers)

	err := res.Err()
	assert.ErrorIs(t, err, ErrSlotConflict)
	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, res.ConflictingBookingNumbers, conflictErr.BookingNumbers)
}

func TestHasConflict_OtherDateIgnored(t *testing.T) {
	b := booking(memberA, "10:00", "10:30", domain.StatusConfirmed)
	b.BookingDate = day.AddDate(0, 0, 1)

	assert.False(t, HasConflict(candidate(memberA, "10:00", "10:30"), []*domain.Booking{b}, nil).Conflict)
}

func TestHasConflict_InvalidCandidateFailsClosed(t *testing.T) {
	tests := []struct {
		name       string
		start, end types.TimeString
	}{
		{name: "unparsable start", start: "xx:yy", end: "10:30"},
		{name: "unparsable end", start: "10:00", end: ""},
		{name: "end before start", start: "11:00", end: "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := HasConflict(Candidate{TeamMemberID: memberA, Date: day, Start: tt.start, End: tt.end}, nil, nil)

			assert.True(t, res.Conflict)
			assert.True(t, res.Invalid)
			assert.ErrorIs(t, res.Err(), ErrInvalidCandidate)
		})
	}
}
