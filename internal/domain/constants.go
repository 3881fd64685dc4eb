package domain

import "time"

// Slot and reservation defaults
const (
	DefaultSlotGranularityMinutes = 30
	DefaultReservationTTL         = 10 * time.Minute
	DefaultRecurrenceWeeks        = 12
)

// Payroll constants
const (
	// PaidBreakAllowanceMinutes первые минуты перерывов за смену оплачиваются
	PaidBreakAllowanceMinutes = 20
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 720
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxRecurrenceDays           = 366
	MaxIdempotencyKeyLength     = 128
	MaxMarkPaidBatch            = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы бронирований, которые занимают слот
var BlockingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses статусы, которые слот не занимают
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
