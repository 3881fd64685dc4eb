package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Valid returns true for a known status
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Booking represents a confirmed visit of a client to a team member
type Booking struct {
	ID            int64
	BookingNumber string
	ShopID        int64
	TeamMemberID  int64
	ServiceID     int64
	ClientID      int64

	// Локальные для салона дата и время
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	// Те же границы в UTC
	StartsAt time.Time
	EndsAt   time.Time

	DurationMinutes int
	Price           float64
	Status          BookingStatus
	Notes           *string
	IdempotencyKey  *string

	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time
	NoShowAt           *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlots returns true if the booking occupies its time range
func (b *Booking) BlocksSlots() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusConfirmed
}

// CanTransitionTo returns true if status change is allowed. Only confirmed bookings move on.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status != StatusConfirmed {
		return false
	}
	return next == StatusCompleted || next == StatusCancelled || next == StatusNoShow
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// End returns the local end time, falling back to start + duration
func (b *Booking) End() types.TimeString {
	if !b.EndTime.IsZero() {
		return b.EndTime
	}
	end, err := b.StartTime.AddMinutes(b.DurationMinutes)
	if err != nil {
		return ""
	}
	return end
}

// BookingDetails строка представления booking_details: бронирование вместе с данными салона, услуги,
// мастера и клиента
type BookingDetails struct {
	Booking

	ShopName       string
	ShopTimezone   string
	ServiceName    string
	TeamMemberName string
	ClientName     string
	ClientPhone    *string
}

// ShopBookingsFilter фильтр для календаря бронирований салона
type ShopBookingsFilter struct {
	ShopID          int64          // Обязательный параметр
	TeamMemberID    *int64         // Фильтр по мастеру (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show
}
