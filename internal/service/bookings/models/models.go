package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Caller             domain.Caller
	CancellationReason *string
}

// UpdateStatusRequest запрос на смену статуса (completed, no_show, cancelled)
type UpdateStatusRequest struct {
	Caller domain.Caller
	Status string
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	Caller domain.Caller
	Status *string
}

// GetShopBookingsRequest запрос календаря бронирований салона
type GetShopBookingsRequest struct {
	Caller          domain.Caller
	ShopID          int64
	TeamMemberID    *int64     // Фильтр по мастеру (опционально)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить отменённые и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetShopBookingsRequest) ToDomainFilter() (domain.ShopBookingsFilter, error) {
	filter := domain.ShopBookingsFilter{
		ShopID:          r.ShopID,
		TeamMemberID:    r.TeamMemberID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	BookingNumber   string  `json:"bookingNumber"`
	ShopID          int64   `json:"shopId"`
	TeamMemberID    int64   `json:"teamMemberId"`
	ServiceID       int64   `json:"serviceId"`
	ClientID        int64   `json:"clientId"`
	BookingDate     string  `json:"bookingDate"` // локальная дата салона "2025-10-15"
	StartTime       string  `json:"startTime"`   // локальное время "10:00"
	EndTime         string  `json:"endTime"`
	StartsAt        string  `json:"startsAt"` // UTC, RFC 3339
	EndsAt          string  `json:"endsAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`

	ShopName       string  `json:"shopName,omitempty"`
	ShopTimezone   string  `json:"shopTimezone,omitempty"`
	ServiceName    string  `json:"serviceName,omitempty"`
	TeamMemberName string  `json:"teamMemberName,omitempty"`
	ClientName     string  `json:"clientName,omitempty"`
	ClientPhone    *string `json:"clientPhone,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CompletedAt        *string `json:"completedAt,omitempty"`
	NoShowAt           *string `json:"noShowAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		ShopID:             b.ShopID,
		TeamMemberID:       b.TeamMemberID,
		ServiceID:          b.ServiceID,
		ClientID:           b.ClientID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.End().String(),
		StartsAt:           b.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:             b.EndsAt.UTC().Format(time.RFC3339),
		DurationMinutes:    b.DurationMinutes,
		Price:              b.Price,
		Status:             string(b.Status),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        formatTime(b.CancelledAt),
		CompletedAt:        formatTime(b.CompletedAt),
		NoShowAt:           formatTime(b.NoShowAt),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainDetails конвертирует строку booking_details в DTO
func FromDomainDetails(d *domain.BookingDetails) *BookingResponse {
	if d == nil {
		return nil
	}

	resp := FromDomainBooking(&d.Booking)
	resp.ShopName = d.ShopName
	resp.ShopTimezone = d.ShopTimezone
	resp.ServiceName = d.ServiceName
	resp.TeamMemberName = d.TeamMemberName
	resp.ClientName = d.ClientName
	resp.ClientPhone = d.ClientPhone
	return resp
}

// FromDomainDetailsList конвертирует список в DTO
func FromDomainDetailsList(list []*domain.BookingDetails) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(list)),
	}

	for _, d := range list {
		if item := FromDomainDetails(d); item != nil {
			resp.Bookings = append(resp.Bookings, *item)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
