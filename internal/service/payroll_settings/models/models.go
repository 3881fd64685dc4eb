package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UpsertRateRequest запрос на изменение ставки
type UpsertRateRequest struct {
	DayType  string
	Rate     float64
	IsActive *bool // по умолчанию true
}

// CreateHolidayRequest запрос на добавление праздника
type CreateHolidayRequest struct {
	Date string // "2025-01-01"
	Name string
}

// ListHolidaysRequest запрос списка праздников
type ListHolidaysRequest struct {
	Year       *int
	OnlyActive bool
}

// RateResponse ставка
type RateResponse struct {
	DayType   string    `json:"dayType"`
	Rate      float64   `json:"rate"`
	IsActive  bool      `json:"isActive"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatesResponse ставки по всем типам дней
type RatesResponse struct {
	Rates []RateResponse `json:"rates"`
}

// HolidayResponse праздник
type HolidayResponse struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// HolidaysResponse список праздников
type HolidaysResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// FromDomainRate конвертирует domain модель в DTO
func FromDomainRate(r *domain.HourlyRate) RateResponse {
	return RateResponse{
		DayType:   string(r.DayType),
		Rate:      r.Rate,
		IsActive:  r.IsActive,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h *domain.PublicHoliday) HolidayResponse {
	return HolidayResponse{
		ID:       h.ID,
		Date:     h.Date.Format(domain.DateFormat),
		Name:     h.Name,
		IsActive: h.IsActive,
	}
}
