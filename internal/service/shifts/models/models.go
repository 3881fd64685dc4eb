package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/payroll"
)

// ClockInRequest запрос на открытие смены
type ClockInRequest struct {
	TeamMemberID int64
	ShopID       int64
}

// MarkPaidRequest запрос на отметку оплаты смен
type MarkPaidRequest struct {
	ShiftIDs []int64
}

// TimesheetRequest запрос табеля за период
type TimesheetRequest struct {
	ShopID        *int64
	TeamMemberIDs []int64
	StartDate     string
	EndDate       string
}

// BreakResponse перерыв
type BreakResponse struct {
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
}

// CalculationResponse расчёт часов и оплаты
type CalculationResponse struct {
	GrossHours         float64 `json:"grossHours"`
	NetHours           float64 `json:"netHours"`
	TotalBreakMinutes  int     `json:"totalBreakMinutes"`
	PaidBreakMinutes   int     `json:"paidBreakMinutes"`
	UnpaidBreakMinutes int     `json:"unpaidBreakMinutes"`
	DayType            string  `json:"dayType"`
	HourlyRate         float64 `json:"hourlyRate"`
	TotalPay           float64 `json:"totalPay"`
	Live               bool    `json:"live"`
}

// ShiftResponse смена с расчётом
type ShiftResponse struct {
	ID                int64               `json:"id"`
	TeamMemberID      int64               `json:"teamMemberId"`
	ShopID            int64               `json:"shopId"`
	Date              string              `json:"date"`
	ShiftStart        time.Time           `json:"shiftStart"`
	ShiftEnd          *time.Time          `json:"shiftEnd,omitempty"`
	Breaks            []BreakResponse     `json:"breaks"`
	TotalBreakMinutes int                 `json:"totalBreakMinutes"`
	Status            string              `json:"status"`
	PaidAt            *time.Time          `json:"paidAt,omitempty"`
	Calculation       CalculationResponse `json:"calculation"`
}

// MarkPaidResult результат отметки оплаты
type MarkPaidResult struct {
	Requested int   `json:"requested"`
	Paid      int64 `json:"paid"`
}

// TimesheetRowResponse строка табеля
type TimesheetRowResponse struct {
	TeamMemberID      int64   `json:"teamMemberId"`
	TeamMemberName    string  `json:"teamMemberName,omitempty"`
	NetHours          float64 `json:"netHours"`
	TotalPay          float64 `json:"totalPay"`
	DaysWorked        int     `json:"daysWorked"`
	TotalBreakMinutes int     `json:"totalBreakMinutes"`
}

// TimesheetResponse табель за период
type TimesheetResponse struct {
	StartDate     string                 `json:"startDate"`
	EndDate       string                 `json:"endDate"`
	Rows          []TimesheetRowResponse `json:"rows"`
	TotalNetHours float64                `json:"totalNetHours"`
	TotalPay      float64                `json:"totalPay"`
}

// FromDomainShift конвертирует смену и её расчёт в DTO
func FromDomainShift(s *domain.Shift, calc payroll.Calculation) *ShiftResponse {
	if s == nil {
		return nil
	}

	breaks := make([]BreakResponse, 0, len(s.Breaks))
	for _, b := range s.Breaks {
		breaks = append(breaks, BreakResponse{Start: b.Start, End: b.End, DurationMinutes: b.DurationMinutes})
	}

	return &ShiftResponse{
		ID:                s.ID,
		TeamMemberID:      s.TeamMemberID,
		ShopID:            s.ShopID,
		Date:              s.Date.Format(domain.DateFormat),
		ShiftStart:        s.ShiftStart,
		ShiftEnd:          s.ShiftEnd,
		Breaks:            breaks,
		TotalBreakMinutes: s.TotalBreakMinutes,
		Status:            string(s.Status),
		PaidAt:            s.PaidAt,
		Calculation:       FromCalculation(calc),
	}
}

// FromCalculation округляет часы и сумму до сотых
func FromCalculation(c payroll.Calculation) CalculationResponse {
	return CalculationResponse{
		GrossHours:         payroll.Round2(c.GrossHours),
		NetHours:           payroll.Round2(c.NetHours),
		TotalBreakMinutes:  c.TotalBreakMinutes,
		PaidBreakMinutes:   c.PaidBreakMinutes,
		UnpaidBreakMinutes: c.UnpaidBreakMinutes,
		DayType:            string(c.DayType),
		HourlyRate:         c.HourlyRate,
		TotalPay:           payroll.Round2(c.TotalPay),
		Live:               c.Live,
	}
}
