package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ReserveRequest запрос на удержание слота сессией
type ReserveRequest struct {
	SessionID       string
	ShopID          int64
	TeamMemberID    int64
	ServiceID       int64
	Date            string // "2025-10-15"
	StartTime       string // "10:00"
	DurationMinutes int    // 0 - взять длительность услуги
}

// ReservationResponse ответ с данными удержания
type ReservationResponse struct {
	SessionID    string    `json:"sessionId"`
	ShopID       int64     `json:"shopId"`
	TeamMemberID int64     `json:"teamMemberId"`
	ServiceID    int64     `json:"serviceId"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.TemporaryReservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		SessionID:    r.SessionID,
		ShopID:       r.ShopID,
		TeamMemberID: r.TeamMemberID,
		ServiceID:    r.ServiceID,
		Date:         r.Date.Format(domain.DateFormat),
		StartTime:    r.StartTime.String(),
		EndTime:      r.EndTime.String(),
		ExpiresAt:    r.ExpiresAt.UTC(),
	}
}
