package models

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CreateWindowRequest запрос на создание окна на одну дату
type CreateWindowRequest struct {
	ShopID       int64
	TeamMemberID int64
	Date         string // "2025-10-15"
	StartTime    string // "09:00"
	EndTime      string // "18:00"
	IsAvailable  *bool  // по умолчанию true
}

// ListWindowsRequest запрос списка окон
type ListWindowsRequest struct {
	ShopID       int64
	TeamMemberID *int64
	StartDate    string
	EndDate      string
}

// WindowResponse окно доступности
type WindowResponse struct {
	ID           int64  `json:"id"`
	ShopID       int64  `json:"shopId"`
	TeamMemberID int64  `json:"teamMemberId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	IsAvailable  bool   `json:"isAvailable"`
}

// WindowListResponse список окон
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:           w.ID,
		ShopID:       w.ShopID,
		TeamMemberID: w.TeamMemberID,
		Date:         w.Date.Format(domain.DateFormat),
		StartTime:    w.StartTime.String(),
		EndTime:      w.EndTime.String(),
		IsAvailable:  w.IsAvailable,
	}
}

// FromDomainWindowList конвертирует список в DTO
func FromDomainWindowList(list []*domain.AvailabilityWindow) *WindowListResponse {
	resp := &WindowListResponse{Windows: make([]WindowResponse, 0, len(list))}
	for _, w := range list {
		resp.Windows = append(resp.Windows, *FromDomainWindow(w))
	}
	return resp
}
