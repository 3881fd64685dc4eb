package payroll_settings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/service/payroll_settings/models"
)

// UpsertRateRequest HTTP request model
type UpsertRateRequest struct {
	Rate     float64 `json:"rate"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (r *UpsertRateRequest) ToServiceRequest(dayType string) *models.UpsertRateRequest {
	return &models.UpsertRateRequest{
		DayType:  dayType,
		Rate:     r.Rate,
		IsActive: r.IsActive,
	}
}

// CreateHolidayRequest HTTP request model
type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// SetHolidayActiveRequest HTTP request model
type SetHolidayActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

// toListHolidaysRequest query: year, onlyActive
func toListHolidaysRequest(year, onlyActive string) (*models.ListHolidaysRequest, error) {
	req := &models.ListHolidaysRequest{}

	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return nil, fmt.Errorf("invalid year: %w", err)
		}
		req.Year = &y
	}

	if onlyActive != "" {
		active, err := strconv.ParseBool(onlyActive)
		if err != nil {
			return nil, fmt.Errorf("invalid onlyActive: %w", err)
		}
		req.OnlyActive = active
	}

	return req, nil
}
