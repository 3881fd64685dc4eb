package payroll_settings

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/payroll_settings/models"
)

type PayrollSettingsService interface {
	ListRates(ctx context.Context) (*models.RatesResponse, error)
	UpsertRate(ctx context.Context, req *models.UpsertRateRequest) (*models.RateResponse, error)
	ListHolidays(ctx context.Context, req *models.ListHolidaysRequest) (*models.HolidaysResponse, error)
	CreateHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error)
	SetHolidayActive(ctx context.Context, id int64, active bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
