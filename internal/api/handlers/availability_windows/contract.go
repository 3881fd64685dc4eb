package availability_windows

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/availability/models"
	saveRecurring "github.com/m04kA/SMC-SalonBooking/internal/usecase/save_recurring_availability"
)

type AvailabilityService interface {
	CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error)
	ListWindows(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error)
	DeleteWindow(ctx context.Context, shopID, id int64) error
}

type SaveRecurringUseCase interface {
	Execute(ctx context.Context, req *saveRecurring.Request) (*saveRecurring.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
