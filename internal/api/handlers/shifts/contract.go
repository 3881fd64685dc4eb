package shifts

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/shifts/models"
)

type ShiftService interface {
	ClockIn(ctx context.Context, req *models.ClockInRequest) (*models.ShiftResponse, error)
	StartBreak(ctx context.Context, teamMemberID int64) (*models.ShiftResponse, error)
	EndBreak(ctx context.Context, teamMemberID int64) (*models.ShiftResponse, error)
	ClockOut(ctx context.Context, teamMemberID int64) (*models.ShiftResponse, error)
	GetShift(ctx context.Context, id int64) (*models.ShiftResponse, error)
	GetActive(ctx context.Context, teamMemberID int64) (*models.ShiftResponse, error)
	MarkPaid(ctx context.Context, req *models.MarkPaidRequest) (*models.MarkPaidResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
