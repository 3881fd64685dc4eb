package timesheet

import (
	"context"
	"io"

	"github.com/m04kA/SMC-SalonBooking/internal/service/shifts/models"
)

type TimesheetService interface {
	Timesheet(ctx context.Context, req *models.TimesheetRequest) (*models.TimesheetResponse, error)
	ExportTimesheet(ctx context.Context, req *models.TimesheetRequest, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
