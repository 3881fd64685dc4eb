package reservations

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/reservations/models"
)

type ReservationService interface {
	Reserve(ctx context.Context, req *models.ReserveRequest) (*models.ReservationResponse, error)
	Release(ctx context.Context, sessionID string) error
	Get(ctx context.Context, sessionID string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
