package get_studio_reservations

import (
	"context"

	"github.com/nrgaliy/Studio-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetStudioReservations(ctx context.Context, req *models.GetStudioReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
