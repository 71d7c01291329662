package reservations

import (
	"context"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByPublicID(ctx context.Context, publicID string) (*domain.Reservation, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByStudioWithFilter(ctx context.Context, filter domain.StudioReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string) error
}

// StaffRepository интерфейс репозитория сотрудников студий
type StaffRepository interface {
	IsStaff(ctx context.Context, studioID, userID int64) (bool, error)
}

// CatalogInvalidator интерфейс инвалидации кэша каталога слотов
type CatalogInvalidator interface {
	Invalidate(ctx context.Context, studioID int64, date string)
}

// NotificationEnqueuer интерфейс постановки уведомлений в очередь
type NotificationEnqueuer interface {
	EnqueueReservationCancelled(ctx context.Context, res *domain.Reservation) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
