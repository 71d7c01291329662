package create_reservation

import (
	"context"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByStudioWithFilter(ctx context.Context, filter domain.StudioReservationsFilter) ([]*domain.Reservation, error)
	// Delete используется компенсацией саги
	Delete(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория расписаний студий
type ScheduleRepository interface {
	GetWindowForDate(ctx context.Context, studioID int64, date time.Time) (domain.OperatingWindow, error)
}

// RewardsClient интерфейс клиента скидочного сервиса.
// Запись (consume/deduct) не деградирует: неуспех компенсируется.
type RewardsClient interface {
	GetEligibility(ctx context.Context, customerID int64) (domain.DiscountEligibility, error)
	ConsumeCoupons(ctx context.Context, customerID int64, couponIDs []string, idempotencyKey string) error
	ReleaseCoupons(ctx context.Context, customerID int64, couponIDs []string, idempotencyKey string) error
	DeductMinutes(ctx context.Context, customerID int64, minutes int, idempotencyKey string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CatalogInvalidator инвалидирует кеш каталога после изменения занятости
type CatalogInvalidator interface {
	Invalidate(ctx context.Context, studioID int64, date string)
}

// NotificationEnqueuer ставит задачу уведомления о созданной брони.
// Ошибка постановки не отменяет бронь.
type NotificationEnqueuer interface {
	EnqueueReservationConfirmed(ctx context.Context, res *domain.Reservation) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
