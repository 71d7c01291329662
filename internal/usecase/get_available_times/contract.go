package get_available_times

import (
	"context"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/internal/infra/cache"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetActiveByStudioAndDate получает активные бронирования студии на дату
	GetActiveByStudioAndDate(ctx context.Context, studioID int64, date string) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория расписаний студий
type ScheduleRepository interface {
	// GetWindowForDate вычисляет окно работы студии на дату
	GetWindowForDate(ctx context.Context, studioID int64, date time.Time) (domain.OperatingWindow, error)
}

// CatalogCache интерфейс кеша входных данных каталога
type CatalogCache interface {
	Get(studioID int64, date string) (cache.DayInputs, bool)
	Put(studioID int64, date string, inputs cache.DayInputs)
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
