package schedule

import (
	"context"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetWeeklyByStudio(ctx context.Context, studioID int64) ([]*domain.WeeklySchedule, error)
	GetOverride(ctx context.Context, studioID int64, date time.Time) (*domain.ScheduleOverride, error)
	UpsertWeekly(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	UpsertOverride(ctx context.Context, o *domain.ScheduleOverride) (*domain.ScheduleOverride, error)
	DeleteOverride(ctx context.Context, studioID int64, date time.Time) error
}

// StaffRepository интерфейс репозитория сотрудников студий
type StaffRepository interface {
	IsStaff(ctx context.Context, studioID, userID int64) (bool, error)
}

// CatalogInvalidator интерфейс инвалидации кэша каталога слотов
type CatalogInvalidator interface {
	Invalidate(ctx context.Context, studioID int64, date string)
}

// TimeProvider интерфейс источника текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
