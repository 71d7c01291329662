package quote_price

import (
	"context"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
)

// RewardsClient интерфейс клиента скидочного сервиса
type RewardsClient interface {
	GetEligibility(ctx context.Context, customerID int64) (domain.DiscountEligibility, error)
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
