package quote_price

import (
	"context"
	"fmt"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/internal/pricing"
	"github.com/nrgaliy/Studio-BookingService/pkg/remotecall"
)

// UseCase use case расчёта цены брони с учётом скидок
type UseCase struct {
	rewardsClient RewardsClient
	hourlyRate    int64
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(rewardsClient RewardsClient, hourlyRate int64, logger Logger) *UseCase {
	if hourlyRate <= 0 {
		hourlyRate = domain.DefaultHourlyRate
	}
	return &UseCase{
		rewardsClient: rewardsClient,
		hourlyRate:    hourlyRate,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case расчёта цены.
// При недоступности скидочного сервиса расчёт деградирует до цены без
// скидок: чтение скидок не должно блокировать оформление брони.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: customer=%d, duration=%d, coupons=%d, minutes=%d, max=%t",
		req.CustomerID, req.DurationMinutes, len(req.CouponIDs), req.AccumulatedMinutes, req.UseMaximum)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем снапшот скидок с fallback'ом на пустой
	degraded := false
	eligibility, err := remotecall.WithFallback(ctx, "rewards.GetEligibility", uc.logger,
		func(ctx context.Context) (domain.DiscountEligibility, error) {
			return uc.rewardsClient.GetEligibility(ctx, req.CustomerID)
		},
		func(ctx context.Context) (domain.DiscountEligibility, error) {
			degraded = true
			return domain.DiscountEligibility{}, nil
		},
	)
	if err != nil {
		// Fallback не возвращает ошибок; ветка на случай изменения контракта
		return nil, fmt.Errorf("%w: failed to get eligibility: %v", ErrInternal, err)
	}

	// 3. Определяем запрошенный выбор скидок
	requested := domain.DiscountSelection{
		AccumulatedMinutes: req.AccumulatedMinutes,
		CouponIDs:          req.CouponIDs,
	}
	if req.UseMaximum {
		requested = pricing.MaxDiscount(req.DurationMinutes, eligibility, now)
	}

	// 4. Считаем цену
	quote := pricing.Calculate(req.DurationMinutes, uc.hourlyRate, eligibility, requested, now)

	uc.logger.Info("QuotePrice: customer=%d base=%d discount=%d final=%d degraded=%t",
		req.CustomerID, quote.BasePrice, quote.DiscountAmount, quote.FinalPrice, degraded)

	return &Response{Quote: quote, Degraded: degraded}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: durationMinutes must be a multiple of %d", ErrInvalidInput, domain.SlotDurationMinutes)
	}
	if req.DurationMinutes > domain.MaxSelectionSlots*domain.SlotDurationMinutes {
		return fmt.Errorf("%w: durationMinutes exceeds the maximum bookable duration", ErrInvalidInput)
	}
	if req.AccumulatedMinutes < 0 {
		return fmt.Errorf("%w: accumulatedMinutes must not be negative", ErrInvalidInput)
	}
	return nil
}
