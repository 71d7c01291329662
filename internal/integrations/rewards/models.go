package rewards

import (
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
)

// Coupon модель купона из RewardsService
type Coupon struct {
	ID        string    `json:"id"`
	Minutes   int       `json:"minutes"`
	ExpiresAt time.Time `json:"expires_at"`
}

// EligibilityResponse снапшот скидочных возможностей клиента
type EligibilityResponse struct {
	CustomerID         int64    `json:"customer_id"`
	AccumulatedMinutes int      `json:"accumulated_minutes"`
	Coupons            []Coupon `json:"coupons"`
}

// ToDomain конвертирует снапшот в доменную модель
func (e *EligibilityResponse) ToDomain() domain.DiscountEligibility {
	coupons := make([]domain.Coupon, 0, len(e.Coupons))
	for _, c := range e.Coupons {
		coupons = append(coupons, domain.Coupon{
			ID:        c.ID,
			Minutes:   c.Minutes,
			ExpiresAt: c.ExpiresAt,
		})
	}
	return domain.DiscountEligibility{
		AccumulatedMinutes: e.AccumulatedMinutes,
		Coupons:            coupons,
	}
}

// consumeCouponsRequest запрос на списание купонов
type consumeCouponsRequest struct {
	CouponIDs      []string `json:"coupon_ids"`
	IdempotencyKey string   `json:"idempotency_key"`
}

// releaseCouponsRequest запрос на возврат купонов (компенсация)
type releaseCouponsRequest struct {
	CouponIDs      []string `json:"coupon_ids"`
	IdempotencyKey string   `json:"idempotency_key"`
}

// deductMinutesRequest запрос на списание накопленных минут
type deductMinutesRequest struct {
	Minutes        int    `json:"minutes"`
	IdempotencyKey string `json:"idempotency_key"`
}

// refundMinutesRequest запрос на возврат накопленных минут (компенсация)
type refundMinutesRequest struct {
	Minutes        int    `json:"minutes"`
	IdempotencyKey string `json:"idempotency_key"`
}

// ErrorResponse модель ошибки от RewardsService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
