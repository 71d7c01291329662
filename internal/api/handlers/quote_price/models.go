package quote_price

import (
	quotePrice "github.com/nrgaliy/Studio-BookingService/internal/usecase/quote_price"
)

// QuotePriceRequest HTTP request model
type QuotePriceRequest struct {
	DurationMinutes    int      `json:"durationMinutes"`
	CouponIDs          []string `json:"couponIds,omitempty"`
	AccumulatedMinutes int      `json:"accumulatedMinutes,omitempty"`
	UseMaximum         bool     `json:"useMaximum,omitempty"`
}

// QuotePriceResponse HTTP response model
type QuotePriceResponse struct {
	BasePrice     int64 `json:"basePrice"`
	ExcessMinutes int   `json:"excessMinutes"`

	// Фактически применённый выбор скидок после всех ограничений
	AppliedCouponIDs          []string `json:"appliedCouponIds"`
	AppliedAccumulatedMinutes int      `json:"appliedAccumulatedMinutes"`

	DiscountAmount int64 `json:"discountAmount"`
	FinalPrice     int64 `json:"finalPrice"`

	Availability string `json:"availability"`

	// Degraded true, если скидочный сервис был недоступен
	Degraded bool `json:"degraded"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuotePriceRequest) ToUseCaseRequest(customerID int64) *quotePrice.Request {
	return &quotePrice.Request{
		CustomerID:         customerID,
		DurationMinutes:    r.DurationMinutes,
		CouponIDs:          r.CouponIDs,
		AccumulatedMinutes: r.AccumulatedMinutes,
		UseMaximum:         r.UseMaximum,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quotePrice.Response) *QuotePriceResponse {
	return &QuotePriceResponse{
		BasePrice:                 resp.Quote.BasePrice,
		ExcessMinutes:             resp.Quote.ExcessMinutes,
		AppliedCouponIDs:          resp.Quote.Selection.CouponIDs,
		AppliedAccumulatedMinutes: resp.Quote.Selection.AccumulatedMinutes,
		DiscountAmount:            resp.Quote.DiscountAmount,
		FinalPrice:                resp.Quote.FinalPrice,
		Availability:              string(resp.Quote.Availability),
		Degraded:                  resp.Degraded,
	}
}
