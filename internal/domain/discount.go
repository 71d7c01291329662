package domain

import "time"

// Coupon a discrete, expiring grant of discount-minutes issued administratively
type Coupon struct {
	ID        string
	Minutes   int
	ExpiresAt time.Time
}

// IsExpired returns true if the coupon cannot be applied at the given moment
func (c Coupon) IsExpired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// DiscountEligibility point-in-time snapshot of what the customer may
// spend on discounts. Fetched once per booking session, read-only.
type DiscountEligibility struct {
	AccumulatedMinutes int
	Coupons            []Coupon
}

// HasAnyDiscount returns true if the snapshot offers anything to spend
func (e DiscountEligibility) HasAnyDiscount() bool {
	return e.AccumulatedMinutes > 0 || len(e.Coupons) > 0
}

// DiscountSelection the discounts the customer chose to apply.
// Invariant: AccumulatedMinutes is a multiple of 30 and the combined
// discounted minutes never exceed the booking's excess minutes.
type DiscountSelection struct {
	AccumulatedMinutes int
	CouponIDs          []string
}

// IsEmpty returns true if no discount is selected
func (s DiscountSelection) IsEmpty() bool {
	return s.AccumulatedMinutes == 0 && len(s.CouponIDs) == 0
}
