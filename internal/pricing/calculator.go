package pricing

import (
	"math"
	"sort"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
)

// DiscountAvailability состояние скидочного блока для UI
type DiscountAvailability string

const (
	// DiscountAvailable скидка может быть применена
	DiscountAvailable DiscountAvailability = "available"

	// DiscountNoneAvailable у клиента нет ни купонов, ни накопленных минут
	DiscountNoneAvailable DiscountAvailability = "none_available"

	// DiscountRequiresLongerBooking скидка доступна только при брони дольше часа
	DiscountRequiresLongerBooking DiscountAvailability = "requires_longer_booking"
)

// Quote результат расчёта цены с учётом скидок
type Quote struct {
	BasePrice     int64
	ExcessMinutes int

	// Selection фактически применённый выбор скидок после всех ограничений
	Selection     domain.DiscountSelection
	CouponMinutes int

	DiscountAmount int64
	FinalPrice     int64

	Availability DiscountAvailability
}

// BasePrice возвращает базовую цену брони: round(часы * часовая ставка)
func BasePrice(durationMinutes int, hourlyRate int64) int64 {
	hours := float64(durationMinutes) / 60.0
	return int64(math.Round(hours * float64(hourlyRate)))
}

// FinalPrice общая функция вычисления итоговой цены.
// Все места, показывающие итоговую цену, обязаны считать её здесь,
// чтобы округление было согласованным.
func FinalPrice(basePrice, discountAmount int64) int64 {
	final := basePrice - discountAmount
	if final < 0 {
		return 0
	}
	return final
}

// Calculate вычисляет цену брони с учётом выбранных скидок.
//
// Правила:
//   - скидки разрешены только при длительности строго больше 60 минут;
//     иначе выбор скидок принудительно обнуляется;
//   - суммарные скидочные минуты не превышают excess = длительность - 60;
//   - купоны имеют приоритет: сначала учитываются купонные минуты,
//     затем накопленные минуты зажимаются в остаток;
//   - накопленные минуты квантуются вниз до шага 30 минут;
//   - превышения ограничений зажимаются молча, без ошибок.
func Calculate(
	durationMinutes int,
	hourlyRate int64,
	eligibility domain.DiscountEligibility,
	requested domain.DiscountSelection,
	now time.Time,
) Quote {
	base := BasePrice(durationMinutes, hourlyRate)

	q := Quote{
		BasePrice:    base,
		FinalPrice:   FinalPrice(base, 0),
		Selection:    domain.DiscountSelection{CouponIDs: []string{}},
		Availability: availability(durationMinutes, eligibility),
	}

	if durationMinutes <= domain.FreeOfDiscountMinutes {
		return q
	}

	excess := durationMinutes - domain.FreeOfDiscountMinutes
	q.ExcessMinutes = excess

	couponIDs, couponMinutes := clampCoupons(requested.CouponIDs, eligibility.Coupons, excess, now)
	accumulated := clampAccumulated(requested.AccumulatedMinutes, eligibility.AccumulatedMinutes, excess-couponMinutes)

	q.Selection = domain.DiscountSelection{
		AccumulatedMinutes: accumulated,
		CouponIDs:          couponIDs,
	}
	q.CouponMinutes = couponMinutes
	q.DiscountAmount = discountAmount(couponMinutes, accumulated)
	q.FinalPrice = FinalPrice(base, q.DiscountAmount)

	return q
}

// MaxDiscount выбирает максимальную доступную скидку: сначала все
// подходящие купоны (раньше истекающие — первыми), затем остаток
// excess добирается накопленными минутами.
func MaxDiscount(
	durationMinutes int,
	eligibility domain.DiscountEligibility,
	now time.Time,
) domain.DiscountSelection {
	if durationMinutes <= domain.FreeOfDiscountMinutes {
		return domain.DiscountSelection{CouponIDs: []string{}}
	}

	excess := durationMinutes - domain.FreeOfDiscountMinutes

	coupons := make([]domain.Coupon, 0, len(eligibility.Coupons))
	for _, c := range eligibility.Coupons {
		if !c.IsExpired(now) {
			coupons = append(coupons, c)
		}
	}
	sort.Slice(coupons, func(i, j int) bool {
		return coupons[i].ExpiresAt.Before(coupons[j].ExpiresAt)
	})

	couponIDs := make([]string, 0, len(coupons))
	couponMinutes := 0
	for _, c := range coupons {
		if couponMinutes+c.Minutes > excess {
			continue
		}
		couponIDs = append(couponIDs, c.ID)
		couponMinutes += c.Minutes
	}

	accumulated := clampAccumulated(eligibility.AccumulatedMinutes, eligibility.AccumulatedMinutes, excess-couponMinutes)

	return domain.DiscountSelection{
		AccumulatedMinutes: accumulated,
		CouponIDs:          couponIDs,
	}
}

// clampCoupons отбирает из запрошенных купонов те, что существуют в
// снапшоте, не истекли и суммарно помещаются в excess. Порядок запроса
// сохраняется: не поместившийся купон пропускается молча.
func clampCoupons(requestedIDs []string, held []domain.Coupon, excess int, now time.Time) ([]string, int) {
	byID := make(map[string]domain.Coupon, len(held))
	for _, c := range held {
		byID[c.ID] = c
	}

	ids := make([]string, 0, len(requestedIDs))
	minutes := 0
	seen := make(map[string]struct{}, len(requestedIDs))

	for _, id := range requestedIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		c, ok := byID[id]
		if !ok || c.IsExpired(now) {
			continue
		}
		if minutes+c.Minutes > excess {
			continue
		}
		ids = append(ids, id)
		minutes += c.Minutes
	}

	return ids, minutes
}

// clampAccumulated зажимает накопленные минуты в remaining и в баланс
// клиента, затем квантует вниз до шага 30 минут
func clampAccumulated(requested, balance, remaining int) int {
	if remaining < 0 {
		remaining = 0
	}
	m := requested
	if m > balance {
		m = balance
	}
	if m > remaining {
		m = remaining
	}
	if m < 0 {
		m = 0
	}
	return m - m%domain.DiscountStepMinutes
}

// discountAmount сумма скидки: две независимые фиксированные ставки,
// не зависящие от часовой ставки услуги
func discountAmount(couponMinutes, accumulatedMinutes int) int64 {
	couponPart := int64(couponMinutes/domain.DiscountStepMinutes) * domain.CouponDiscountPer30Min
	accumulatedPart := int64(accumulatedMinutes/domain.DiscountStepMinutes) * domain.AccumulatedDiscountPer30Min
	return couponPart + accumulatedPart
}

func availability(durationMinutes int, eligibility domain.DiscountEligibility) DiscountAvailability {
	if !eligibility.HasAnyDiscount() {
		return DiscountNoneAvailable
	}
	if durationMinutes <= domain.FreeOfDiscountMinutes {
		return DiscountRequiresLongerBooking
	}
	return DiscountAvailable
}
