package quote_price

import (
	"github.com/nrgaliy/Studio-BookingService/internal/pricing"
)

// Request модель запроса расчёта цены
type Request struct {
	CustomerID      int64
	DurationMinutes int

	// Запрошенный выбор скидок; игнорируется при UseMaximum
	CouponIDs          []string
	AccumulatedMinutes int

	// UseMaximum автоматически подобрать максимальную доступную скидку
	UseMaximum bool
}

// Response модель ответа с расчётом цены
type Response struct {
	Quote pricing.Quote

	// Degraded true, если скидочный сервис был недоступен и расчёт
	// выполнен без скидок
	Degraded bool
}
