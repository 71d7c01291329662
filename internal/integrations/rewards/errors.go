package rewards

import "errors"

var (
	// ErrCouponNotFound возвращается, когда купон не принадлежит клиенту
	// или уже потрачен
	ErrCouponNotFound = errors.New("rewards client: coupon not found")

	// ErrInsufficientMinutes возвращается, когда накопленных минут
	// недостаточно для списания
	ErrInsufficientMinutes = errors.New("rewards client: insufficient accumulated minutes")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("rewards client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("rewards client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что RewardsService недоступен и следует считать цену без скидок.
	ErrServiceDegraded = errors.New("rewards service unavailable: graceful degradation applied")
)
