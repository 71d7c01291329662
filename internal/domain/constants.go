package domain

// Slot grid constants
const (
	SlotDurationMinutes = 30
	SlotsPerDay         = 48
	MinutesPerDay       = 24 * 60

	// MaxSelectionSlots максимальная длина выбранного диапазона (24 часа)
	MaxSelectionSlots = 48
)

// Discount constants
const (
	// FreeOfDiscountMinutes первые 60 минут брони не подлежат скидке
	FreeOfDiscountMinutes = 60

	// DiscountStepMinutes шаг квантования накопленных минут
	DiscountStepMinutes = 30

	// CouponDiscountPer30Min фиксированная скидка за 30 купонных минут
	CouponDiscountPer30Min int64 = 10000

	// AccumulatedDiscountPer30Min фиксированная скидка за 30 накопленных минут
	AccumulatedDiscountPer30Min int64 = 10000
)

// Business validation constants
const (
	DefaultHourlyRate int64 = 20000

	MinHourlyRate int64 = 0
	MaxHourlyRate int64 = 1000000

	MaxCustomerNameLength       = 100
	MaxCancellationReasonLength = 500

	// CommitCutoffMinutes бронирование допускается минимум за 1 минуту до начала
	CommitCutoffMinutes = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы бронирований, не занимающих слоты.
// Используется при построении каталога доступности.
var InactiveStatuses = []ReservationStatus{
	StatusCancelledByUser,
	StatusCancelledByStudio,
}

// ActiveStatuses статусы бронирований, занимающих слоты
var ActiveStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusModified,
	StatusCompleted,
}
