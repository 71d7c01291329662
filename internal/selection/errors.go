package selection

import "errors"

var (
	// ErrInvalidSlot возвращается, когда время слота не выровнено по 30-минутной сетке
	ErrInvalidSlot = errors.New("selection: slot time is not aligned to the 30-minute grid")

	// ErrInvalidCatalog возвращается, когда каталог не содержит полной дневной сетки слотов
	ErrInvalidCatalog = errors.New("selection: catalog must contain the full day grid")

	// ErrNonContiguous возвращается, когда запрошенный диапазон содержит недоступные слоты.
	// Операция отклоняется целиком, частичный выбор не производится.
	ErrNonContiguous = errors.New("selection: requested range is not contiguous")

	// ErrMaxDurationExceeded возвращается, когда выбор превысил бы максимальную длительность
	ErrMaxDurationExceeded = errors.New("selection: maximum duration exceeded")
)
