package click_selection

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNonContiguous возвращается, когда клик привёл бы к разрывному выбору
	ErrNonContiguous = errors.New("selection would not be contiguous")

	// ErrMaxDurationExceeded возвращается при превышении максимальной длительности
	ErrMaxDurationExceeded = errors.New("selection exceeds maximum duration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
