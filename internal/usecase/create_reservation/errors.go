package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNotAuthenticated возвращается, когда клиент не аутентифицирован
	ErrNotAuthenticated = errors.New("customer is not authenticated")

	// ErrConsentRequired возвращается без согласия на обработку данных
	ErrConsentRequired = errors.New("privacy consent is required")

	// ErrEmptySelection возвращается при попытке забронировать пустой выбор
	ErrEmptySelection = errors.New("selection is empty")

	// ErrNonContiguous возвращается, когда выбранные слоты не образуют
	// непрерывный диапазон
	ErrNonContiguous = errors.New("selection is not contiguous")

	// ErrStudioClosed возвращается, когда студия закрыта в выбранную дату
	// или выбор выходит за окно работы
	ErrStudioClosed = errors.New("studio is closed at the selected time")

	// ErrCommitCutoff возвращается, когда до начала брони осталось меньше
	// минимального зазора
	ErrCommitCutoff = errors.New("too late to commit this reservation")

	// ErrSlotConflict возвращается, когда выбранный диапазон уже занят
	ErrSlotConflict = errors.New("selected time range is no longer available")

	// ErrBusinessRule возвращается, когда бронирование отклонено правилом
	// на стороне БД; текст причины добавляется при обёртке
	ErrBusinessRule = errors.New("reservation rejected by a business rule")

	// ErrDiscountConflict возвращается, когда выбранные скидки не удалось
	// списать (купон потрачен, минут не хватает)
	ErrDiscountConflict = errors.New("selected discounts are no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
