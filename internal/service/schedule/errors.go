package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание студии не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrOverrideNotFound возвращается, когда переопределение на дату не найдено
	ErrOverrideNotFound = errors.New("schedule override not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается при некорректном рабочем окне
	ErrInvalidTimeRange = errors.New("invalid operating window")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
