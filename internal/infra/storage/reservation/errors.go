package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotConflict возвращается, когда диапазон пересекается с уже
	// существующим активным бронированием (уникальный или exclusion constraint)
	ErrSlotConflict = errors.New("reservation.repository: time range already reserved")

	// ErrBusinessRule возвращается, когда бронирование отклонено
	// триггером БД (raise_exception). Текст причины добавляется при обёртке.
	ErrBusinessRule = errors.New("reservation.repository: reservation rejected by database rule")

	// ErrConstraintViolation возвращается при нарушении прочих ограничений
	// целостности (check, not null, foreign key)
	ErrConstraintViolation = errors.New("reservation.repository: constraint violation")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("reservation.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
