package get_available_times

import (
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// Request модель запроса каталога доступности
type Request struct {
	StudioID int64     // ID студии
	Date     time.Time // Дата, на которую строится каталог (без времени)
}

// Response модель ответа с каталогом доступности на день
type Response struct {
	StudioID int64
	Date     time.Time

	// CurrentTime текущее время сервера, по которому размечены прошедшие слоты
	CurrentTime types.TimeString
	IsToday     bool

	IsClosed           bool
	OperatingStartTime types.TimeString // пустое, если студия закрыта
	OperatingEndTime   types.TimeString // эксклюзивная граница
	Message            *string          // сообщение о нерабочем дне

	// UnavailableSlots стартовые времена слотов, занятых бронированиями
	UnavailableSlots []types.TimeString

	// Slots полная сетка из 48 слотов с их статусами
	Slots []domain.TimeSlot
}
