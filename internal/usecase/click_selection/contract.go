package click_selection

import (
	"context"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
)

// CatalogProvider строит каталог доступности на дату.
// Реализуется usecase'ом каталога, чтобы редьюсер выбора работал от
// той же разметки, что видит клиент.
type CatalogProvider interface {
	Catalog(ctx context.Context, studioID int64, date time.Time) ([]domain.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
