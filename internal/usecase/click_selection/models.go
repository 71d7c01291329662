package click_selection

import (
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/selection"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// Request модель запроса редьюсера выбора слотов
type Request struct {
	StudioID      int64
	Date          time.Time
	SelectedTimes []types.TimeString // текущий выбор клиента
	ClickedTime   types.TimeString   // кликнутый слот
}

// Response модель ответа: новый выбор и его производные характеристики
type Response struct {
	SelectedTimes []types.TimeString
	Summary       *selection.Summary // nil, если выбор пуст
}
