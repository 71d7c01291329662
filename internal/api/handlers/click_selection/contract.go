package click_selection

import (
	"context"

	clickSelection "github.com/nrgaliy/Studio-BookingService/internal/usecase/click_selection"
)

type ClickSelectionUseCase interface {
	Execute(ctx context.Context, req *clickSelection.Request) (*clickSelection.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
