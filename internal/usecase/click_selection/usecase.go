package click_selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/internal/selection"
)

// UseCase use case применения клика к выбору слотов.
// Выбор хранится на клиенте; сервер применяет клик чистым редьюсером,
// чтобы правила выбора были реализованы в одном месте.
type UseCase struct {
	catalogProvider CatalogProvider
	hourlyRate      int64
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogProvider CatalogProvider, hourlyRate int64, logger Logger) *UseCase {
	if hourlyRate <= 0 {
		hourlyRate = domain.DefaultHourlyRate
	}
	return &UseCase{
		catalogProvider: catalogProvider,
		hourlyRate:      hourlyRate,
		logger:          logger,
	}
}

// Execute выполняет use case применения клика
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ClickSelection: studio=%d, date=%s, clicked=%s, selected=%d",
		req.StudioID, req.Date.Format(domain.DateFormat), req.ClickedTime, len(req.SelectedTimes))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ClickSelection: validation failed: %v", err)
		return nil, err
	}

	// 2. Восстанавливаем состояние выбора из запроса
	state, err := selection.FromTimes(req.SelectedTimes)
	if err != nil {
		uc.logger.Warn("ClickSelection: bad selected times: %v", err)
		return nil, fmt.Errorf("%w: selected times: %v", ErrInvalidInput, err)
	}

	// 3. Строим актуальный каталог доступности
	catalog, err := uc.catalogProvider.Catalog(ctx, req.StudioID, req.Date)
	if err != nil {
		uc.logger.Error("ClickSelection: failed to build catalog for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to build catalog: %v", ErrInternal, err)
	}

	// 4. Применяем клик
	next, err := selection.Reduce(state, req.ClickedTime, catalog)
	if err != nil {
		switch {
		case errors.Is(err, selection.ErrNonContiguous):
			uc.logger.Info("ClickSelection: click rejected, selection would not be contiguous")
			return nil, ErrNonContiguous
		case errors.Is(err, selection.ErrMaxDurationExceeded):
			uc.logger.Info("ClickSelection: click rejected, max duration exceeded")
			return nil, ErrMaxDurationExceeded
		case errors.Is(err, selection.ErrInvalidSlot):
			return nil, fmt.Errorf("%w: clicked time: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("ClickSelection: reduce failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// 5. Собираем ответ с производными характеристиками
	resp := &Response{SelectedTimes: next.Times()}
	if summary, ok := selection.Summarize(next, uc.hourlyRate); ok {
		resp.Summary = summary
	}

	uc.logger.Info("ClickSelection: studio=%d new selection size=%d", req.StudioID, next.Size())
	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudioID <= 0 {
		return fmt.Errorf("%w: studioID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.ClickedTime.IsZero() {
		return fmt.Errorf("%w: clickedTime is required", ErrInvalidInput)
	}
	if domain.SlotIndex(req.ClickedTime) < 0 {
		return fmt.Errorf("%w: clickedTime must be aligned to the 30-minute grid", ErrInvalidInput)
	}
	return nil
}
