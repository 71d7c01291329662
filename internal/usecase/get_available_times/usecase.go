package get_available_times

import (
	"context"
	"fmt"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/internal/infra/cache"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// UseCase use case построения каталога доступности студии на день
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	catalogCache    CatalogCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	catalogCache CatalogCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		catalogCache:    catalogCache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case построения каталога доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: studio=%d, date=%s", req.StudioID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что дата не в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableTimes: date validation failed: %v", err)
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)

	// 4. Получаем входные данные каталога: из кеша или из хранилища.
	// Кешируются окно работы и занятые слоты, но не сам каталог:
	// разметка прошедших слотов на сегодня зависит от текущего времени.
	inputs, hit := uc.catalogCache.Get(req.StudioID, dateStr)
	if !hit {
		var err error
		inputs, err = uc.loadDayInputs(ctx, req.StudioID, req.Date, dateStr)
		if err != nil {
			return nil, err
		}
		uc.catalogCache.Put(req.StudioID, dateStr, inputs)
	}

	// 5. Строим каталог из 48 слотов
	today := isToday(req.Date, now)
	catalog := BuildCatalog(inputs.Window, inputs.UnavailableTimes, today, now)

	// 6. Собираем ответ
	resp := &Response{
		StudioID:    req.StudioID,
		Date:        req.Date,
		CurrentTime: types.NewTimeString(now),
		IsToday:     today,
		IsClosed:    inputs.Window.IsClosed,
		Message:     inputs.Window.Message,
		Slots:       catalog,
	}

	if !inputs.Window.IsClosed {
		resp.OperatingStartTime = inputs.Window.Start
		resp.OperatingEndTime = inputs.Window.End
	}

	resp.UnavailableSlots = make([]types.TimeString, 0, len(inputs.UnavailableTimes))
	for _, raw := range inputs.UnavailableTimes {
		t, err := types.NewTimeStringFromString(raw)
		if err != nil {
			continue
		}
		resp.UnavailableSlots = append(resp.UnavailableSlots, t)
	}

	uc.logger.Info("GetAvailableTimes: studio=%d date=%s cache_hit=%t closed=%t reserved_slots=%d",
		req.StudioID, dateStr, hit, resp.IsClosed, len(resp.UnavailableSlots))

	return resp, nil
}

// Catalog строит каталог из 48 слотов на дату без сборки полного ответа.
// Используется редьюсером выбора и коммитом бронирования, чтобы все три
// операции работали от одной и той же разметки доступности.
func (uc *UseCase) Catalog(ctx context.Context, studioID int64, date time.Time) ([]domain.TimeSlot, error) {
	dateStr := date.Format(domain.DateFormat)

	inputs, hit := uc.catalogCache.Get(studioID, dateStr)
	if !hit {
		var err error
		inputs, err = uc.loadDayInputs(ctx, studioID, date, dateStr)
		if err != nil {
			return nil, err
		}
		uc.catalogCache.Put(studioID, dateStr, inputs)
	}

	now := uc.timeProvider.Now()
	return BuildCatalog(inputs.Window, inputs.UnavailableTimes, isToday(date, now), now), nil
}

// loadDayInputs загружает окно работы и занятые слоты из хранилища
func (uc *UseCase) loadDayInputs(ctx context.Context, studioID int64, date time.Time, dateStr string) (cache.DayInputs, error) {
	window, err := uc.scheduleRepo.GetWindowForDate(ctx, studioID, date)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get operating window for studio=%d: %v", studioID, err)
		return cache.DayInputs{}, fmt.Errorf("%w: failed to get operating window: %v", ErrInternal, err)
	}

	// Для закрытого дня занятых слотов нет по определению
	if window.IsClosed {
		return cache.DayInputs{Window: window, UnavailableTimes: []string{}}, nil
	}

	reservations, err := uc.reservationRepo.GetActiveByStudioAndDate(ctx, studioID, dateStr)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get reservations for studio=%d: %v", studioID, err)
		return cache.DayInputs{}, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	return cache.DayInputs{
		Window:           window,
		UnavailableTimes: ReservedSlotTimes(reservations),
	}, nil
}
