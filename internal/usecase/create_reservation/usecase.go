package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	reservationRepo "github.com/nrgaliy/Studio-BookingService/internal/infra/storage/reservation"
	rewardsClient "github.com/nrgaliy/Studio-BookingService/internal/integrations/rewards"
	"github.com/nrgaliy/Studio-BookingService/internal/pricing"
	"github.com/nrgaliy/Studio-BookingService/internal/selection"
	"github.com/nrgaliy/Studio-BookingService/pkg/saga"
)

// UseCase use case создания бронирования.
//
// Протокол коммита:
//  1. локальные проверки (аутентификация, непрерывность выбора, согласие);
//  2. вставка записи в сериализуемой транзакции с блокировкой занятых
//     слотов (FOR UPDATE) и exclusion constraint'ом как страховкой;
//  3. списание скидок отдельными шагами саги: неуспех любого шага
//     компенсирует предыдущие (возврат купонов, удаление записи).
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	rewardsClient   RewardsClient
	txManager       TransactionManager
	invalidator     CatalogInvalidator
	notifications   NotificationEnqueuer
	hourlyRate      int64
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepository ReservationRepository,
	scheduleRepo ScheduleRepository,
	rewardsClient RewardsClient,
	txManager TransactionManager,
	invalidator CatalogInvalidator,
	notifications NotificationEnqueuer,
	hourlyRate int64,
	logger Logger,
) *UseCase {
	if hourlyRate <= 0 {
		hourlyRate = domain.DefaultHourlyRate
	}
	return &UseCase{
		reservationRepo: reservationRepository,
		scheduleRepo:    scheduleRepo,
		rewardsClient:   rewardsClient,
		txManager:       txManager,
		invalidator:     invalidator,
		notifications:   notifications,
		hourlyRate:      hourlyRate,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: customer=%d, studio=%d, date=%s, slots=%d",
		req.CustomerID, req.StudioID, req.Date.Format(domain.DateFormat), len(req.SelectedTimes))

	// 1. Валидация входных данных и восстановление выбора
	state, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	summary, _ := selection.Summarize(state, uc.hourlyRate)
	durationMinutes := state.Size() * domain.SlotDurationMinutes

	// 2. Проверяем зазор до начала брони
	if err := validateCutoff(req.Date, summary.StartTime.Minutes(), now); err != nil {
		uc.logger.Warn("CreateReservation: cutoff check failed for customer=%d: %v", req.CustomerID, err)
		return nil, err
	}

	// 3. Считаем цену; запрошенные скидки зажимаются по актуальному снапшоту
	quote, err := uc.resolveQuote(ctx, req, durationMinutes)
	if err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		PublicID:               uuid.NewString(),
		StudioID:               req.StudioID,
		CustomerID:             req.CustomerID,
		Date:                   req.Date,
		StartTime:              summary.StartTime,
		EndTime:                summary.EndTime,
		TotalHours:             summary.DurationHours,
		BasePrice:              quote.BasePrice,
		FinalPrice:             quote.FinalPrice,
		UsedCouponIDs:          quote.Selection.CouponIDs,
		UsedAccumulatedMinutes: quote.Selection.AccumulatedMinutes,
		CustomerName:           req.CustomerName,
		Status:                 domain.StatusConfirmed,
	}

	// 4. Выполняем коммит сагой: запись, купоны, минуты
	if err := uc.commit(ctx, req, state, res); err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d public_id=%s", res.ID, res.PublicID)

	// 5. Пост-обработка: инвалидация каталога и уведомление.
	// Ошибки здесь не отменяют созданную бронь.
	dateStr := req.Date.Format(domain.DateFormat)
	uc.invalidator.Invalidate(ctx, req.StudioID, dateStr)

	if err := uc.notifications.EnqueueReservationConfirmed(ctx, res); err != nil {
		uc.logger.Error("CreateReservation: failed to enqueue notification for reservation=%s: %v", res.PublicID, err)
	}

	return &Response{
		ID:            res.ID,
		PublicID:      res.PublicID,
		StudioID:      res.StudioID,
		CustomerID:    res.CustomerID,
		Date:          res.Date,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		TotalHours:    res.TotalHours,
		BasePrice:     res.BasePrice,
		FinalPrice:    res.FinalPrice,
		UsedCouponIDs: res.UsedCouponIDs,
		UsedMinutes:   res.UsedAccumulatedMinutes,
		CustomerName:  res.CustomerName,
		Status:        string(res.Status),
		CreatedAt:     res.CreatedAt,
	}, nil
}

// resolveQuote получает снапшот скидок и считает итоговую цену.
// На пути коммита чтение снапшота не деградирует: клиент, запросивший
// скидки, не должен молча заплатить полную цену.
func (uc *UseCase) resolveQuote(ctx context.Context, req *Request, durationMinutes int) (pricing.Quote, error) {
	requested := domain.DiscountSelection{
		AccumulatedMinutes: req.AccumulatedMinutes,
		CouponIDs:          req.CouponIDs,
	}

	eligibility := domain.DiscountEligibility{}
	if !requested.IsEmpty() {
		var err error
		eligibility, err = uc.rewardsClient.GetEligibility(ctx, req.CustomerID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get eligibility for customer=%d: %v", req.CustomerID, err)
			return pricing.Quote{}, fmt.Errorf("%w: failed to get discount eligibility: %v", ErrInternal, err)
		}
	}

	return pricing.Calculate(durationMinutes, uc.hourlyRate, eligibility, requested, uc.timeProvider.Now()), nil
}

// commit выполняет шаги коммита сагой с компенсациями
func (uc *UseCase) commit(ctx context.Context, req *Request, state selection.State, res *domain.Reservation) error {
	couponKey := uuid.NewString()
	minutesKey := uuid.NewString()

	s := saga.New("create-reservation", uc.logger).
		AddStep(saga.Step{
			Name: "insert-reservation",
			Run: func(ctx context.Context) error {
				return uc.insertReservation(ctx, req, state, res)
			},
			Compensate: func(ctx context.Context) error {
				return uc.reservationRepo.Delete(ctx, res.ID)
			},
		})

	if len(res.UsedCouponIDs) > 0 {
		s.AddStep(saga.Step{
			Name: "consume-coupons",
			Run: func(ctx context.Context) error {
				return uc.mapRewardsError(uc.rewardsClient.ConsumeCoupons(ctx, req.CustomerID, res.UsedCouponIDs, couponKey))
			},
			Compensate: func(ctx context.Context) error {
				return uc.rewardsClient.ReleaseCoupons(ctx, req.CustomerID, res.UsedCouponIDs, couponKey)
			},
		})
	}

	if res.UsedAccumulatedMinutes > 0 {
		s.AddStep(saga.Step{
			Name: "deduct-minutes",
			Run: func(ctx context.Context) error {
				return uc.mapRewardsError(uc.rewardsClient.DeductMinutes(ctx, req.CustomerID, res.UsedAccumulatedMinutes, minutesKey))
			},
		})
	}

	if err := s.Execute(ctx); err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict),
			errors.Is(err, ErrStudioClosed),
			errors.Is(err, ErrBusinessRule),
			errors.Is(err, ErrDiscountConflict),
			errors.Is(err, ErrInvalidInput):
			return err
		default:
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return nil
}

// insertReservation вставляет запись в сериализуемой транзакции,
// предварительно перепроверив окно работы и занятость слотов под блокировкой
func (uc *UseCase) insertReservation(ctx context.Context, req *Request, state selection.State, res *domain.Reservation) error {
	return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Окно работы студии
		window, err := uc.scheduleRepo.GetWindowForDate(txCtx, req.StudioID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get operating window: %v", err)
			return fmt.Errorf("%w: failed to get operating window: %v", ErrInternal, err)
		}

		for _, t := range state.Times() {
			if !window.Contains(t) {
				uc.logger.Warn("CreateReservation: slot %s is outside the operating window", t)
				return ErrStudioClosed
			}
		}

		// Активные брони на дату с блокировкой строк (FOR UPDATE)
		filter := domain.StudioReservationsFilter{
			StudioID:  req.StudioID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}

		existing, err := uc.reservationRepo.GetByStudioWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get existing reservations: %v", err)
			return fmt.Errorf("%w: failed to get existing reservations: %v", ErrInternal, err)
		}

		if overlaps(state, existing) {
			uc.logger.Warn("CreateReservation: selected range overlaps an existing reservation")
			return ErrSlotConflict
		}

		created, err := uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			return uc.mapRepoError(err)
		}

		*res = *created
		return nil
	})
}

// overlaps проверяет пересечение выбора с существующими активными бронями
func overlaps(state selection.State, existing []*domain.Reservation) bool {
	occupied := make(map[int]bool)
	for _, r := range existing {
		start := r.StartTime.Minutes() / domain.SlotDurationMinutes
		end := r.EndTime.Minutes() / domain.SlotDurationMinutes
		for i := start; i < end; i++ {
			occupied[i] = true
		}
	}

	for _, t := range state.Times() {
		if occupied[domain.SlotIndex(t)] {
			return true
		}
	}
	return false
}

// mapRepoError транслирует ошибки репозитория в ошибки usecase
func (uc *UseCase) mapRepoError(err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrSlotConflict):
		uc.logger.Warn("CreateReservation: insert rejected by range constraint: %v", err)
		return ErrSlotConflict
	case errors.Is(err, reservationRepo.ErrBusinessRule):
		uc.logger.Warn("CreateReservation: insert rejected by database rule: %v", err)
		return fmt.Errorf("%w: %v", ErrBusinessRule, err)
	case errors.Is(err, reservationRepo.ErrConstraintViolation):
		uc.logger.Warn("CreateReservation: insert violates a constraint: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}
}

// mapRewardsError транслирует ошибки скидочного сервиса в ошибки usecase
func (uc *UseCase) mapRewardsError(err error) error {
	if err == nil {
		return nil
	}
	// Потраченный купон и нехватка минут — конфликт выбора скидок,
	// остальное — транзиентные сбои
	if errors.Is(err, rewardsClient.ErrCouponNotFound) || errors.Is(err, rewardsClient.ErrInsufficientMinutes) {
		return fmt.Errorf("%w: %v", ErrDiscountConflict, err)
	}
	return err
}
