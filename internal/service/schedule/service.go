package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	scheduleRepo "github.com/nrgaliy/Studio-BookingService/internal/infra/storage/schedule"
	"github.com/nrgaliy/Studio-BookingService/internal/service/schedule/models"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// invalidationHorizonDays - на сколько дней вперёд инвалидируется кэш каталога
// при изменении недельного расписания. Кэш хранит только недавно запрошенные
// даты, поэтому горизонта в четыре недели достаточно.
const invalidationHorizonDays = 28

// Service сервис для работы с расписанием студий
type Service struct {
	scheduleRepo ScheduleRepository
	staffRepo    StaffRepository
	invalidator  CatalogInvalidator
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	staffRepo StaffRepository,
	invalidator CatalogInvalidator,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	if timeProvider == nil {
		timeProvider = RealTimeProvider{}
	}
	return &Service{
		scheduleRepo: scheduleRepo,
		staffRepo:    staffRepo,
		invalidator:  invalidator,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetSchedule получает расписание студии
// Публичный метод - доступен всем
// Если указана дата, в ответ добавляется переопределение на эту дату (если есть)
// и эффективное рабочее окно
func (s *Service) GetSchedule(ctx context.Context, req *models.GetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for studio=%d, date=%v", req.StudioID, req.Date)

	if req.StudioID <= 0 {
		return nil, fmt.Errorf("%w: studio id is required", ErrInvalidInput)
	}

	weekly, err := s.scheduleRepo.GetWeeklyByStudio(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetSchedule: schedule for studio=%d not found", req.StudioID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetSchedule: repository error for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	resp := &models.ScheduleResponse{
		StudioID: req.StudioID,
		Weekly:   models.FromDomainWeekly(weekly),
	}

	if req.Date != nil {
		date, err := models.ParseDate(*req.Date)
		if err != nil {
			s.logger.Warn("GetSchedule: invalid date=%s for studio=%d", *req.Date, req.StudioID)
			return nil, fmt.Errorf("%w: invalid date format", ErrInvalidInput)
		}

		override, err := s.scheduleRepo.GetOverride(ctx, req.StudioID, date)
		if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			s.logger.Error("GetSchedule: failed to fetch override for studio=%d date=%s: %v", req.StudioID, *req.Date, err)
			return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
		}

		resp.Override = models.FromDomainOverride(override)
		resp.Window = models.FromDomainWindow(effectiveWindow(weekly, override, date))
	}

	s.logger.Info("GetSchedule: successfully fetched schedule for studio=%d, %d weekly entries", req.StudioID, len(resp.Weekly))
	return resp, nil
}

// UpdateWeekly обновляет недельное расписание студии
// Доступно только сотрудникам студии
// Обновляются только переданные дни недели
func (s *Service) UpdateWeekly(ctx context.Context, req *models.UpdateWeeklyScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateWeekly: updating schedule for studio=%d by user=%d, %d entries",
		req.StudioID, req.UserID, len(req.Entries))

	// 1. Валидируем входные данные
	if req.StudioID <= 0 {
		return nil, fmt.Errorf("%w: studio id is required", ErrInvalidInput)
	}
	if len(req.Entries) == 0 {
		return nil, fmt.Errorf("%w: at least one weekly entry is required", ErrInvalidInput)
	}

	// 2. Проверяем права доступа (только сотрудник студии)
	if err := s.checkStaffAccess(ctx, req.StudioID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Валидируем и применяем каждую запись
	updatedWeekdays := make(map[time.Weekday]bool, len(req.Entries))
	for _, entry := range req.Entries {
		if entry.Weekday < 0 || entry.Weekday > 6 {
			s.logger.Warn("UpdateWeekly: invalid weekday=%d for studio=%d", entry.Weekday, req.StudioID)
			return nil, fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
		}

		open, closeTime, err := s.validateWindow(entry.OpenTime, entry.CloseTime, entry.IsClosed)
		if err != nil {
			s.logger.Warn("UpdateWeekly: invalid window for studio=%d weekday=%d: %v", req.StudioID, entry.Weekday, err)
			return nil, err
		}

		_, err = s.scheduleRepo.UpsertWeekly(ctx, &domain.WeeklySchedule{
			StudioID:  req.StudioID,
			Weekday:   time.Weekday(entry.Weekday),
			OpenTime:  open,
			CloseTime: closeTime,
			IsClosed:  entry.IsClosed,
		})
		if err != nil {
			s.logger.Error("UpdateWeekly: repository error for studio=%d weekday=%d: %v", req.StudioID, entry.Weekday, err)
			return nil, fmt.Errorf("%w: UpdateWeekly - repository error: %v", ErrInternal, err)
		}

		updatedWeekdays[time.Weekday(entry.Weekday)] = true
	}

	// 4. Инвалидируем кэш каталога на затронутые дни недели в пределах горизонта
	s.invalidateWeekdays(ctx, req.StudioID, updatedWeekdays)

	s.logger.Info("UpdateWeekly: successfully updated schedule for studio=%d", req.StudioID)
	return s.GetSchedule(ctx, &models.GetScheduleRequest{StudioID: req.StudioID})
}

// SetOverride устанавливает переопределение расписания на конкретную дату
// Доступно только сотрудникам студии
func (s *Service) SetOverride(ctx context.Context, req *models.SetOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("SetOverride: setting override for studio=%d date=%s by user=%d",
		req.StudioID, req.Date, req.UserID)

	// 1. Валидируем входные данные
	if req.StudioID <= 0 {
		return nil, fmt.Errorf("%w: studio id is required", ErrInvalidInput)
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("SetOverride: invalid date=%s for studio=%d", req.Date, req.StudioID)
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	}

	// 2. Проверяем права доступа (только сотрудник студии)
	if err := s.checkStaffAccess(ctx, req.StudioID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Валидируем рабочее окно
	open, closeTime, err := s.validateWindow(req.OpenTime, req.CloseTime, req.IsClosed)
	if err != nil {
		s.logger.Warn("SetOverride: invalid window for studio=%d date=%s: %v", req.StudioID, req.Date, err)
		return nil, err
	}

	// 4. Сохраняем переопределение
	override, err := s.scheduleRepo.UpsertOverride(ctx, &domain.ScheduleOverride{
		StudioID:  req.StudioID,
		Date:      date,
		OpenTime:  open,
		CloseTime: closeTime,
		IsClosed:  req.IsClosed,
		Message:   req.Message,
	})
	if err != nil {
		s.logger.Error("SetOverride: repository error for studio=%d date=%s: %v", req.StudioID, req.Date, err)
		return nil, fmt.Errorf("%w: SetOverride - repository error: %v", ErrInternal, err)
	}

	// 5. Инвалидируем кэш каталога на эту дату
	s.invalidator.Invalidate(ctx, req.StudioID, req.Date)

	s.logger.Info("SetOverride: successfully set override for studio=%d date=%s", req.StudioID, req.Date)
	return models.FromDomainOverride(override), nil
}

// DeleteOverride удаляет переопределение расписания на дату
// Доступно только сотрудникам студии
func (s *Service) DeleteOverride(ctx context.Context, req *models.DeleteOverrideRequest) error {
	s.logger.Info("DeleteOverride: deleting override for studio=%d date=%s by user=%d",
		req.StudioID, req.Date, req.UserID)

	date, err := models.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("DeleteOverride: invalid date=%s for studio=%d", req.Date, req.StudioID)
		return fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	}

	// Проверяем права доступа (только сотрудник студии)
	if err := s.checkStaffAccess(ctx, req.StudioID, req.UserID); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteOverride(ctx, req.StudioID, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override for studio=%d date=%s not found", req.StudioID, req.Date)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error for studio=%d date=%s: %v", req.StudioID, req.Date, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	// Инвалидируем кэш каталога на эту дату
	s.invalidator.Invalidate(ctx, req.StudioID, req.Date)

	s.logger.Info("DeleteOverride: successfully deleted override for studio=%d date=%s", req.StudioID, req.Date)
	return nil
}

// Вспомогательные методы

// validateWindow валидирует рабочее окно и парсит его границы
// Окно должно быть выровнено по 30-минутной сетке, начало строго раньше конца,
// конец не позже 24:00
func (s *Service) validateWindow(openTime, closeTime string, isClosed bool) (types.TimeString, types.TimeString, error) {
	// Для закрытого дня рабочее окно не требуется
	if isClosed && openTime == "" && closeTime == "" {
		return "", "", nil
	}

	open, err := types.NewTimeStringFromString(openTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid open time: %v", ErrInvalidInput, err)
	}
	closeTS, err := types.NewTimeStringFromString(closeTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid close time: %v", ErrInvalidInput, err)
	}

	if open.Minutes()%30 != 0 || closeTS.Minutes()%30 != 0 {
		return "", "", fmt.Errorf("%w: operating window must be aligned to 30-minute grid", ErrInvalidTimeRange)
	}
	if !open.IsBefore(closeTS) {
		return "", "", fmt.Errorf("%w: open time must be before close time", ErrInvalidTimeRange)
	}
	if closeTS.Minutes() > 24*60 {
		return "", "", fmt.Errorf("%w: close time must not be later than 24:00", ErrInvalidTimeRange)
	}

	return open, closeTS, nil
}

// invalidateWeekdays инвалидирует кэш каталога на даты затронутых дней недели
// в пределах горизонта invalidationHorizonDays
func (s *Service) invalidateWeekdays(ctx context.Context, studioID int64, weekdays map[time.Weekday]bool) {
	today := s.timeProvider.Now()
	for i := 0; i < invalidationHorizonDays; i++ {
		date := today.AddDate(0, 0, i)
		if weekdays[date.Weekday()] {
			s.invalidator.Invalidate(ctx, studioID, date.Format(domain.DateFormat))
		}
	}
}

// checkStaffAccess проверяет, что пользователь является сотрудником студии
func (s *Service) checkStaffAccess(ctx context.Context, studioID int64, userID int64) error {
	isStaff, err := s.staffRepo.IsStaff(ctx, studioID, userID)
	if err != nil {
		s.logger.Error("checkStaffAccess: failed to check staff for studio=%d user=%d: %v", studioID, userID, err)
		return fmt.Errorf("%w: checkStaffAccess - repository error: %v", ErrInternal, err)
	}

	if !isStaff {
		s.logger.Warn("checkStaffAccess: user=%d is not staff of studio=%d", userID, studioID)
		return ErrAccessDenied
	}

	return nil
}

// effectiveWindow вычисляет рабочее окно на дату: переопределение имеет
// приоритет над недельным расписанием, отсутствие записи означает закрытый день
func effectiveWindow(weekly []*domain.WeeklySchedule, override *domain.ScheduleOverride, date time.Time) domain.OperatingWindow {
	if override != nil {
		return override.Window()
	}
	for _, e := range weekly {
		if e.Weekday == date.Weekday() {
			return e.Window()
		}
	}
	return domain.OperatingWindow{IsClosed: true}
}
