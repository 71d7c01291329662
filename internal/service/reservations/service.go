package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	reservationRepo "github.com/nrgaliy/Studio-BookingService/internal/infra/storage/reservation"
	"github.com/nrgaliy/Studio-BookingService/internal/service/reservations/models"
)

// Service сервис для работы с существующими бронированиями
type Service struct {
	reservationRepo ReservationRepository
	staffRepo       StaffRepository
	invalidator     CatalogInvalidator
	enqueuer        NotificationEnqueuer
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	staffRepo StaffRepository,
	invalidator CatalogInvalidator,
	enqueuer NotificationEnqueuer,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		staffRepo:       staffRepo,
		invalidator:     invalidator,
		enqueuer:        enqueuer,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является сотрудником студии
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, res, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.ReservationStatus
	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByCustomerID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetStudioReservations получает бронирования студии с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых бронирований
// Доступно только сотрудникам студии
//
// Примеры использования:
// - Все активные бронирования: GetStudioReservations(ctx, &GetStudioReservationsRequest{StudioID: 123, UserID: 456})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Бронирования за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetStudioReservations(ctx context.Context, req *models.GetStudioReservationsRequest) (*models.ReservationListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetStudioReservations: fetching reservations for studio=%d, user=%d", req.StudioID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа сотрудника
	if err := s.checkStaffAccess(ctx, req.StudioID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStudioReservations: invalid filter for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	reservations, err := s.reservationRepo.GetByStudioWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStudioReservations: repository error for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: GetStudioReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudioReservations: successfully fetched %d reservations for studio=%d", len(reservations), req.StudioID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование (cancelled_by_user)
// Сотрудник может отменить любое бронирование студии (cancelled_by_studio)
// После отмены слоты снова доступны - инвалидируем кэш каталога
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	// Получаем бронирование
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, res.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.ReservationStatus

	// Проверяем, является ли пользователь владельцем бронирования
	if res.CustomerID == req.UserID {
		cancelStatus = domain.StatusCancelledByUser
	} else {
		// Проверяем, является ли пользователь сотрудником студии
		if err := s.checkStaffAccess(ctx, res.StudioID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByStudio
	}

	// Отменяем бронирование
	if err := s.reservationRepo.Cancel(ctx, reservationID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Слоты освободились - инвалидируем кэш каталога на эту дату
	s.invalidator.Invalidate(ctx, res.StudioID, res.Date.Format(domain.DateFormat))

	// Ставим уведомление об отмене в очередь
	// Ошибка постановки не откатывает отмену - только логируем
	res.Status = cancelStatus
	if err := s.enqueuer.EnqueueReservationCancelled(ctx, res); err != nil {
		s.logger.Error("Cancel: failed to enqueue cancellation notification for reservation id=%d: %v", reservationID, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d with status=%s", reservationID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только сотрудникам студии
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	// Получаем бронирование
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только сотрудник студии)
	if err := s.checkStaffAccess(ctx, res.StudioID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Переход между активным и неактивным статусом меняет занятость слотов
	if res.IsActive() != statusIsActive(newStatus) {
		s.invalidator.Invalidate(ctx, res.StudioID, res.Date.Format(domain.DateFormat))
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или если он сотрудник студии
func (s *Service) checkUserAccess(ctx context.Context, res *domain.Reservation, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if res.CustomerID == userID {
		return nil
	}

	// Проверяем, является ли пользователь сотрудником студии
	if err := s.checkStaffAccess(ctx, res.StudioID, userID); err != nil {
		// Ошибка уже залогирована в checkStaffAccess
		return ErrAccessDenied
	}

	return nil
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

func statusIsActive(status domain.ReservationStatus) bool {
	return status != domain.StatusCancelledByUser && status != domain.StatusCancelledByStudio
}
