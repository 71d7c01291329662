package models

import (
	"errors"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetStudioReservationsRequest запрос на получение бронирований студии
type GetStudioReservationsRequest struct {
	UserID          int64      `json:"userId"`
	StudioID        int64      `json:"studioId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStudioReservationsRequest) ToDomainFilter() (domain.StudioReservationsFilter, error) {
	filter := domain.StudioReservationsFilter{
		StudioID:        r.StudioID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID         int64  `json:"id"`
	PublicID   string `json:"publicId"`
	StudioID   int64  `json:"studioId"`
	CustomerID int64  `json:"customerId"`

	Date       string  `json:"date"`      // "2026-04-11"
	StartTime  string  `json:"startTime"` // "10:00"
	EndTime    string  `json:"endTime"`   // "11:30"
	TotalHours float64 `json:"totalHours"`

	BasePrice  int64 `json:"basePrice"`
	FinalPrice int64 `json:"finalPrice"`

	// Денормализованные данные о применённых скидках
	UsedCouponIDs          []string `json:"usedCouponIds,omitempty"`
	UsedAccumulatedMinutes int      `json:"usedAccumulatedMinutes"`

	CustomerName string `json:"customerName"`
	Status       string `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                     r.ID,
		PublicID:               r.PublicID,
		StudioID:               r.StudioID,
		CustomerID:             r.CustomerID,
		Date:                   r.Date.Format(domain.DateFormat),
		StartTime:              r.StartTime.String(),
		EndTime:                r.EndTime.String(),
		TotalHours:             r.TotalHours,
		BasePrice:              r.BasePrice,
		FinalPrice:             r.FinalPrice,
		UsedCouponIDs:          r.UsedCouponIDs,
		UsedAccumulatedMinutes: r.UsedAccumulatedMinutes,
		CustomerName:           r.CustomerName,
		Status:                 string(r.Status),
		CancellationReason:     r.CancellationReason,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, res := range reservations {
		if resResp := FromDomainReservation(res); resResp != nil {
			resp.Reservations[i] = *resResp
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	// Валидируем статус
	validStatuses := []domain.ReservationStatus{
		domain.StatusConfirmed,
		domain.StatusModified,
		domain.StatusCompleted,
		domain.StatusCancelledByUser,
		domain.StatusCancelledByStudio,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
