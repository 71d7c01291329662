package domain

import (
	"time"

	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed          ReservationStatus = "confirmed"
	StatusModified           ReservationStatus = "modified"
	StatusCompleted          ReservationStatus = "completed"
	StatusCancelledByUser    ReservationStatus = "cancelled_by_user"
	StatusCancelledByStudio  ReservationStatus = "cancelled_by_studio"
)

// Reservation represents a committed booking of the studio for a
// contiguous range of 30-minute slots on one calendar date
type Reservation struct {
	ID         int64
	PublicID   string // внешний идентификатор (UUID), используется в уведомлениях
	StudioID   int64
	CustomerID int64

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString // exclusive
	TotalHours float64

	BasePrice  int64
	FinalPrice int64

	// Denormalized discount data for history
	UsedCouponIDs          []string
	UsedAccumulatedMinutes int

	// Customer-entered fields captured at commit
	CustomerName string

	Status ReservationStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its time range
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelledByUser && r.Status != StatusCancelledByStudio
}

// CanBeCancelled returns true if the reservation can be cancelled.
// Only confirmed or modified reservations can be changed or cancelled.
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed || r.Status == StatusModified
}

// CanBeUpdated returns true if the reservation can be updated
func (r *Reservation) CanBeUpdated() bool {
	return r.Status == StatusConfirmed || r.Status == StatusModified
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByUser || r.Status == StatusCancelledByStudio
}

// DurationMinutes returns the booked duration in minutes
func (r *Reservation) DurationMinutes() int {
	return r.EndTime.Minutes() - r.StartTime.Minutes()
}

// StudioReservationsFilter фильтр для получения бронирований студии
type StudioReservationsFilter struct {
	StudioID        int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые бронирования
}
