package models

import (
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
)

// Request модели

// WeeklyEntryRequest рабочее окно для одного дня недели
type WeeklyEntryRequest struct {
	Weekday   int    `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsClosed  bool   `json:"isClosed"`
}

// UpdateWeeklyScheduleRequest запрос на обновление недельного расписания
// Обновляются только переданные дни недели
type UpdateWeeklyScheduleRequest struct {
	UserID   int64                `json:"userId"`
	StudioID int64                `json:"studioId"`
	Entries  []WeeklyEntryRequest `json:"entries"`
}

// SetOverrideRequest запрос на установку переопределения расписания на дату
type SetOverrideRequest struct {
	UserID    int64   `json:"userId"`
	StudioID  int64   `json:"studioId"`
	Date      string  `json:"date"` // "2026-04-11"
	OpenTime  string  `json:"openTime"`
	CloseTime string  `json:"closeTime"`
	IsClosed  bool    `json:"isClosed"`
	Message   *string `json:"message,omitempty"`
}

// DeleteOverrideRequest запрос на удаление переопределения
type DeleteOverrideRequest struct {
	UserID   int64  `json:"userId"`
	StudioID int64  `json:"studioId"`
	Date     string `json:"date"`
}

// GetScheduleRequest запрос на получение расписания студии
// Date опциональна - если указана, в ответ добавляется переопределение и
// эффективное рабочее окно на эту дату
type GetScheduleRequest struct {
	StudioID int64   `json:"studioId"`
	Date     *string `json:"date,omitempty"`
}

// Response модели

// WeeklyEntryResponse рабочее окно для одного дня недели
type WeeklyEntryResponse struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsClosed  bool   `json:"isClosed"`
}

// OverrideResponse переопределение расписания на конкретную дату
type OverrideResponse struct {
	Date      string  `json:"date"`
	OpenTime  string  `json:"openTime"`
	CloseTime string  `json:"closeTime"`
	IsClosed  bool    `json:"isClosed"`
	Message   *string `json:"message,omitempty"`
}

// WindowResponse эффективное рабочее окно на дату
type WindowResponse struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	IsClosed  bool    `json:"isClosed"`
	Message   *string `json:"message,omitempty"`
}

// ScheduleResponse ответ с расписанием студии
type ScheduleResponse struct {
	StudioID int64                 `json:"studioId"`
	Weekly   []WeeklyEntryResponse `json:"weekly"`
	Override *OverrideResponse     `json:"override,omitempty"`
	Window   *WindowResponse       `json:"window,omitempty"`
}

// Методы конвертации

// FromDomainWeekly конвертирует недельное расписание в DTO
func FromDomainWeekly(entries []*domain.WeeklySchedule) []WeeklyEntryResponse {
	resp := make([]WeeklyEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, WeeklyEntryResponse{
			Weekday:   int(e.Weekday),
			OpenTime:  e.OpenTime.String(),
			CloseTime: e.CloseTime.String(),
			IsClosed:  e.IsClosed,
		})
	}
	return resp
}

// FromDomainOverride конвертирует переопределение в DTO
func FromDomainOverride(o *domain.ScheduleOverride) *OverrideResponse {
	if o == nil {
		return nil
	}
	return &OverrideResponse{
		Date:      o.Date.Format(domain.DateFormat),
		OpenTime:  o.OpenTime.String(),
		CloseTime: o.CloseTime.String(),
		IsClosed:  o.IsClosed,
		Message:   o.Message,
	}
}

// FromDomainWindow конвертирует рабочее окно в DTO
func FromDomainWindow(w domain.OperatingWindow) *WindowResponse {
	return &WindowResponse{
		StartTime: w.Start.String(),
		EndTime:   w.End.String(),
		IsClosed:  w.IsClosed,
		Message:   w.Message,
	}
}

// ParseDate парсит дату в формате domain.DateFormat
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}
