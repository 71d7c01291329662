package update_schedule

import (
	"github.com/nrgaliy/Studio-BookingService/internal/service/schedule/models"
)

// WeeklyEntry рабочее окно для одного дня недели
type WeeklyEntry struct {
	Weekday   int    `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsClosed  bool   `json:"isClosed"`
}

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Entries []WeeklyEntry `json:"entries"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(studioID, userID int64) *models.UpdateWeeklyScheduleRequest {
	entries := make([]models.WeeklyEntryRequest, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = models.WeeklyEntryRequest{
			Weekday:   e.Weekday,
			OpenTime:  e.OpenTime,
			CloseTime: e.CloseTime,
			IsClosed:  e.IsClosed,
		}
	}

	return &models.UpdateWeeklyScheduleRequest{
		UserID:   userID,
		StudioID: studioID,
		Entries:  entries,
	}
}
