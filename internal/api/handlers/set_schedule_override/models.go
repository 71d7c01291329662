package set_schedule_override

import (
	"github.com/nrgaliy/Studio-BookingService/internal/service/schedule/models"
)

// SetOverrideRequest HTTP request model
type SetOverrideRequest struct {
	OpenTime  string  `json:"openTime,omitempty"`
	CloseTime string  `json:"closeTime,omitempty"`
	IsClosed  bool    `json:"isClosed"`
	Message   *string `json:"message,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetOverrideRequest) ToServiceRequest(studioID, userID int64, date string) *models.SetOverrideRequest {
	return &models.SetOverrideRequest{
		UserID:    userID,
		StudioID:  studioID,
		Date:      date,
		OpenTime:  r.OpenTime,
		CloseTime: r.CloseTime,
		IsClosed:  r.IsClosed,
		Message:   r.Message,
	}
}
