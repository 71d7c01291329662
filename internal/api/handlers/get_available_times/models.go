package get_available_times

import (
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	getAvailableTimes "github.com/nrgaliy/Studio-BookingService/internal/usecase/get_available_times"
)

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	StudioID    int64   `json:"studioId"`
	Date        string  `json:"date"`
	CurrentTime string  `json:"currentTime"`
	IsToday     bool    `json:"isToday"`
	IsClosed    bool    `json:"isClosed"`
	StartTime   string  `json:"startTime,omitempty"`
	EndTime     string  `json:"endTime,omitempty"`
	Message     *string `json:"message,omitempty"`

	UnavailableSlots []string   `json:"unavailableSlots"`
	Slots            []TimeSlot `json:"slots"`
}

// TimeSlot модель 30-минутного слота
type TimeSlot struct {
	StartTime string `json:"startTime"`
	Status    string `json:"status"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(studioID int64, dateStr string) (*getAvailableTimes.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableTimes.Request{
		StudioID: studioID,
		Date:     date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	slots := make([]TimeSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = TimeSlot{
			StartTime: slot.Time.String(),
			Status:    string(slot.Status),
		}
	}

	unavailable := make([]string, len(resp.UnavailableSlots))
	for i, t := range resp.UnavailableSlots {
		unavailable[i] = t.String()
	}

	return &AvailableTimesResponse{
		StudioID:         resp.StudioID,
		Date:             resp.Date.Format(domain.DateFormat),
		CurrentTime:      resp.CurrentTime.String(),
		IsToday:          resp.IsToday,
		IsClosed:         resp.IsClosed,
		StartTime:        resp.OperatingStartTime.String(),
		EndTime:          resp.OperatingEndTime.String(),
		Message:          resp.Message,
		UnavailableSlots: unavailable,
		Slots:            slots,
	}
}
