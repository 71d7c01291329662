package click_selection

import (
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	clickSelection "github.com/nrgaliy/Studio-BookingService/internal/usecase/click_selection"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// ClickSelectionRequest HTTP request model
type ClickSelectionRequest struct {
	StudioID      int64    `json:"studioId"`
	Date          string   `json:"date"` // "2026-04-11"
	SelectedTimes []string `json:"selectedTimes"`
	ClickedTime   string   `json:"clickedTime"` // "10:00"
}

// SelectionSummary производные характеристики выбора
type SelectionSummary struct {
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	DurationHours float64 `json:"durationHours"`
	BasePrice     int64   `json:"basePrice"`
}

// ClickSelectionResponse HTTP response model
type ClickSelectionResponse struct {
	SelectedTimes []string          `json:"selectedTimes"`
	Summary       *SelectionSummary `json:"summary,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ClickSelectionRequest) ToUseCaseRequest() (*clickSelection.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	clicked, err := types.NewTimeStringFromString(r.ClickedTime)
	if err != nil {
		return nil, err
	}

	selected := make([]types.TimeString, 0, len(r.SelectedTimes))
	for _, s := range r.SelectedTimes {
		t, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, err
		}
		selected = append(selected, t)
	}

	return &clickSelection.Request{
		StudioID:      r.StudioID,
		Date:          date,
		SelectedTimes: selected,
		ClickedTime:   clicked,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *clickSelection.Response) *ClickSelectionResponse {
	selected := make([]string, len(resp.SelectedTimes))
	for i, t := range resp.SelectedTimes {
		selected[i] = t.String()
	}

	out := &ClickSelectionResponse{
		SelectedTimes: selected,
	}

	if resp.Summary != nil {
		out.Summary = &SelectionSummary{
			StartTime:     resp.Summary.StartTime.String(),
			EndTime:       resp.Summary.EndTime.String(),
			DurationHours: resp.Summary.DurationHours,
			BasePrice:     resp.Summary.BasePrice,
		}
	}

	return out
}
