package create_reservation

import (
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	createReservation "github.com/nrgaliy/Studio-BookingService/internal/usecase/create_reservation"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	StudioID      int64    `json:"studioId"`
	Date          string   `json:"date"` // "2026-04-11"
	SelectedTimes []string `json:"selectedTimes"`

	CouponIDs          []string `json:"couponIds,omitempty"`
	AccumulatedMinutes int      `json:"accumulatedMinutes,omitempty"`

	CustomerName   string `json:"customerName"`
	PrivacyConsent bool   `json:"privacyConsent"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64    `json:"id"`
	PublicID      string   `json:"publicId"`
	StudioID      int64    `json:"studioId"`
	CustomerID    int64    `json:"customerId"`
	Date          string   `json:"date"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	TotalHours    float64  `json:"totalHours"`
	BasePrice     int64    `json:"basePrice"`
	FinalPrice    int64    `json:"finalPrice"`
	UsedCouponIDs []string `json:"usedCouponIds,omitempty"`
	UsedMinutes   int      `json:"usedMinutes"`
	CustomerName  string   `json:"customerName"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(customerID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
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

	return &createReservation.Request{
		StudioID:           r.StudioID,
		CustomerID:         customerID,
		Date:               date,
		SelectedTimes:      selected,
		CouponIDs:          r.CouponIDs,
		AccumulatedMinutes: r.AccumulatedMinutes,
		CustomerName:       r.CustomerName,
		PrivacyConsent:     r.PrivacyConsent,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		PublicID:      resp.PublicID,
		StudioID:      resp.StudioID,
		CustomerID:    resp.CustomerID,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		TotalHours:    resp.TotalHours,
		BasePrice:     resp.BasePrice,
		FinalPrice:    resp.FinalPrice,
		UsedCouponIDs: resp.UsedCouponIDs,
		UsedMinutes:   resp.UsedMinutes,
		CustomerName:  resp.CustomerName,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
