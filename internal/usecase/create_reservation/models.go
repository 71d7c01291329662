package create_reservation

import (
	"time"

	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// Request модель запроса создания бронирования
type Request struct {
	StudioID   int64
	CustomerID int64 // 0 — клиент не аутентифицирован
	Date       time.Time

	// SelectedTimes стартовые времена выбранных слотов; должны образовывать
	// один непрерывный диапазон
	SelectedTimes []types.TimeString

	// Запрошенные скидки
	CouponIDs          []string
	AccumulatedMinutes int

	CustomerName   string
	PrivacyConsent bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	PublicID      string
	StudioID      int64
	CustomerID    int64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	TotalHours    float64
	BasePrice     int64
	FinalPrice    int64
	UsedCouponIDs []string
	UsedMinutes   int
	CustomerName  string
	Status        string
	CreatedAt     time.Time
}
