package get_studio_reservations

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/internal/service/reservations/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	studioID int64,
	userID int64,
	statusStr string,
	dateStr string,
	startDateStr string,
	endDateStr string,
	includeInactiveStr string,
) (*models.GetStudioReservationsRequest, error) {
	req := &models.GetStudioReservationsRequest{
		UserID:          userID,
		StudioID:        studioID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Одиночная дата и период взаимоисключающие
	if dateStr != "" && (startDateStr != "" || endDateStr != "") {
		return nil, fmt.Errorf("date and startDate/endDate are mutually exclusive")
	}

	// Парсим date если указана (одна дата = период из одного дня)
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	// Парсим период если указан
	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}
	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("endDate is before startDate")
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
