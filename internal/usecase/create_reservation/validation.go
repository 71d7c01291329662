package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/internal/selection"
)

// validateRequest валидирует входные данные запроса и возвращает
// восстановленное состояние выбора
func validateRequest(req *Request) (selection.State, error) {
	if req.CustomerID <= 0 {
		return selection.Empty(), ErrNotAuthenticated
	}

	if req.StudioID <= 0 {
		return selection.Empty(), fmt.Errorf("%w: studioID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return selection.Empty(), fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return selection.Empty(), fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return selection.Empty(), fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if !req.PrivacyConsent {
		return selection.Empty(), ErrConsentRequired
	}

	if req.AccumulatedMinutes < 0 {
		return selection.Empty(), fmt.Errorf("%w: accumulatedMinutes must not be negative", ErrInvalidInput)
	}

	if len(req.SelectedTimes) == 0 {
		return selection.Empty(), ErrEmptySelection
	}

	state, err := selection.FromTimes(req.SelectedTimes)
	if err != nil {
		return selection.Empty(), fmt.Errorf("%w: selected times: %v", ErrInvalidInput, err)
	}

	if !state.IsContiguous() {
		return selection.Empty(), ErrNonContiguous
	}

	if state.Size() > domain.MaxSelectionSlots {
		return selection.Empty(), fmt.Errorf("%w: selection exceeds the maximum bookable duration", ErrInvalidInput)
	}

	return state, nil
}

// validateCutoff проверяет, что до начала брони остался минимальный зазор
func validateCutoff(date time.Time, startMinutes int, now time.Time) error {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location()).
		Add(time.Duration(startMinutes) * time.Minute)

	if start.Sub(now) < domain.CommitCutoffMinutes*time.Minute {
		return ErrCommitCutoff
	}

	return nil
}
