package get_available_times

import (
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// BuildCatalog строит полную сетку из 48 слотов на день.
//
// Статус каждого слота определяется правилами в порядке убывания приоритета:
//  1. студия закрыта в этот день — слот недоступен;
//  2. слот вне окна работы студии — недоступен;
//  3. слот занят активным бронированием — недоступен;
//  4. для сегодняшней даты слот, начало которого уже наступило, — недоступен;
//  5. иначе слот доступен.
func BuildCatalog(window domain.OperatingWindow, reservedTimes []string, isToday bool, now time.Time) []domain.TimeSlot {
	reserved := make(map[int]bool, len(reservedTimes))
	for _, raw := range reservedTimes {
		t, err := types.NewTimeStringFromString(raw)
		if err != nil {
			continue
		}
		if idx := domain.SlotIndex(t); idx >= 0 {
			reserved[idx] = true
		}
	}

	nowMinutes := now.Hour()*60 + now.Minute()

	catalog := make([]domain.TimeSlot, domain.SlotsPerDay)
	for idx := 0; idx < domain.SlotsPerDay; idx++ {
		t := domain.SlotTime(idx)
		catalog[idx] = domain.TimeSlot{Time: t, Status: slotStatus(t, window, reserved[idx], isToday, nowMinutes)}
	}

	return catalog
}

func slotStatus(t types.TimeString, window domain.OperatingWindow, reserved, isToday bool, nowMinutes int) domain.SlotStatus {
	if window.IsClosed {
		return domain.SlotUnavailable
	}
	if !window.Contains(t) {
		return domain.SlotUnavailable
	}
	if reserved {
		return domain.SlotUnavailable
	}
	// Слот с уже прошедшим началом недоступен. Слот, начинающийся прямо
	// сейчас, остаётся доступным: отсечку по времени старта проверяет
	// создание брони.
	if isToday && t.Minutes() < nowMinutes {
		return domain.SlotUnavailable
	}
	return domain.SlotAvailable
}

// ReservedSlotTimes разворачивает активные бронирования в стартовые
// времена занятых слотов
func ReservedSlotTimes(reservations []*domain.Reservation) []string {
	times := make([]string, 0, len(reservations)*2)
	for _, res := range reservations {
		start := res.StartTime.Minutes()
		end := res.EndTime.Minutes()
		for m := start; m < end; m += domain.SlotDurationMinutes {
			t, err := types.NewTimeStringFromMinutes(m)
			if err != nil {
				break
			}
			times = append(times, t.String())
		}
	}
	return times
}
