package get_available_times

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func window(t *testing.T, start, end string) domain.OperatingWindow {
	return domain.OperatingWindow{
		Start: mustTime(t, start),
		End:   mustTime(t, end),
	}
}

func statusAt(catalog []domain.TimeSlot, s string) domain.SlotStatus {
	for _, slot := range catalog {
		if slot.Time.String() == s {
			return slot.Status
		}
	}
	return ""
}

func TestBuildCatalog_TodayMarksStartedSlots(t *testing.T) {
	// Студия работает 09:00-22:00, сейчас 10:15, занято 11:00-12:00
	now := time.Date(2026, 4, 10, 10, 15, 0, 0, time.UTC)
	catalog := BuildCatalog(window(t, "09:00", "22:00"), []string{"11:00", "11:30"}, true, now)

	require.Len(t, catalog, domain.SlotsPerDay)

	// Вне окна работы
	assert.Equal(t, domain.SlotUnavailable, statusAt(catalog, "00:00"))
	assert.Equal(t, domain.SlotUnavailable, statusAt(catalog, "08:30"))
	assert.Equal(t, domain.SlotUnavailable, statusAt(catalog, "22:00"))
	assert.Equal(t, domain.SlotUnavailable, statusAt(catalog, "23:30"))

	// Начало слота уже наступило
	assert.Equal(t, domain.SlotUnavailable, statusAt(catalog, "09:00"))
	assert.Equal(t, domain.SlotUnavailable, statusAt(catalog, "10:00"))

	// Ближайший ещё не начавшийся слот доступен
	assert.Equal(t, domain.SlotAvailable, statusAt(catalog, "10:30"))

	// Занято бронированием
	assert.Equal(t, domain.SlotUnavailable, statusAt(catalog, "11:00"))
	assert.Equal(t, domain.SlotUnavailable, statusAt(catalog, "11:30"))

	// После брони снова доступно, последний слот окна — 21:30
	assert.Equal(t, domain.SlotAvailable, statusAt(catalog, "12:00"))
	assert.Equal(t, domain.SlotAvailable, statusAt(catalog, "21:30"))
}

func TestBuildCatalog_SlotStartingNowIsAvailable(t *testing.T) {
	// Ровно 10:30:00 — слот "10:30" ещё не начался в прошлом и остаётся
	// доступным; отсечка по моменту старта действует при создании брони
	now := time.Date(2026, 4, 10, 10, 30, 0, 0, time.UTC)
	catalog := BuildCatalog(window(t, "09:00", "22:00"), nil, true, now)

	assert.Equal(t, domain.SlotAvailable, statusAt(catalog, "10:30"))
	assert.Equal(t, domain.SlotUnavailable, statusAt(catalog, "10:00"))
}

func TestBuildCatalog_FutureDateIgnoresCurrentTime(t *testing.T) {
	now := time.Date(2026, 4, 10, 23, 59, 0, 0, time.UTC)
	catalog := BuildCatalog(window(t, "09:00", "22:00"), nil, false, now)

	assert.Equal(t, domain.SlotAvailable, statusAt(catalog, "09:00"))
	assert.Equal(t, domain.SlotAvailable, statusAt(catalog, "21:30"))
}

func TestBuildCatalog_ClosedDay(t *testing.T) {
	now := time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC)
	catalog := BuildCatalog(domain.OperatingWindow{IsClosed: true}, nil, false, now)

	for _, slot := range catalog {
		assert.Equal(t, domain.SlotUnavailable, slot.Status)
	}
}

func TestBuildCatalog_SlotStartingExactlyNowIsUnavailable(t *testing.T) {
	now := time.Date(2026, 4, 10, 10, 30, 0, 0, time.UTC)
	catalog := BuildCatalog(window(t, "09:00", "22:00"), nil, true, now)

	assert.Equal(t, domain.SlotUnavailable, statusAt(catalog, "10:30"))
	assert.Equal(t, domain.SlotAvailable, statusAt(catalog, "11:00"))
}

func TestReservedSlotTimes(t *testing.T) {
	reservations := []*domain.Reservation{
		{StartTime: mustTime(t, "11:00"), EndTime: mustTime(t, "12:30")},
		{StartTime: mustTime(t, "15:00"), EndTime: mustTime(t, "15:30")},
	}

	times := ReservedSlotTimes(reservations)
	assert.Equal(t, []string{"11:00", "11:30", "12:00", "15:00"}, times)
}

func TestReservedSlotTimes_EndOfDay(t *testing.T) {
	reservations := []*domain.Reservation{
		{StartTime: mustTime(t, "23:00"), EndTime: mustTime(t, "24:00")},
	}

	times := ReservedSlotTimes(reservations)
	assert.Equal(t, []string{"23:00", "23:30"}, times)
}
