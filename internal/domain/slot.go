package domain

import "github.com/nrgaliy/Studio-BookingService/pkg/types"

// SlotStatus availability of a single 30-minute slot
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotUnavailable SlotStatus = "unavailable"
)

// TimeSlot represents one fixed 30-minute interval of a calendar date,
// identified by its start time
type TimeSlot struct {
	Time   types.TimeString
	Status SlotStatus
}

// IsAvailable returns true if the slot can be selected
func (s TimeSlot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// Index returns the slot's position in the day grid (0..47), or -1
// for times not aligned to the 30-minute cadence
func (s TimeSlot) Index() int {
	return SlotIndex(s.Time)
}

// SlotIndex converts a slot start time to its day-grid position (0..47).
// Returns -1 for invalid or unaligned times.
func SlotIndex(t types.TimeString) int {
	minutes := t.Minutes()
	if minutes < 0 || minutes >= MinutesPerDay || minutes%SlotDurationMinutes != 0 {
		return -1
	}
	return minutes / SlotDurationMinutes
}

// SlotTime converts a day-grid position back to the slot start time.
// The index must be in [0, SlotsPerDay).
func SlotTime(index int) types.TimeString {
	minutes := index * SlotDurationMinutes
	t, _ := types.NewTimeStringFromMinutes(minutes)
	return t
}
