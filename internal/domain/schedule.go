package domain

import (
	"time"

	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// OperatingWindow describes the bookable hours of the studio for one
// calendar date. A holiday override may close the studio entirely and
// carry a message shown to customers.
type OperatingWindow struct {
	Start    types.TimeString
	End      types.TimeString // exclusive
	IsClosed bool
	Message  *string
}

// Contains returns true if the slot starting at t lies inside the window
func (w OperatingWindow) Contains(t types.TimeString) bool {
	if w.IsClosed {
		return false
	}
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

// WeeklySchedule regular operating hours of the studio, one entry per weekday
type WeeklySchedule struct {
	ID        int64
	StudioID  int64
	Weekday   time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsClosed  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleOverride per-date override of the regular hours (holiday, short day)
type ScheduleOverride struct {
	ID        int64
	StudioID  int64
	Date      time.Time
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsClosed  bool
	Message   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the operating window defined by the weekly schedule entry
func (s *WeeklySchedule) Window() OperatingWindow {
	return OperatingWindow{
		Start:    s.OpenTime,
		End:      s.CloseTime,
		IsClosed: s.IsClosed,
	}
}

// Window returns the operating window defined by the override
func (o *ScheduleOverride) Window() OperatingWindow {
	return OperatingWindow{
		Start:    o.OpenTime,
		End:      o.CloseTime,
		IsClosed: o.IsClosed,
		Message:  o.Message,
	}
}
