package pickup

import (
	"time"
)

// Slot is a time-of-day pickup option.
type Slot struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// On places the slot on the given calendar day.
func (s Slot) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), s.Hour, s.Minute, 0, 0, day.Location())
}

// String renders the slot as a 12-hour label, e.g. "8:30 AM".
func (s Slot) String() string {
	return Format(s.On(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

// Policy holds the closed set of valid pickup times: every half hour from
// 08:00 through 12:30, plus a final slot at 13:00.
type Policy struct {
	slots []Slot
}

const (
	firstSlotHour   = 8
	lastHalfHourCap = 12*60 + 30 // 12:30, minutes since midnight
	finalSlotHour   = 13
)

// Fallback is the slot shown for stored pickup times that predate the policy
// or were set out-of-band.
var Fallback = Slot{Hour: 11, Minute: 0}

// NewPolicy builds the fixed slot grid. Computed once at process start.
func NewPolicy() *Policy {
	var slots []Slot
	for minutes := firstSlotHour * 60; minutes <= lastHalfHourCap; minutes += 30 {
		slots = append(slots, Slot{Hour: minutes / 60, Minute: minutes % 60})
	}
	slots = append(slots, Slot{Hour: finalSlotHour, Minute: 0})
	return &Policy{slots: slots}
}

// AllowedSlots returns the ordered slot grid.
func (p *Policy) AllowedSlots() []Slot {
	out := make([]Slot, len(p.slots))
	copy(out, p.slots)
	return out
}

// IsValid reports whether t's clock reads exactly one of the allowed slots.
func (p *Policy) IsValid(t time.Time) bool {
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}
	for _, s := range p.slots {
		if t.Hour() == s.Hour && t.Minute() == s.Minute {
			return true
		}
	}
	return false
}

// DefaultOrFallback returns t unchanged when it sits on the grid, otherwise
// the same day at the fallback slot.
func (p *Policy) DefaultOrFallback(t time.Time) time.Time {
	if p.IsValid(t) {
		return t
	}
	return Fallback.On(t)
}

// Format renders a time as a 12-hour clock label with no leading zero on the
// hour and an AM/PM suffix.
func Format(t time.Time) string {
	return t.Format("3:04 PM")
}
