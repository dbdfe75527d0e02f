package scheduler

import (
	"fmt"
	"time"
)

// SlotCalendar is the ordered list of intraday time-slot boundaries shared
// by every room and every day of a run. Slots are identified everywhere by
// their index into this calendar.
type SlotCalendar struct {
	starts []time.Time // time-of-day only, date part ignored
	ends   []time.Time
}

// NewSlotCalendar builds a calendar from parallel start/end time lists
func NewSlotCalendar(starts, ends []time.Time) (*SlotCalendar, error) {
	if len(starts) != len(ends) {
		return nil, fmt.Errorf("slot calendar: %d start times but %d end times", len(starts), len(ends))
	}
	for i := range starts {
		if !clockBefore(starts[i], ends[i]) {
			return nil, fmt.Errorf("slot calendar: slot %d ends at or before it starts", i)
		}
	}
	return &SlotCalendar{
		starts: append([]time.Time(nil), starts...),
		ends:   append([]time.Time(nil), ends...),
	}, nil
}

// Len returns the number of slots per day
func (c *SlotCalendar) Len() int {
	return len(c.starts)
}

// SlotMinutes returns the duration of slot i in minutes
func (c *SlotCalendar) SlotMinutes(i int) int {
	return int(clockMinutes(c.ends[i]) - clockMinutes(c.starts[i]))
}

// Window combines slot i's clock times with a calendar date
func (c *SlotCalendar) Window(i int, date time.Time) (time.Time, time.Time) {
	return onDate(c.starts[i], date), onDate(c.ends[i], date)
}

// SlotIndexes resolves times-of-day to slot indices by matching slot start
// times. An empty input selects every slot. Times that match no slot are
// dropped; order follows the calendar, not the input.
func (c *SlotCalendar) SlotIndexes(times []time.Time) []int {
	idx := make([]int, 0, len(c.starts))
	for i, start := range c.starts {
		if len(times) == 0 {
			idx = append(idx, i)
			continue
		}
		for _, t := range times {
			if sameClock(start, t) {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

// Starts returns a copy of the slot start times
func (c *SlotCalendar) Starts() []time.Time {
	return append([]time.Time(nil), c.starts...)
}

// Ends returns a copy of the slot end times
func (c *SlotCalendar) Ends() []time.Time {
	return append([]time.Time(nil), c.ends...)
}

func clockMinutes(t time.Time) int64 {
	return int64(t.Hour())*60 + int64(t.Minute())
}

func clockBefore(a, b time.Time) bool {
	return clockMinutes(a) < clockMinutes(b)
}

func sameClock(a, b time.Time) bool {
	return a.Hour() == b.Hour() && a.Minute() == b.Minute()
}

func onDate(clock, date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, date.Location())
}
