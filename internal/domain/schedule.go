package domain

import "time"

// DateLayout is the wire format for plan days.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for event start times (24-hour, local).
const TimeLayout = "15:04"

// Adjustment records who modified an existing event and when.
// Newly inserted events carry no adjustment stamp.
type Adjustment struct {
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// ScheduleEvent is a single watering slot within a day. StartTime is always
// interpreted in the plan owner's local timezone. A canceled event keeps its
// original timing so timeline views can show what was skipped.
type ScheduleEvent struct {
	ZoneID          int         `json:"zone_id"`
	ZoneName        string      `json:"zone_name"`
	StartTime       string      `json:"start_time"`
	DurationMinutes int         `json:"duration_minutes"`
	WaterUsage      float64     `json:"water_usage,omitempty"`
	IsCanceled      bool        `json:"is_canceled"`
	Adjustment      *Adjustment `json:"adjustment,omitempty"`
}

// DailySchedule holds one day's events in insertion order. Display order is
// insertion order, not start-time order.
type DailySchedule struct {
	Day    string          `json:"day"`
	Events []ScheduleEvent `json:"events"`
}

// WateringSchedule is the 7-day plan under active management, covering
// today through today+6.
type WateringSchedule struct {
	Reasoning string          `json:"reasoning"`
	Schedule  []DailySchedule `json:"schedule"`
}

// PlanDays is the rolling horizon length of a plan.
const PlanDays = 7

// FindDay returns the schedule for the given day, or nil if absent.
func (w *WateringSchedule) FindDay(day string) *DailySchedule {
	for i := range w.Schedule {
		if w.Schedule[i].Day == day {
			return &w.Schedule[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the plan. Merges operate on copies so a
// rejected replacement never leaves the accepted plan partially mutated.
func (w *WateringSchedule) Clone() *WateringSchedule {
	if w == nil {
		return nil
	}
	out := &WateringSchedule{Reasoning: w.Reasoning}
	out.Schedule = make([]DailySchedule, len(w.Schedule))
	for i, d := range w.Schedule {
		events := make([]ScheduleEvent, len(d.Events))
		for j, e := range d.Events {
			if e.Adjustment != nil {
				adj := *e.Adjustment
				e.Adjustment = &adj
			}
			events[j] = e
		}
		out.Schedule[i] = DailySchedule{Day: d.Day, Events: events}
	}
	return out
}

// ParseEventTime resolves an event's start time on a given day into an
// absolute instant in the supplied location.
func ParseEventTime(day, startTime string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, day+" "+startTime, loc)
}
