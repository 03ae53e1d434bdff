package schedule

import (
	"time"

	"pluvio/internal/domain"
)

// ApplyDirectChange replaces base wholesale with change after structural
// validation. The generation layer returns a complete 7-day plan reflecting
// only the literal user command; this merge does not splice. On structural
// violation base is returned unchanged alongside the error.
func ApplyDirectChange(base, change *domain.WateringSchedule, today time.Time) (*domain.WateringSchedule, error) {
	if err := ValidateStructure(change, today); err != nil {
		return base, err
	}
	return change.Clone(), nil
}

// StampAdjustments compares next against prev and stamps provenance on every
// surviving event whose start time or duration changed. Events are matched
// within a day by zone id, first unmatched occurrence wins. Events with no
// counterpart in prev are new insertions and stay unstamped; unchanged events
// keep whatever stamp they already carried.
func StampAdjustments(prev, next *domain.WateringSchedule, user string, now time.Time) {
	if prev == nil || next == nil {
		return
	}
	for i := range next.Schedule {
		nextDay := &next.Schedule[i]
		prevDay := prev.FindDay(nextDay.Day)
		if prevDay == nil {
			continue
		}
		claimed := make([]bool, len(prevDay.Events))
		for j := range nextDay.Events {
			e := &nextDay.Events[j]
			match := claimMatch(prevDay.Events, claimed, e.ZoneID)
			if match == nil {
				continue
			}
			if match.StartTime != e.StartTime || match.DurationMinutes != e.DurationMinutes {
				e.Adjustment = &domain.Adjustment{User: user, Timestamp: now}
			} else if e.Adjustment == nil {
				e.Adjustment = match.Adjustment
			}
		}
	}
}

func claimMatch(events []domain.ScheduleEvent, claimed []bool, zoneID int) *domain.ScheduleEvent {
	for i := range events {
		if !claimed[i] && events[i].ZoneID == zoneID {
			claimed[i] = true
			return &events[i]
		}
	}
	return nil
}

// PruneElapsed drops events on the current local day whose start time is not
// strictly after now. A freshly synthesized plan must never contain actionable
// events in the past. Future days are untouched.
func PruneElapsed(plan *domain.WateringSchedule, now time.Time) {
	if plan == nil {
		return
	}
	today := now.Format(domain.DateLayout)
	day := plan.FindDay(today)
	if day == nil {
		return
	}
	kept := day.Events[:0]
	for _, e := range day.Events {
		at, err := domain.ParseEventTime(day.Day, e.StartTime, now.Location())
		if err == nil && at.After(now) {
			kept = append(kept, e)
		}
	}
	day.Events = kept
}

// Elapsed reports whether the event at day/startTime has already passed in
// the given local time.
func Elapsed(day, startTime string, now time.Time) bool {
	at, err := domain.ParseEventTime(day, startTime, now.Location())
	if err != nil {
		return false
	}
	return !at.After(now)
}
