package schedule

import (
	"fmt"
	"regexp"
	"time"

	"pluvio/internal/domain"
)

var startTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidStartTime reports whether s is a 24-hour HH:MM clock time.
func ValidStartTime(s string) bool {
	return startTimePattern.MatchString(s)
}

// ValidateStructure checks a candidate plan's structural integrity: exactly
// seven days whose day values form a contiguous range starting at today, with
// at most one DailySchedule per day and well-formed events throughout.
func ValidateStructure(plan *domain.WateringSchedule, today time.Time) error {
	if plan == nil {
		return fmt.Errorf("%w: plan is nil", domain.ErrSchema)
	}
	if len(plan.Schedule) != domain.PlanDays {
		return fmt.Errorf("%w: expected %d days, got %d", domain.ErrSchema, domain.PlanDays, len(plan.Schedule))
	}
	for i, day := range plan.Schedule {
		want := today.AddDate(0, 0, i).Format(domain.DateLayout)
		if day.Day != want {
			return fmt.Errorf("%w: day %d is %q, expected %q", domain.ErrSchema, i, day.Day, want)
		}
		for j, e := range day.Events {
			if !domain.ValidZoneID(e.ZoneID) {
				return fmt.Errorf("%w: %s event %d: zone %d out of range", domain.ErrSchema, day.Day, j, e.ZoneID)
			}
			if e.DurationMinutes <= 0 {
				return fmt.Errorf("%w: %s event %d: duration must be positive", domain.ErrSchema, day.Day, j)
			}
			if !ValidStartTime(e.StartTime) {
				return fmt.Errorf("%w: %s event %d: bad start time %q", domain.ErrSchema, day.Day, j, e.StartTime)
			}
			if e.WaterUsage < 0 {
				return fmt.Errorf("%w: %s event %d: negative water usage", domain.ErrSchema, day.Day, j)
			}
		}
	}
	return nil
}
