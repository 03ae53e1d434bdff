package intent

import (
	"fmt"
	"sort"
	"strings"
)

var dayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ConfirmationMessage renders a deterministic human-readable summary of a
// pending action for display before the user confirms it.
func ConfirmationMessage(p *ParsedIntent) string {
	switch p.Kind {
	case KindStartZone:
		return fmt.Sprintf("Run zone %d for %s?", p.Zone(), formatDuration(p.DurationSeconds()))
	case KindStopZone:
		if p.IsStopAll() {
			return "Stop all zones?"
		}
		return fmt.Sprintf("Stop zone %d?", p.Zone())
	case KindSetRainDelay:
		h, _ := p.Parameters[ParamHours].(int)
		return fmt.Sprintf("Pause all watering for %d hours?", h)
	case KindClearRainDelay:
		return "Clear the rain delay and resume normal watering?"
	case KindCreateSchedule:
		t, _ := p.Parameters[ParamTime].(string)
		days, _ := p.Parameters[ParamDays].([]int)
		return fmt.Sprintf("Schedule zone %d for %s at %s on %s?",
			p.Zone(), formatDuration(p.DurationSeconds()), t, formatDays(days))
	default:
		return ""
	}
}

func formatDuration(seconds int) string {
	if seconds%60 == 0 {
		minutes := seconds / 60
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	return fmt.Sprintf("%d seconds", seconds)
}

func formatDays(days []int) string {
	if len(days) == 7 {
		return "every day"
	}
	sorted := append([]int(nil), days...)
	sort.Ints(sorted)
	names := make([]string, 0, len(sorted))
	for _, d := range sorted {
		if d >= 0 && d < len(dayNames) {
			names = append(names, dayNames[d])
		}
	}
	return strings.Join(names, ", ")
}
