package schedule

import "pluvio/internal/domain"

// DailyUsage sums water usage for a day. Canceled events contribute nothing,
// and a globally disabled system reports zero for every event regardless of
// its individual cancellation flag.
func DailyUsage(day *domain.DailySchedule, status domain.SystemStatus) float64 {
	if day == nil || status == domain.SystemDisabled {
		return 0
	}
	var total float64
	for _, e := range day.Events {
		if e.IsCanceled {
			continue
		}
		total += e.WaterUsage
	}
	return total
}

// PlanUsage sums DailyUsage across the whole plan.
func PlanUsage(plan *domain.WateringSchedule, status domain.SystemStatus) float64 {
	if plan == nil {
		return 0
	}
	var total float64
	for i := range plan.Schedule {
		total += DailyUsage(&plan.Schedule[i], status)
	}
	return total
}
