package testutil

import (
	"fmt"
	"time"

	"pluvio/internal/domain"
)

// Event options
type EventOption func(*domain.ScheduleEvent)

func WithCanceled() EventOption {
	return func(e *domain.ScheduleEvent) {
		e.IsCanceled = true
	}
}

func WithAdjustment(user string, at time.Time) EventOption {
	return func(e *domain.ScheduleEvent) {
		e.Adjustment = &domain.Adjustment{User: user, Timestamp: at}
	}
}

func WithStartTime(hhmm string) EventOption {
	return func(e *domain.ScheduleEvent) {
		e.StartTime = hhmm
	}
}

func WithDuration(minutes int) EventOption {
	return func(e *domain.ScheduleEvent) {
		e.DurationMinutes = minutes
	}
}

// NewTestEvent builds a plausible event for the given zone.
func NewTestEvent(zoneID int, opts ...EventOption) domain.ScheduleEvent {
	e := domain.ScheduleEvent{
		ZoneID:          zoneID,
		ZoneName:        fmt.Sprintf("Zone %d", zoneID),
		StartTime:       "05:00",
		DurationMinutes: 20,
		WaterUsage:      200,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Plan options
type PlanOption func(*domain.WateringSchedule)

// WithDayEvents replaces the events of the day at the given offset from the
// plan's first day.
func WithDayEvents(offset int, events ...domain.ScheduleEvent) PlanOption {
	return func(p *domain.WateringSchedule) {
		p.Schedule[offset].Events = events
	}
}

func WithReasoning(text string) PlanOption {
	return func(p *domain.WateringSchedule) {
		p.Reasoning = text
	}
}

// NewTestPlan builds a valid 7-day plan starting at firstDay, with one
// default event per day for zones cycling 1..4.
func NewTestPlan(firstDay time.Time, opts ...PlanOption) *domain.WateringSchedule {
	p := &domain.WateringSchedule{
		Reasoning: "Steady week, moderate temperatures.",
		Schedule:  make([]domain.DailySchedule, domain.PlanDays),
	}
	for i := 0; i < domain.PlanDays; i++ {
		zone := i%4 + 1
		p.Schedule[i] = domain.DailySchedule{
			Day:    firstDay.AddDate(0, 0, i).Format(domain.DateLayout),
			Events: []domain.ScheduleEvent{NewTestEvent(zone)},
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Forecast options
type ForecastOption func(*domain.Forecast)

func WithPrecipProbability(offset, probability int) ForecastOption {
	return func(f *domain.Forecast) {
		f.Daily[offset].PrecipProbability = probability
	}
}

func WithPrecipInches(offset int, inches float64) ForecastOption {
	return func(f *domain.Forecast) {
		f.Daily[offset].PrecipInches = inches
	}
}

func WithHigh(offset int, highF float64) ForecastOption {
	return func(f *domain.Forecast) {
		f.Daily[offset].HighF = highF
	}
}

// NewTestForecast builds a dry, mild 7-day forecast starting at firstDay.
func NewTestForecast(firstDay time.Time, opts ...ForecastOption) *domain.Forecast {
	f := &domain.Forecast{
		Location: domain.Location{
			Name:     "Testville",
			Timezone: "America/Chicago",
		},
		Current: domain.CurrentConditions{TempF: 80},
		Daily:   make([]domain.ForecastDay, domain.PlanDays),
	}
	for i := 0; i < domain.PlanDays; i++ {
		f.Daily[i] = domain.ForecastDay{
			Date:              firstDay.AddDate(0, 0, i).Format(domain.DateLayout),
			HighF:             88,
			LowF:              68,
			PrecipProbability: 10,
			PrecipInches:      0,
		}
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}
