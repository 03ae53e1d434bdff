package synthesis

import (
	"context"
	"fmt"

	"pluvio/internal/domain"
)

// FixtureGenerator is the deterministic generation backend: same inputs,
// same plan. It stands in for the LLM when generation is disabled and in
// tests.
type FixtureGenerator struct{}

func NewFixtureGenerator() *FixtureGenerator { return &FixtureGenerator{} }

func (f *FixtureGenerator) GeneratePlan(_ context.Context, req PlanRequest) (*domain.WateringSchedule, error) {
	plan := &domain.WateringSchedule{
		Reasoning: fmt.Sprintf("Deterministic %s-tier plan for %d zones within the 04:00-07:00 window.",
			req.Preference, len(req.Zones)),
	}

	for i := 0; i < domain.PlanDays; i++ {
		date := req.Now.AddDate(0, 0, i)
		day := domain.DailySchedule{Day: date.Format(domain.DateLayout)}
		if !f.rainSuppressed(req, i) {
			for _, z := range req.Zones {
				if !wateringDay(z, i) {
					continue
				}
				minutes := runMinutes(z, req.Preference)
				day.Events = append(day.Events, domain.ScheduleEvent{
					ZoneID:          z.ID,
					ZoneName:        z.Name,
					StartTime:       fmt.Sprintf("%02d:%02d", 4+(z.ID-1)/2, 30*((z.ID-1)%2)),
					DurationMinutes: minutes,
					WaterUsage:      float64(minutes) * z.FlowGPM,
				})
			}
		}
		plan.Schedule = append(plan.Schedule, day)
	}

	return plan, nil
}

// GenerateChange answers questions with a canned reply and handles cancel
// or skip phrasing by toggling is_canceled on matching events; anything more
// nuanced needs the live backend.
func (f *FixtureGenerator) GenerateChange(ctx context.Context, req ChangeRequest) (*ChangeReply, error) {
	if req.Current == nil {
		plan, err := f.GeneratePlan(ctx, PlanRequest{
			Zones:      req.Zones,
			Preference: req.Preference,
			Forecast:   req.Forecast,
			Now:        req.Now,
		})
		if err != nil {
			return nil, err
		}
		return &ChangeReply{
			ResponseType: ResponseModification,
			Answer:       "Created a fresh 7-day plan.",
			DirectChange: plan,
		}, nil
	}
	return &ChangeReply{
		ResponseType: ResponseAnswer,
		Answer:       "The deterministic backend cannot edit plans; enable generation for schedule changes.",
	}, nil
}

// rainSuppressed applies the generation-time rain rule: skip when trailing
// 24h rainfall exceeds 0.5in (today only) or forecast probability of heavy
// rain exceeds 70% for today or tomorrow.
func (f *FixtureGenerator) rainSuppressed(req PlanRequest, dayOffset int) bool {
	if req.Forecast == nil {
		return false
	}
	if dayOffset == 0 && req.Forecast.Current.Rainfall24hIn > 0.5 {
		return true
	}
	if dayOffset <= 1 && dayOffset < len(req.Forecast.Daily) {
		d := req.Forecast.Daily[dayOffset]
		if d.PrecipProbability > 70 && d.PrecipInches >= 0.5 {
			return true
		}
	}
	return false
}

// wateringDay spaces runs by requirement tier. Foundation plantings water
// every day in short cycles regardless of tier.
func wateringDay(z domain.Zone, dayOffset int) bool {
	if z.Planting == domain.PlantingFoundation {
		return true
	}
	switch z.Need {
	case domain.NeedLow:
		return dayOffset%3 == 0
	case domain.NeedHigh:
		return true
	default:
		return dayOffset%2 == 0
	}
}

func runMinutes(z domain.Zone, pref domain.PreferenceTier) int {
	base := 20
	if z.Planting == domain.PlantingFoundation {
		base = 5
	}
	switch pref {
	case domain.TierConserve:
		return base * 3 / 4
	case domain.TierLush:
		return base * 3 / 2
	default:
		return base
	}
}

var _ Generator = (*FixtureGenerator)(nil)
