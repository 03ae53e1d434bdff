package synthesis

import (
	"context"
	"sync"
	"time"

	"pluvio/internal/domain"
	"pluvio/internal/schedule"
)

// Orchestrator drives plan (re)generation and proactive adjustment. It owns
// prompt-context assembly and the timing invariant: a freshly synthesized
// plan never contains actionable events in the past.
type Orchestrator struct {
	gen        Generator
	zones      []domain.Zone
	preference domain.PreferenceTier
	now        func() time.Time

	// override is an explicitly configured timezone; when empty the
	// orchestrator follows the yard's geocoded timezone instead.
	override string

	mu      sync.Mutex
	adopted *time.Location
}

// NewOrchestrator creates an orchestrator. timezone, when non-empty, pins the
// plan's local clock; otherwise the clock follows the geocoded timezone of
// whatever forecast the orchestrator last saw, so plan dates and elapsed-slot
// cutoffs agree with the forecast's own dates.
func NewOrchestrator(gen Generator, zones []domain.Zone, preference domain.PreferenceTier, timezone string) *Orchestrator {
	return &Orchestrator{
		gen:        gen,
		zones:      zones,
		preference: preference,
		override:   timezone,
		now:        time.Now,
	}
}

// SetClock overrides the orchestrator's time source. Used by tests.
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.now = now
}

// AdoptLocation records the yard's geocoded timezone as the plan's local
// clock. An explicitly configured timezone always wins; unparseable zones are
// ignored.
func (o *Orchestrator) AdoptLocation(loc domain.Location) {
	if o.override != "" || loc.Timezone == "" {
		return
	}
	parsed, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		return
	}
	o.mu.Lock()
	o.adopted = parsed
	o.mu.Unlock()
}

// LocalNow is the current instant in the plan owner's timezone: the
// configured override when set, else the last adopted geocoded timezone,
// else the host clock.
func (o *Orchestrator) LocalNow() time.Time {
	if o.override != "" {
		if loc, err := time.LoadLocation(o.override); err == nil {
			return o.now().In(loc)
		}
	}
	o.mu.Lock()
	adopted := o.adopted
	o.mu.Unlock()
	if adopted != nil {
		return o.now().In(adopted)
	}
	return o.now()
}

// Synthesize generates a fresh 7-day plan. The prior plan, when present, is
// split into elapsed ground truth and future plan for the generation
// context. The received plan is structurally validated and elapsed slots for
// today are discarded before it is accepted.
func (o *Orchestrator) Synthesize(ctx context.Context, prior *domain.WateringSchedule, forecast *domain.Forecast, transcript string, reasons []string) (*domain.WateringSchedule, error) {
	if forecast != nil {
		o.AdoptLocation(forecast.Location)
	}
	now := o.LocalNow()

	req := PlanRequest{
		Zones:      o.zones,
		Preference: o.preference,
		Forecast:   forecast,
		Now:        now,
		Transcript: transcript,
		Reasons:    reasons,
	}
	req.GroundTruth, req.PriorPlan = splitHistory(prior, now)

	plan, err := o.gen.GeneratePlan(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := schedule.ValidateStructure(plan, now); err != nil {
		return nil, err
	}
	schedule.PruneElapsed(plan, now)
	return plan, nil
}

// DirectChange asks generation to apply one literal user command, returning
// the validated reply. Both candidate plans are pruned of elapsed slots; the
// caller stores them until the user picks one.
func (o *Orchestrator) DirectChange(ctx context.Context, command string, current *domain.WateringSchedule, forecast *domain.Forecast, transcript string) (*ChangeReply, error) {
	if forecast != nil {
		o.AdoptLocation(forecast.Location)
	}
	now := o.LocalNow()

	reply, err := o.gen.GenerateChange(ctx, ChangeRequest{
		Command:    command,
		Current:    current,
		Zones:      o.zones,
		Preference: o.preference,
		Forecast:   forecast,
		Now:        now,
		Transcript: transcript,
	})
	if err != nil {
		return nil, err
	}

	if reply.ResponseType == ResponseModification {
		if err := schedule.ValidateStructure(reply.DirectChange, now); err != nil {
			return nil, err
		}
		schedule.PruneElapsed(reply.DirectChange, now)
		if reply.Compensated != nil {
			if err := schedule.ValidateStructure(reply.Compensated, now); err != nil {
				return nil, err
			}
			schedule.PruneElapsed(reply.Compensated, now)
		}
	}
	return reply, nil
}

// EvaluateShift applies the significant-change thresholds to the latest
// forecast. Below threshold the orchestrator proposes nothing.
func (o *Orchestrator) EvaluateShift(assumed, latest []domain.ForecastDay) schedule.ShiftAssessment {
	return schedule.EvaluateForecastShift(assumed, latest)
}

// splitHistory divides a prior plan at the current local date: strictly past
// days are ground truth, today and later remain plan.
func splitHistory(prior *domain.WateringSchedule, now time.Time) (past, future []domain.DailySchedule) {
	if prior == nil {
		return nil, nil
	}
	today := now.Format(domain.DateLayout)
	for _, d := range prior.Schedule {
		if d.Day < today {
			past = append(past, d)
		} else {
			future = append(future, d)
		}
	}
	return past, future
}
