package synthesis

import (
	"context"
	"fmt"
	"time"

	"pluvio/internal/domain"
)

// PlanRequest is everything the generation layer needs to synthesize a full
// 7-day plan: hardware, preference tier, weather, and the prior plan split
// into past ground truth and future plan.
type PlanRequest struct {
	Zones      []domain.Zone
	Preference domain.PreferenceTier
	Forecast   *domain.Forecast
	// GroundTruth holds prior-plan days that have already elapsed; they are
	// historical fact, never re-planned.
	GroundTruth []domain.DailySchedule
	// PriorPlan holds the not-yet-elapsed days of the previous plan.
	PriorPlan []domain.DailySchedule
	// Now is the current local date-time in the plan owner's timezone.
	Now time.Time
	// Transcript is the recent conversation window, possibly empty.
	Transcript string
	// Reasons, when set, explains why a proactive re-plan was triggered.
	Reasons []string
}

// ChangeRequest asks the generation layer to apply one literal user command
// to the current plan.
type ChangeRequest struct {
	Command    string
	Current    *domain.WateringSchedule
	Zones      []domain.Zone
	Preference domain.PreferenceTier
	Forecast   *domain.Forecast
	Now        time.Time
	Transcript string
}

// ResponseType distinguishes a conversational answer from a plan
// modification.
type ResponseType string

const (
	ResponseAnswer       ResponseType = "answer"
	ResponseModification ResponseType = "modification"
)

// ChangeReply is the generation layer's structured answer to a user command.
// DirectChange reflects only the literal command; Compensated, when present,
// is a larger alternative that supersedes DirectChange only after the user
// accepts the follow-up question.
type ChangeReply struct {
	ResponseType     ResponseType             `json:"response_type"`
	Answer           string                   `json:"answer,omitempty"`
	FollowUpQuestion string                   `json:"follow_up_question,omitempty"`
	DirectChange     *domain.WateringSchedule `json:"direct_change,omitempty"`
	Compensated      *domain.WateringSchedule `json:"compensated,omitempty"`
}

// Generator is the opaque generation backend. Two implementations exist: a
// live LLM-backed one and a deterministic fixture, selected at construction
// time. Its output is untrusted; callers validate every structural field.
type Generator interface {
	GeneratePlan(ctx context.Context, req PlanRequest) (*domain.WateringSchedule, error)
	GenerateChange(ctx context.Context, req ChangeRequest) (*ChangeReply, error)
}

// validatePlanReply is the hard schema boundary for plan replies: missing
// required fields fail the request, they are never silently defaulted.
func validatePlanReply(plan domain.WateringSchedule) error {
	if plan.Reasoning == "" {
		return fmt.Errorf("missing reasoning")
	}
	if len(plan.Schedule) == 0 {
		return fmt.Errorf("missing schedule")
	}
	for i, day := range plan.Schedule {
		if day.Day == "" {
			return fmt.Errorf("schedule[%d]: missing day", i)
		}
		for j, e := range day.Events {
			if e.ZoneID == 0 {
				return fmt.Errorf("%s event %d: missing zone_id", day.Day, j)
			}
			if e.StartTime == "" {
				return fmt.Errorf("%s event %d: missing start_time", day.Day, j)
			}
			if e.DurationMinutes == 0 {
				return fmt.Errorf("%s event %d: missing duration_minutes", day.Day, j)
			}
		}
	}
	return nil
}

// validateChangeReply enforces the change-reply schema.
func validateChangeReply(r ChangeReply) error {
	switch r.ResponseType {
	case ResponseAnswer:
		if r.Answer == "" {
			return fmt.Errorf("answer reply missing answer text")
		}
	case ResponseModification:
		if r.DirectChange == nil {
			return fmt.Errorf("modification reply missing direct_change")
		}
		if err := validatePlanReply(*r.DirectChange); err != nil {
			return fmt.Errorf("direct_change: %v", err)
		}
		if r.Compensated != nil {
			if err := validatePlanReply(*r.Compensated); err != nil {
				return fmt.Errorf("compensated: %v", err)
			}
			if r.FollowUpQuestion == "" {
				return fmt.Errorf("compensated plan offered without follow_up_question")
			}
		}
	default:
		return fmt.Errorf("unknown response_type %q", r.ResponseType)
	}
	return nil
}
