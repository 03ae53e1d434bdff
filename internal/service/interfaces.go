package service

import (
	"context"

	"pluvio/internal/contract"
	"pluvio/internal/domain"
	"pluvio/internal/schedule"
	"pluvio/internal/synthesis"
)

// ChatService runs the full chat-turn pipeline: conversation window, intent
// classification, confirmation gating or plan synthesis, and the response
// surfaced to the presentation layer.
type ChatService interface {
	HandleMessage(ctx context.Context, sessionID, text string) (*contract.ChatResponse, error)
	ConfirmPending(ctx context.Context, sessionID, messageID string) (*contract.ChatResponse, error)
	CancelPending(ctx context.Context, sessionID, messageID string) (*contract.ChatResponse, error)
}

// PlanService owns the plan's exclusive critical section. Every mutation of
// the active plan (direct change, compensation acceptance, proactive
// replacement) is serialized through it.
type PlanService interface {
	Current(ctx context.Context) (*contract.PlanView, error)
	// Regenerate synthesizes and accepts a fresh 7-day plan.
	Regenerate(ctx context.Context, transcript string) (*domain.WateringSchedule, error)
	// ApplyChange accepts a validated generation reply: the direct change
	// becomes active; a compensated alternative, when present, is stored as
	// a candidate until the user decides.
	ApplyChange(ctx context.Context, reply *synthesis.ChangeReply, user string) error
	AcceptCompensation(ctx context.Context, user string) (*domain.WateringSchedule, error)
	DeclineCompensation(ctx context.Context) error
	// CancelEvent toggles an event's cancellation flag. Events whose start
	// time has elapsed in local time are rejected with a timing error.
	CancelEvent(ctx context.Context, day string, eventIndex int, canceled bool, user string) error
}

// AdjustmentProposal is the outcome of one proactive evaluation. Proposed is
// nil when the forecast shift stayed below every threshold.
type AdjustmentProposal struct {
	Assessment schedule.ShiftAssessment
	Proposed   *domain.WateringSchedule
}

// ProactiveService compares the latest forecast against the one the active
// plan assumed and proposes a replacement only on significant change.
type ProactiveService interface {
	Evaluate(ctx context.Context) (*AdjustmentProposal, error)
}
