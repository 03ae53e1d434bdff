package contract

import (
	"pluvio/internal/domain"
	"pluvio/internal/intent"
)

// ResponseType distinguishes a conversational answer from a plan/command
// modification.
type ResponseType string

const (
	ResponseAnswer       ResponseType = "answer"
	ResponseModification ResponseType = "modification"
)

// ChatResponse is the single chat-turn result surfaced to the presentation
// layer.
type ChatResponse struct {
	ResponseType ResponseType `json:"response_type"`

	// Answer is the assistant's text for this turn.
	Answer string `json:"answer,omitempty"`

	// ConfirmationMessage and MessageID are set when the command is parked
	// awaiting confirmation.
	ConfirmationMessage string `json:"confirmation_message,omitempty"`
	MessageID           string `json:"message_id,omitempty"`

	// FollowUpQuestion is set when a compensated plan is on offer.
	FollowUpQuestion string `json:"follow_up_question,omitempty"`

	// DirectChangeSchedule reflects only the literal command;
	// CompensatedSchedule, when present, is the larger alternative pending
	// acceptance.
	DirectChangeSchedule *domain.WateringSchedule `json:"direct_change_schedule,omitempty"`
	CompensatedSchedule  *domain.WateringSchedule `json:"compensated_schedule,omitempty"`

	RequiresConfirmation bool `json:"requires_confirmation,omitempty"`

	Intent     intent.Kind    `json:"intent,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// PlanView is the active plan plus derived per-day usage, for display.
type PlanView struct {
	Plan       *domain.WateringSchedule `json:"plan"`
	DailyUsage map[string]float64       `json:"daily_usage"`
	TotalUsage float64                  `json:"total_usage"`
	System     domain.SystemStatus      `json:"system"`
	HasPending bool                     `json:"has_pending_candidates"`
	FollowUp   string                   `json:"follow_up,omitempty"`
}
