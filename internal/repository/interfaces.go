package repository

import (
	"context"
	"time"

	"pluvio/internal/domain"
)

// ActivePlan couples the accepted plan with the forecast it assumed, which
// the proactive evaluator later diffs against the latest forecast.
type ActivePlan struct {
	Plan            *domain.WateringSchedule
	AssumedForecast []domain.ForecastDay
	UpdatedAt       time.Time
}

// Candidates is a direct-change/compensation pair awaiting the user's choice.
// Compensated may be nil when no compensation was offered.
type Candidates struct {
	Direct      *domain.WateringSchedule
	Compensated *domain.WateringSchedule
	FollowUp    string
	CreatedAt   time.Time
}

// PlanRepo persists the active plan and any pending candidate pair.
type PlanRepo interface {
	SaveActive(ctx context.Context, plan *domain.WateringSchedule, assumed []domain.ForecastDay) error
	// LoadActive returns nil when no plan has been accepted yet.
	LoadActive(ctx context.Context) (*ActivePlan, error)
	SaveCandidates(ctx context.Context, c *Candidates) error
	// LoadCandidates returns nil when no choice is pending.
	LoadCandidates(ctx context.Context) (*Candidates, error)
	ClearCandidates(ctx context.Context) error
}

// ActionEntry is one recorded actuation result.
type ActionEntry struct {
	ID        string
	Action    string
	Source    domain.ActionSource
	OK        bool
	Message   string
	CreatedAt time.Time
}

// ActionLogRepo is the append-only actuation audit log.
type ActionLogRepo interface {
	Append(ctx context.Context, e *ActionEntry) error
	ListRecent(ctx context.Context, limit int) ([]*ActionEntry, error)
}
