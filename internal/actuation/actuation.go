package actuation

import (
	"context"

	"pluvio/internal/domain"
)

// Result is the controller's acknowledgement of a single command.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// ZoneRun describes a zone that is currently watering.
type ZoneRun struct {
	ZoneID       int `json:"zone_id"`
	RemainingSec int `json:"remaining_sec"`
}

// StatusSnapshot is the controller's current state.
type StatusSnapshot struct {
	System         domain.SystemStatus `json:"system"`
	RainDelayHours int                 `json:"rain_delay_hours"`
	Active         []ZoneRun           `json:"active"`
}

// Controller is the physical zone-actuation layer. Every mutating call
// carries the source tag of whoever triggered it; implementations log it with
// the action. Calls are issued only by the confirmation gate after an execute
// transition.
type Controller interface {
	StartZone(ctx context.Context, zoneID, durationSec int, source domain.ActionSource) (Result, error)
	StopZone(ctx context.Context, zoneID int, source domain.ActionSource) (Result, error)
	StopAll(ctx context.Context, source domain.ActionSource) (Result, error)
	SetRainDelay(ctx context.Context, hours int, source domain.ActionSource) (Result, error)
	ClearRainDelay(ctx context.Context, source domain.ActionSource) (Result, error)
	CreateSchedule(ctx context.Context, zoneID int, startTime string, daysOfWeek []int, durationSec int, source domain.ActionSource) (Result, error)
	Status(ctx context.Context) (StatusSnapshot, error)
}
