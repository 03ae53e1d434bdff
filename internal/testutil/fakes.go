package testutil

import (
	"context"
	"fmt"
	"sync"

	"pluvio/internal/actuation"
	"pluvio/internal/domain"
	"pluvio/internal/weather"
)

// RecordingController is an in-memory actuation.Controller that records
// every call for assertions. All calls succeed unless Fail is set.
type RecordingController struct {
	mu    sync.Mutex
	Calls []string
	Fail  error

	Snapshot actuation.StatusSnapshot
}

func NewRecordingController() *RecordingController {
	return &RecordingController{
		Snapshot: actuation.StatusSnapshot{System: domain.SystemEnabled},
	}
}

func (c *RecordingController) record(call string) (actuation.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail != nil {
		return actuation.Result{}, c.Fail
	}
	c.Calls = append(c.Calls, call)
	return actuation.Result{OK: true, Message: call}, nil
}

// CallCount returns how many actuation calls have been recorded.
func (c *RecordingController) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Calls)
}

func (c *RecordingController) StartZone(ctx context.Context, zoneID, durationSec int, source domain.ActionSource) (actuation.Result, error) {
	return c.record(fmt.Sprintf("start zone=%d dur=%d src=%s", zoneID, durationSec, source))
}

func (c *RecordingController) StopZone(ctx context.Context, zoneID int, source domain.ActionSource) (actuation.Result, error) {
	return c.record(fmt.Sprintf("stop zone=%d src=%s", zoneID, source))
}

func (c *RecordingController) StopAll(ctx context.Context, source domain.ActionSource) (actuation.Result, error) {
	return c.record(fmt.Sprintf("stop-all src=%s", source))
}

func (c *RecordingController) SetRainDelay(ctx context.Context, hours int, source domain.ActionSource) (actuation.Result, error) {
	return c.record(fmt.Sprintf("rain-delay hours=%d src=%s", hours, source))
}

func (c *RecordingController) ClearRainDelay(ctx context.Context, source domain.ActionSource) (actuation.Result, error) {
	return c.record(fmt.Sprintf("clear-rain-delay src=%s", source))
}

func (c *RecordingController) CreateSchedule(ctx context.Context, zoneID int, startTime string, daysOfWeek []int, durationSec int, source domain.ActionSource) (actuation.Result, error) {
	return c.record(fmt.Sprintf("create-schedule zone=%d time=%s days=%v dur=%d src=%s", zoneID, startTime, daysOfWeek, durationSec, source))
}

func (c *RecordingController) Status(ctx context.Context) (actuation.StatusSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail != nil {
		return actuation.StatusSnapshot{}, c.Fail
	}
	return c.Snapshot, nil
}

var _ actuation.Controller = (*RecordingController)(nil)

// StaticWeather is a weather.Provider returning a fixed forecast.
type StaticWeather struct {
	Forecast_ *domain.Forecast
	Err       error
}

func (s *StaticWeather) Forecast(ctx context.Context, postalCode string) (*domain.Forecast, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Forecast_, nil
}

var _ weather.Provider = (*StaticWeather)(nil)
