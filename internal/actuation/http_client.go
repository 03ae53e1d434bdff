package actuation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"pluvio/internal/domain"
)

// httpController talks to the irrigation controller's local HTTP API.
type httpController struct {
	endpoint string
	http     *http.Client
}

// NewHTTPController creates a Controller for a controller reachable at
// endpoint (e.g. http://sprinkler.local:8080).
func NewHTTPController(endpoint string) Controller {
	return &httpController{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

type commandBody struct {
	ZoneID      int                 `json:"zone_id,omitempty"`
	DurationSec int                 `json:"duration_sec,omitempty"`
	Hours       int                 `json:"hours,omitempty"`
	StartTime   string              `json:"start_time,omitempty"`
	DaysOfWeek  []int               `json:"days_of_week,omitempty"`
	Source      domain.ActionSource `json:"source"`
}

func (c *httpController) StartZone(ctx context.Context, zoneID, durationSec int, source domain.ActionSource) (Result, error) {
	return c.post(ctx, "/api/zones/start", commandBody{ZoneID: zoneID, DurationSec: durationSec, Source: source})
}

func (c *httpController) StopZone(ctx context.Context, zoneID int, source domain.ActionSource) (Result, error) {
	return c.post(ctx, "/api/zones/stop", commandBody{ZoneID: zoneID, Source: source})
}

func (c *httpController) StopAll(ctx context.Context, source domain.ActionSource) (Result, error) {
	return c.post(ctx, "/api/zones/stop-all", commandBody{Source: source})
}

func (c *httpController) SetRainDelay(ctx context.Context, hours int, source domain.ActionSource) (Result, error) {
	return c.post(ctx, "/api/rain-delay", commandBody{Hours: hours, Source: source})
}

func (c *httpController) ClearRainDelay(ctx context.Context, source domain.ActionSource) (Result, error) {
	return c.post(ctx, "/api/rain-delay/clear", commandBody{Source: source})
}

func (c *httpController) CreateSchedule(ctx context.Context, zoneID int, startTime string, daysOfWeek []int, durationSec int, source domain.ActionSource) (Result, error) {
	return c.post(ctx, "/api/schedules", commandBody{
		ZoneID:      zoneID,
		StartTime:   startTime,
		DaysOfWeek:  daysOfWeek,
		DurationSec: durationSec,
		Source:      source,
	})
}

func (c *httpController) Status(ctx context.Context) (StatusSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/status", nil)
	if err != nil {
		return StatusSnapshot{}, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return StatusSnapshot{}, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return StatusSnapshot{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return StatusSnapshot{}, fmt.Errorf("controller returned status %d: %s", resp.StatusCode, string(body))
	}

	var snap StatusSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return StatusSnapshot{}, fmt.Errorf("decoding status: %w", err)
	}
	return snap, nil
}

func (c *httpController) post(ctx context.Context, path string, cmd commandBody) (Result, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return Result{}, fmt.Errorf("marshaling command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("controller returned status %d: %s", resp.StatusCode, string(body))
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return Result{}, fmt.Errorf("decoding response: %w", err)
	}
	return result, nil
}
