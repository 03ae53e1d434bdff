package actuation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pluvio/internal/domain"
)

type recordedRequest struct {
	method string
	path   string
	body   commandBody
}

// newControllerServer fakes the irrigation controller's local API and records
// every command it receives.
func newControllerServer(t *testing.T, status int, reply any) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var calls []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{method: r.Method, path: r.URL.Path}
		if r.Method == http.MethodPost {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rec.body))
		}
		calls = append(calls, rec)

		w.WriteHeader(status)
		if reply != nil {
			json.NewEncoder(w).Encode(reply)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestHTTPController_StartZone(t *testing.T) {
	srv, calls := newControllerServer(t, http.StatusOK, Result{OK: true, Message: "Zone 3 started"})
	ctrl := NewHTTPController(srv.URL)

	result, err := ctrl.StartZone(context.Background(), 3, 600, domain.SourceAICommand)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "Zone 3 started", result.Message)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/api/zones/start", call.path)
	assert.Equal(t, 3, call.body.ZoneID)
	assert.Equal(t, 600, call.body.DurationSec)
	assert.Equal(t, domain.SourceAICommand, call.body.Source)
}

func TestHTTPController_CommandRoutes(t *testing.T) {
	srv, calls := newControllerServer(t, http.StatusOK, Result{OK: true})
	ctrl := NewHTTPController(srv.URL)
	ctx := context.Background()

	_, err := ctrl.StopZone(ctx, 2, domain.SourceAICommand)
	require.NoError(t, err)
	_, err = ctrl.StopAll(ctx, domain.SourceAICommand)
	require.NoError(t, err)
	_, err = ctrl.SetRainDelay(ctx, 24, domain.SourceAICommand)
	require.NoError(t, err)
	_, err = ctrl.ClearRainDelay(ctx, domain.SourceAICommand)
	require.NoError(t, err)
	_, err = ctrl.CreateSchedule(ctx, 1, "06:00", []int{1, 3, 5}, 900, domain.SourceAICommand)
	require.NoError(t, err)

	require.Len(t, *calls, 5)
	assert.Equal(t, "/api/zones/stop", (*calls)[0].path)
	assert.Equal(t, "/api/zones/stop-all", (*calls)[1].path)
	assert.Equal(t, "/api/rain-delay", (*calls)[2].path)
	assert.Equal(t, 24, (*calls)[2].body.Hours)
	assert.Equal(t, "/api/rain-delay/clear", (*calls)[3].path)
	assert.Equal(t, "/api/schedules", (*calls)[4].path)
	assert.Equal(t, "06:00", (*calls)[4].body.StartTime)
	assert.Equal(t, []int{1, 3, 5}, (*calls)[4].body.DaysOfWeek)
}

func TestHTTPController_Status(t *testing.T) {
	srv, calls := newControllerServer(t, http.StatusOK, StatusSnapshot{
		System:         domain.SystemEnabled,
		RainDelayHours: 12,
		Active:         []ZoneRun{{ZoneID: 2, RemainingSec: 300}},
	})
	ctrl := NewHTTPController(srv.URL)

	snap, err := ctrl.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SystemEnabled, snap.System)
	assert.Equal(t, 12, snap.RainDelayHours)
	require.Len(t, snap.Active, 1)
	assert.Equal(t, 2, snap.Active[0].ZoneID)

	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodGet, (*calls)[0].method)
	assert.Equal(t, "/api/status", (*calls)[0].path)
}

func TestHTTPController_ServerErrorSurfaced(t *testing.T) {
	srv, _ := newControllerServer(t, http.StatusInternalServerError, nil)
	ctrl := NewHTTPController(srv.URL)

	_, err := ctrl.StartZone(context.Background(), 1, 600, domain.SourceAICommand)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPController_UnreachableIsNetworkError(t *testing.T) {
	// Port 1 is reserved and nothing listens there.
	ctrl := NewHTTPController("http://127.0.0.1:1")

	_, err := ctrl.StartZone(context.Background(), 1, 600, domain.SourceAICommand)
	assert.ErrorIs(t, err, domain.ErrNetwork)

	_, err = ctrl.Status(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetwork)
}
