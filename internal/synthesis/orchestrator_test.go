package synthesis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pluvio/internal/domain"
	"pluvio/internal/schedule"
	"pluvio/internal/testutil"
)

// stubGenerator returns canned results and records the requests it saw.
type stubGenerator struct {
	plan       *domain.WateringSchedule
	planErr    error
	reply      *ChangeReply
	replyErr   error
	lastPlan   PlanRequest
	lastChange ChangeRequest
}

func (s *stubGenerator) GeneratePlan(_ context.Context, req PlanRequest) (*domain.WateringSchedule, error) {
	s.lastPlan = req
	return s.plan, s.planErr
}

func (s *stubGenerator) GenerateChange(_ context.Context, req ChangeRequest) (*ChangeReply, error) {
	s.lastChange = req
	return s.reply, s.replyErr
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func newTestOrchestrator(gen Generator) *Orchestrator {
	o := NewOrchestrator(gen, domain.DefaultZones(), domain.TierStandard, "UTC")
	o.SetClock(fixedClock(testNow))
	return o
}

func TestSynthesize_ValidPlanAccepted(t *testing.T) {
	gen := &stubGenerator{plan: testutil.NewTestPlan(testNow)}
	o := newTestOrchestrator(gen)

	plan, err := o.Synthesize(context.Background(), nil, nil, "", nil)
	require.NoError(t, err)
	require.Len(t, plan.Schedule, domain.PlanDays)
}

func TestSynthesize_PrunesTodaysElapsedSlots(t *testing.T) {
	gen := &stubGenerator{plan: testutil.NewTestPlan(testNow, testutil.WithDayEvents(0,
		testutil.NewTestEvent(1, testutil.WithStartTime("05:00")),
		testutil.NewTestEvent(2, testutil.WithStartTime("19:00")),
	))}
	o := newTestOrchestrator(gen)

	plan, err := o.Synthesize(context.Background(), nil, nil, "", nil)
	require.NoError(t, err)

	events := plan.Schedule[0].Events
	require.Len(t, events, 1, "the 05:00 slot has already passed at 08:00")
	assert.Equal(t, "19:00", events[0].StartTime)
}

func TestSynthesize_MalformedPlanRejected(t *testing.T) {
	bad := testutil.NewTestPlan(testNow)
	bad.Schedule = bad.Schedule[:5]
	gen := &stubGenerator{plan: bad}
	o := newTestOrchestrator(gen)

	_, err := o.Synthesize(context.Background(), nil, nil, "", nil)
	assert.ErrorIs(t, err, domain.ErrSchema)
}

func TestSynthesize_SplitsPriorPlanAtToday(t *testing.T) {
	prior := testutil.NewTestPlan(testNow.AddDate(0, 0, -2))
	gen := &stubGenerator{plan: testutil.NewTestPlan(testNow)}
	o := newTestOrchestrator(gen)

	_, err := o.Synthesize(context.Background(), prior, nil, "", nil)
	require.NoError(t, err)

	require.Len(t, gen.lastPlan.GroundTruth, 2, "two elapsed days are historical fact")
	require.Len(t, gen.lastPlan.PriorPlan, 5)
	assert.Equal(t, testNow.Format(domain.DateLayout), gen.lastPlan.PriorPlan[0].Day)
}

func TestDirectChange_AnswerPassesThrough(t *testing.T) {
	gen := &stubGenerator{reply: &ChangeReply{
		ResponseType: ResponseAnswer,
		Answer:       "Zone 3 waters Tuesday at 05:00.",
	}}
	o := newTestOrchestrator(gen)

	reply, err := o.DirectChange(context.Background(), "when does zone 3 water?", nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, ResponseAnswer, reply.ResponseType)
}

func TestDirectChange_ModificationValidatedAndPruned(t *testing.T) {
	direct := testutil.NewTestPlan(testNow, testutil.WithDayEvents(0,
		testutil.NewTestEvent(1, testutil.WithStartTime("05:00"))))
	gen := &stubGenerator{reply: &ChangeReply{
		ResponseType: ResponseModification,
		Answer:       "Skipped today's run.",
		DirectChange: direct,
	}}
	o := newTestOrchestrator(gen)

	reply, err := o.DirectChange(context.Background(), "skip today", nil, nil, "")
	require.NoError(t, err)
	assert.Empty(t, reply.DirectChange.Schedule[0].Events)
}

func TestDirectChange_MalformedCompensatedRejected(t *testing.T) {
	comp := testutil.NewTestPlan(testNow)
	comp.Schedule[0].Events[0].ZoneID = 11
	gen := &stubGenerator{reply: &ChangeReply{
		ResponseType:     ResponseModification,
		Answer:           "ok",
		FollowUpQuestion: "Also water Thursday?",
		DirectChange:     testutil.NewTestPlan(testNow),
		Compensated:      comp,
	}}
	o := newTestOrchestrator(gen)

	_, err := o.DirectChange(context.Background(), "cancel friday", nil, nil, "")
	assert.ErrorIs(t, err, domain.ErrSchema)
}

func TestDirectChange_GeneratorErrorPropagates(t *testing.T) {
	wantErr := errors.New("backend down")
	gen := &stubGenerator{replyErr: wantErr}
	o := newTestOrchestrator(gen)

	_, err := o.DirectChange(context.Background(), "skip today", nil, nil, "")
	assert.ErrorIs(t, err, wantErr)
}

func TestSynthesize_AdoptsForecastTimezone(t *testing.T) {
	// 03:00 UTC on June 2 is still 22:00 on June 1 in America/Chicago,
	// the forecast's geocoded timezone. The plan clock must follow the
	// yard, not the host, or a plan starting June 1 fails validation.
	hostNow := time.Date(2026, 6, 2, 3, 0, 0, 0, time.UTC)
	yardDay := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	gen := &stubGenerator{plan: testutil.NewTestPlan(yardDay)}
	o := NewOrchestrator(gen, domain.DefaultZones(), domain.TierStandard, "")
	o.SetClock(fixedClock(hostNow))

	plan, err := o.Synthesize(context.Background(), nil, testutil.NewTestForecast(yardDay), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-01", gen.lastPlan.Now.Format(domain.DateLayout))
	assert.Equal(t, "2026-06-01", plan.Schedule[0].Day)
}

func TestSynthesize_ConfiguredTimezoneWinsOverForecast(t *testing.T) {
	hostNow := time.Date(2026, 6, 2, 3, 0, 0, 0, time.UTC)

	gen := &stubGenerator{plan: testutil.NewTestPlan(hostNow)}
	o := NewOrchestrator(gen, domain.DefaultZones(), domain.TierStandard, "UTC")
	o.SetClock(fixedClock(hostNow))

	forecast := testutil.NewTestForecast(hostNow) // geocoded America/Chicago
	_, err := o.Synthesize(context.Background(), nil, forecast, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-02", gen.lastPlan.Now.Format(domain.DateLayout))
}

func TestDirectChange_AdoptsForecastTimezone(t *testing.T) {
	hostNow := time.Date(2026, 6, 2, 3, 0, 0, 0, time.UTC)
	yardDay := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	gen := &stubGenerator{reply: &ChangeReply{
		ResponseType: ResponseModification,
		Answer:       "Adjusted.",
		DirectChange: testutil.NewTestPlan(yardDay),
	}}
	o := NewOrchestrator(gen, domain.DefaultZones(), domain.TierStandard, "")
	o.SetClock(fixedClock(hostNow))

	reply, err := o.DirectChange(context.Background(), "water less", nil, testutil.NewTestForecast(yardDay), "")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-01", gen.lastChange.Now.Format(domain.DateLayout))
	assert.Equal(t, "2026-06-01", reply.DirectChange.Schedule[0].Day)
}

func TestEvaluateShift_UsesThresholds(t *testing.T) {
	o := newTestOrchestrator(&stubGenerator{})
	assumed := testutil.NewTestForecast(testNow, testutil.WithPrecipProbability(2, 20)).Daily
	latest := testutil.NewTestForecast(testNow, testutil.WithPrecipProbability(2, 55)).Daily

	out := o.EvaluateShift(assumed, latest)
	require.True(t, out.Significant)
	assert.Equal(t, schedule.ShiftPrecipJump, out.Reasons[0].Code)
}
