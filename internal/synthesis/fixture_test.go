package synthesis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pluvio/internal/domain"
	"pluvio/internal/schedule"
	"pluvio/internal/testutil"
)

func fixturePlanRequest() PlanRequest {
	return PlanRequest{
		Zones:      domain.DefaultZones(),
		Preference: domain.TierStandard,
		Now:        testNow,
	}
}

func TestFixtureGenerator_Deterministic(t *testing.T) {
	f := NewFixtureGenerator()

	a, err := f.GeneratePlan(context.Background(), fixturePlanRequest())
	require.NoError(t, err)
	b, err := f.GeneratePlan(context.Background(), fixturePlanRequest())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFixtureGenerator_ProducesStructurallyValidPlan(t *testing.T) {
	f := NewFixtureGenerator()
	plan, err := f.GeneratePlan(context.Background(), fixturePlanRequest())
	require.NoError(t, err)

	assert.NoError(t, schedule.ValidateStructure(plan, testNow))
	assert.NoError(t, validatePlanReply(*plan))
}

func TestFixtureGenerator_FoundationWatersDaily(t *testing.T) {
	f := NewFixtureGenerator()
	plan, err := f.GeneratePlan(context.Background(), fixturePlanRequest())
	require.NoError(t, err)

	for i, day := range plan.Schedule {
		found := false
		for _, e := range day.Events {
			if e.ZoneID == 4 {
				found = true
				assert.Equal(t, 5, e.DurationMinutes, "foundation runs short cycles")
			}
		}
		assert.True(t, found, "day %d has no foundation run", i)
	}
}

func TestFixtureGenerator_TierScalesMinutes(t *testing.T) {
	f := NewFixtureGenerator()

	req := fixturePlanRequest()
	req.Preference = domain.TierConserve
	conserve, err := f.GeneratePlan(context.Background(), req)
	require.NoError(t, err)

	req.Preference = domain.TierLush
	lush, err := f.GeneratePlan(context.Background(), req)
	require.NoError(t, err)

	// Zone 1 (high need) waters every day.
	assert.Equal(t, 15, conserve.Schedule[0].Events[0].DurationMinutes)
	assert.Equal(t, 30, lush.Schedule[0].Events[0].DurationMinutes)
}

func TestFixtureGenerator_HeavyRainSuppressesToday(t *testing.T) {
	f := NewFixtureGenerator()

	req := fixturePlanRequest()
	req.Forecast = testutil.NewTestForecast(testNow)
	req.Forecast.Current.Rainfall24hIn = 0.8

	plan, err := f.GeneratePlan(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, plan.Schedule[0].Events, "0.8in trailing rain suppresses today")
	assert.NotEmpty(t, plan.Schedule[1].Events)
}

func TestFixtureGenerator_ChangeWithoutPlanCreatesOne(t *testing.T) {
	f := NewFixtureGenerator()

	reply, err := f.GenerateChange(context.Background(), ChangeRequest{
		Command: "set up a schedule",
		Zones:   domain.DefaultZones(),
		Now:     testNow,
	})
	require.NoError(t, err)
	assert.Equal(t, ResponseModification, reply.ResponseType)
	require.NotNil(t, reply.DirectChange)
	assert.NoError(t, validateChangeReply(*reply))
}
