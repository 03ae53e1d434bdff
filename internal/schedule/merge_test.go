package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pluvio/internal/domain"
	"pluvio/internal/testutil"
)

var today = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func TestApplyDirectChange_ReplacesWholesale(t *testing.T) {
	base := testutil.NewTestPlan(today)
	change := testutil.NewTestPlan(today, testutil.WithReasoning("skip rainy Tuesday"))

	got, err := ApplyDirectChange(base, change, today)
	require.NoError(t, err)
	assert.Equal(t, "skip rainy Tuesday", got.Reasoning)
	assert.NotSame(t, change, got, "merged plan is a defensive copy")
}

func TestApplyDirectChange_SixDayPlanRejected(t *testing.T) {
	base := testutil.NewTestPlan(today)
	change := testutil.NewTestPlan(today)
	change.Schedule = change.Schedule[:6]

	got, err := ApplyDirectChange(base, change, today)
	assert.ErrorIs(t, err, domain.ErrSchema)
	assert.Same(t, base, got, "base plan survives a structural violation")
}

func TestApplyDirectChange_WrongStartDayRejected(t *testing.T) {
	base := testutil.NewTestPlan(today)
	change := testutil.NewTestPlan(today.AddDate(0, 0, 1))

	_, err := ApplyDirectChange(base, change, today)
	assert.ErrorIs(t, err, domain.ErrSchema)
}

func TestStampAdjustments_ChangedEventsStamped(t *testing.T) {
	now := today
	prev := testutil.NewTestPlan(today)
	next := testutil.NewTestPlan(today)
	// Day 2's event moved earlier.
	next.Schedule[2].Events[0].StartTime = "04:30"

	StampAdjustments(prev, next, "user", now)

	stamped := next.Schedule[2].Events[0]
	require.NotNil(t, stamped.Adjustment)
	assert.Equal(t, "user", stamped.Adjustment.User)
	assert.Equal(t, now, stamped.Adjustment.Timestamp)

	assert.Nil(t, next.Schedule[1].Events[0].Adjustment, "unchanged events stay unstamped")
}

func TestStampAdjustments_DurationChangeStamped(t *testing.T) {
	prev := testutil.NewTestPlan(today)
	next := testutil.NewTestPlan(today)
	next.Schedule[0].Events[0].DurationMinutes += 10

	StampAdjustments(prev, next, "user", today)
	assert.NotNil(t, next.Schedule[0].Events[0].Adjustment)
}

func TestStampAdjustments_NewEventUnstamped(t *testing.T) {
	prev := testutil.NewTestPlan(today)
	next := testutil.NewTestPlan(today)
	next.Schedule[3].Events = append(next.Schedule[3].Events, testutil.NewTestEvent(2, testutil.WithStartTime("06:00")))

	StampAdjustments(prev, next, "user", today)

	events := next.Schedule[3].Events
	assert.Nil(t, events[len(events)-1].Adjustment, "inserted events carry no stamp")
}

func TestStampAdjustments_CarriesPriorStamp(t *testing.T) {
	earlier := today.Add(-24 * time.Hour)
	prev := testutil.NewTestPlan(today, testutil.WithDayEvents(1,
		testutil.NewTestEvent(2, testutil.WithAdjustment("user", earlier))))
	next := testutil.NewTestPlan(today, testutil.WithDayEvents(1,
		testutil.NewTestEvent(2)))

	StampAdjustments(prev, next, "user", today)

	got := next.Schedule[1].Events[0]
	require.NotNil(t, got.Adjustment)
	assert.Equal(t, earlier, got.Adjustment.Timestamp, "unchanged event keeps its old stamp")
}

func TestPruneElapsed_DropsTodaysPastEvents(t *testing.T) {
	plan := testutil.NewTestPlan(today, testutil.WithDayEvents(0,
		testutil.NewTestEvent(1, testutil.WithStartTime("05:00")),
		testutil.NewTestEvent(2, testutil.WithStartTime("08:00")),
		testutil.NewTestEvent(3, testutil.WithStartTime("20:00")),
	))

	// 08:00 local: 05:00 has passed, 08:00 is not strictly after now.
	PruneElapsed(plan, today)

	events := plan.Schedule[0].Events
	require.Len(t, events, 1)
	assert.Equal(t, "20:00", events[0].StartTime)
}

func TestPruneElapsed_FutureDaysUntouched(t *testing.T) {
	plan := testutil.NewTestPlan(today)
	PruneElapsed(plan, today.Add(2*time.Hour))

	assert.Empty(t, plan.Schedule[0].Events, "today's 05:00 event has passed by 10:00")
	for i := 1; i < domain.PlanDays; i++ {
		assert.NotEmpty(t, plan.Schedule[i].Events, "day %d", i)
	}
}

func TestElapsed(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, Elapsed("2026-06-01", "11:59", now))
	assert.True(t, Elapsed("2026-06-01", "12:00", now), "exact start counts as elapsed")
	assert.False(t, Elapsed("2026-06-01", "12:01", now))
	assert.False(t, Elapsed("2026-06-02", "05:00", now))
}
