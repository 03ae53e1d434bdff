package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pluvio/internal/db"
	"pluvio/internal/repository"
	"pluvio/internal/testutil"
)

var firstDay = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestSQLitePlanRepo_LoadActiveEmpty(t *testing.T) {
	repo := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))

	active, err := repo.LoadActive(context.Background())
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestSQLitePlanRepo_SaveLoadActiveRoundTrip(t *testing.T) {
	repo := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	stamped := time.Date(2026, 5, 30, 14, 0, 0, 0, time.UTC)
	plan := testutil.NewTestPlan(firstDay,
		testutil.WithReasoning("Hot week ahead, water early."),
		testutil.WithDayEvents(1,
			testutil.NewTestEvent(2, testutil.WithCanceled()),
			testutil.NewTestEvent(4, testutil.WithAdjustment("user", stamped)),
		),
	)
	assumed := testutil.NewTestForecast(firstDay).Daily

	require.NoError(t, repo.SaveActive(ctx, plan, assumed))

	active, err := repo.LoadActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "Hot week ahead, water early.", active.Plan.Reasoning)
	assert.Equal(t, plan.Schedule, active.Plan.Schedule)
	assert.Equal(t, assumed, active.AssumedForecast)
	assert.False(t, active.UpdatedAt.IsZero())

	day1 := active.Plan.Schedule[1]
	assert.True(t, day1.Events[0].IsCanceled)
	require.NotNil(t, day1.Events[1].Adjustment)
	assert.Equal(t, "user", day1.Events[1].Adjustment.User)
}

func TestSQLitePlanRepo_SaveActiveOverwrites(t *testing.T) {
	repo := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveActive(ctx, testutil.NewTestPlan(firstDay, testutil.WithReasoning("First.")), nil))
	require.NoError(t, repo.SaveActive(ctx, testutil.NewTestPlan(firstDay, testutil.WithReasoning("Second.")), nil))

	active, err := repo.LoadActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Second.", active.Plan.Reasoning)
}

func TestSQLitePlanRepo_CandidatesRoundTrip(t *testing.T) {
	repo := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	cands, err := repo.LoadCandidates(ctx)
	require.NoError(t, err)
	assert.Nil(t, cands)

	require.NoError(t, repo.SaveCandidates(ctx, &repository.Candidates{
		Direct:      testutil.NewTestPlan(firstDay, testutil.WithReasoning("Direct.")),
		Compensated: testutil.NewTestPlan(firstDay, testutil.WithReasoning("Compensated.")),
		FollowUp:    "Extend Thursday instead?",
	}))

	cands, err = repo.LoadCandidates(ctx)
	require.NoError(t, err)
	require.NotNil(t, cands)
	assert.Equal(t, "Direct.", cands.Direct.Reasoning)
	assert.Equal(t, "Compensated.", cands.Compensated.Reasoning)
	assert.Equal(t, "Extend Thursday instead?", cands.FollowUp)
	assert.False(t, cands.CreatedAt.IsZero())
}

func TestSQLitePlanRepo_DirectOnlyCandidate(t *testing.T) {
	repo := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveCandidates(ctx, &repository.Candidates{
		Direct:   testutil.NewTestPlan(firstDay),
		FollowUp: "Apply the adjusted plan?",
	}))

	cands, err := repo.LoadCandidates(ctx)
	require.NoError(t, err)
	require.NotNil(t, cands)
	assert.NotNil(t, cands.Direct)
	assert.Nil(t, cands.Compensated)
}

func TestSQLitePlanRepo_SaveCandidatesReplacesPrevious(t *testing.T) {
	repo := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveCandidates(ctx, &repository.Candidates{
		Direct:      testutil.NewTestPlan(firstDay, testutil.WithReasoning("Old.")),
		Compensated: testutil.NewTestPlan(firstDay),
		FollowUp:    "Old question?",
	}))
	require.NoError(t, repo.SaveCandidates(ctx, &repository.Candidates{
		Direct:   testutil.NewTestPlan(firstDay, testutil.WithReasoning("New.")),
		FollowUp: "New question?",
	}))

	cands, err := repo.LoadCandidates(ctx)
	require.NoError(t, err)
	require.NotNil(t, cands)
	assert.Equal(t, "New.", cands.Direct.Reasoning)
	assert.Nil(t, cands.Compensated)
	assert.Equal(t, "New question?", cands.FollowUp)
}

func TestSQLitePlanRepo_ClearCandidates(t *testing.T) {
	repo := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveCandidates(ctx, &repository.Candidates{
		Direct: testutil.NewTestPlan(firstDay),
	}))
	require.NoError(t, repo.ClearCandidates(ctx))

	cands, err := repo.LoadCandidates(ctx)
	require.NoError(t, err)
	assert.Nil(t, cands)

	// Clearing an already-empty table is not an error.
	assert.NoError(t, repo.ClearCandidates(ctx))
}

func TestSQLitePlanRepo_WorksWithinTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanRepo(tx)
		if err := repo.SaveActive(ctx, testutil.NewTestPlan(firstDay), nil); err != nil {
			return err
		}
		return repo.ClearCandidates(ctx)
	})
	require.NoError(t, err)

	active, err := repository.NewSQLitePlanRepo(database).LoadActive(ctx)
	require.NoError(t, err)
	assert.NotNil(t, active)
}
