package synthesis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pluvio/internal/domain"
	"pluvio/internal/llm"
	"pluvio/internal/testutil"
)

// fakeClient returns a fixed text response or error.
type fakeClient struct {
	text string
	err  error
	last llm.GenerateRequest
}

func (f *fakeClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.text, Model: "test"}, nil
}

func (f *fakeClient) Available(context.Context) bool { return true }

func planJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(testutil.NewTestPlan(testNow))
	require.NoError(t, err)
	return string(data)
}

func TestLLMGenerator_GeneratePlan(t *testing.T) {
	client := &fakeClient{text: planJSON(t)}
	g := NewLLMGenerator(client)

	plan, err := g.GeneratePlan(context.Background(), fixturePlanRequest())
	require.NoError(t, err)
	assert.Len(t, plan.Schedule, domain.PlanDays)
	assert.Equal(t, llm.TaskPlan, client.last.Task)
}

func TestLLMGenerator_ProactiveReplanUsesAdjustTask(t *testing.T) {
	client := &fakeClient{text: planJSON(t)}
	g := NewLLMGenerator(client)

	req := fixturePlanRequest()
	req.Reasons = []string{"rain probability for 2026-06-03 jumped 20% -> 55%"}
	_, err := g.GeneratePlan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, llm.TaskAdjust, client.last.Task)
}

func TestLLMGenerator_FencedOutputAccepted(t *testing.T) {
	client := &fakeClient{text: "Here you go:\n```json\n" + planJSON(t) + "\n```"}
	g := NewLLMGenerator(client)

	_, err := g.GeneratePlan(context.Background(), fixturePlanRequest())
	assert.NoError(t, err)
}

func TestLLMGenerator_MissingReasoningIsSchemaError(t *testing.T) {
	plan := testutil.NewTestPlan(testNow)
	plan.Reasoning = ""
	data, err := json.Marshal(plan)
	require.NoError(t, err)

	g := NewLLMGenerator(&fakeClient{text: string(data)})
	_, err = g.GeneratePlan(context.Background(), fixturePlanRequest())
	assert.ErrorIs(t, err, domain.ErrSchema)
}

func TestLLMGenerator_TimeoutIsNetworkError(t *testing.T) {
	g := NewLLMGenerator(&fakeClient{err: llm.ErrTimeout})
	_, err := g.GeneratePlan(context.Background(), fixturePlanRequest())

	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.True(t, domain.Retryable(err))
}

func TestLLMGenerator_GarbageOutputIsSchemaError(t *testing.T) {
	g := NewLLMGenerator(&fakeClient{text: "sorry, I can't help with that"})
	_, err := g.GeneratePlan(context.Background(), fixturePlanRequest())

	assert.ErrorIs(t, err, domain.ErrSchema)
	assert.False(t, domain.Retryable(err))
}

func TestLLMGenerator_GenerateChange_Answer(t *testing.T) {
	reply := ChangeReply{ResponseType: ResponseAnswer, Answer: "Tuesday at 05:00."}
	data, err := json.Marshal(reply)
	require.NoError(t, err)

	client := &fakeClient{text: string(data)}
	g := NewLLMGenerator(client)

	got, err := g.GenerateChange(context.Background(), ChangeRequest{Command: "when?", Now: testNow})
	require.NoError(t, err)
	assert.Equal(t, ResponseAnswer, got.ResponseType)
	assert.Equal(t, llm.TaskDirectChange, client.last.Task)
}

func TestLLMGenerator_GenerateChange_CompensatedNeedsFollowUp(t *testing.T) {
	reply := ChangeReply{
		ResponseType: ResponseModification,
		Answer:       "done",
		DirectChange: testutil.NewTestPlan(testNow),
		Compensated:  testutil.NewTestPlan(testNow),
		// FollowUpQuestion deliberately missing.
	}
	data, err := json.Marshal(reply)
	require.NoError(t, err)

	g := NewLLMGenerator(&fakeClient{text: string(data)})
	_, err = g.GenerateChange(context.Background(), ChangeRequest{Command: "cancel friday", Now: testNow})
	assert.ErrorIs(t, err, domain.ErrSchema)
}
