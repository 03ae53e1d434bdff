package synthesis

import (
	"context"
	"errors"
	"fmt"

	"pluvio/internal/domain"
	"pluvio/internal/llm"
)

// llmGenerator implements Generator against a live LLM client.
type llmGenerator struct {
	client llm.Client
}

// NewLLMGenerator creates the live generation backend.
func NewLLMGenerator(client llm.Client) Generator {
	return &llmGenerator{client: client}
}

func (g *llmGenerator) GeneratePlan(ctx context.Context, req PlanRequest) (*domain.WateringSchedule, error) {
	task := llm.TaskPlan
	if len(req.Reasons) > 0 {
		task = llm.TaskAdjust
	}
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: planSystemPrompt,
		UserPrompt:   buildPlanUserPrompt(req),
	})
	if err != nil {
		return nil, mapLLMError(err)
	}

	plan, err := llm.ExtractJSON[domain.WateringSchedule](resp.Text, validatePlanReply)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchema, err)
	}
	return &plan, nil
}

func (g *llmGenerator) GenerateChange(ctx context.Context, req ChangeRequest) (*ChangeReply, error) {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskDirectChange,
		SystemPrompt: changeSystemPrompt,
		UserPrompt:   buildChangeUserPrompt(req),
	})
	if err != nil {
		return nil, mapLLMError(err)
	}

	reply, err := llm.ExtractJSON[ChangeReply](resp.Text, validateChangeReply)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchema, err)
	}
	return &reply, nil
}

// mapLLMError folds transport-level generation failures into the pipeline's
// error taxonomy: timeouts and unreachable backends are retryable network
// errors, malformed output is a schema error.
func mapLLMError(err error) error {
	switch {
	case errors.Is(err, llm.ErrTimeout), errors.Is(err, llm.ErrUnavailable), errors.Is(err, llm.ErrRetryExhausted):
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	case errors.Is(err, llm.ErrInvalidOutput):
		return fmt.Errorf("%w: %v", domain.ErrSchema, err)
	default:
		return err
	}
}
