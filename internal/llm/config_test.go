package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_PlanGetsLongTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 60000, cfg.Tasks[TaskPlan].TimeoutMs)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskAnswer))
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("PLUVIO_LLM_TIMEOUT_MS", "9000")
	t.Setenv("PLUVIO_LLM_PLAN_TIMEOUT_MS", "90000")
	t.Setenv("PLUVIO_LLM_ANSWER_TIMEOUT_MS", "7000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 90000, cfg.TaskTimeout(TaskPlan))
	assert.Equal(t, 7000, cfg.TaskTimeout(TaskAnswer))
	assert.Equal(t, 45000, cfg.TaskTimeout(TaskDirectChange))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("PLUVIO_LLM_PLAN_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 60000, cfg.TaskTimeout(TaskPlan))
}

func TestLoadConfig_EnabledFlag(t *testing.T) {
	t.Setenv("PLUVIO_LLM_ENABLED", "true")
	t.Setenv("PLUVIO_LLM_MODEL", "qwen2.5")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "qwen2.5", cfg.Model)
}
