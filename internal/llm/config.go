package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskPlan is full 7-day plan synthesis.
	TaskPlan TaskType = "plan"
	// TaskDirectChange turns one user command into a minimally edited plan,
	// optionally alongside a compensated alternative.
	TaskDirectChange TaskType = "direct_change"
	// TaskAdjust is the proactive weather-driven re-plan.
	TaskAdjust TaskType = "adjust"
	// TaskAnswer is free-form question answering about the schedule.
	TaskAnswer TaskType = "answer"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the LLM subsystem.
type Config struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. Plan synthesis gets
// a long timeout; it produces a full week of structured output.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  15000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskPlan:         {Temperature: 0.2, MaxTokens: 4096, TimeoutMs: 60000},
			TaskDirectChange: {Temperature: 0.1, MaxTokens: 4096, TimeoutMs: 45000},
			TaskAdjust:       {Temperature: 0.2, MaxTokens: 4096, TimeoutMs: 60000},
			TaskAnswer:       {Temperature: 0.3, MaxTokens: 1024, TimeoutMs: 15000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables, falling back
// to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PLUVIO_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PLUVIO_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PLUVIO_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PLUVIO_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PLUVIO_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PLUVIO_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskPlan, "PLUVIO_LLM_PLAN_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskDirectChange, "PLUVIO_LLM_DIRECT_CHANGE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskAdjust, "PLUVIO_LLM_ADJUST_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskAnswer, "PLUVIO_LLM_ANSWER_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type. Uses the
// task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
