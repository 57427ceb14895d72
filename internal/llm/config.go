package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskNarrate turns a planned itinerary into a short travel narrative.
	TaskNarrate TaskType = "narrate"
)

type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig configures the optional narration backend. It is disabled unless
// WAYFARER_LLM_ENABLED is set.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

func DefaultConfig() LLMConfig {
	return LLMConfig{
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  15000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskNarrate: {Temperature: 0.4, MaxTokens: 1536, TimeoutMs: 30000},
		},
	}
}

// LoadConfig overlays WAYFARER_LLM_* environment variables on the defaults.
// Unparseable values are ignored.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v, ok := env("WAYFARER_LLM_ENABLED"); ok {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v, ok := env("WAYFARER_LLM_LOG_CALLS"); ok {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v, ok := env("WAYFARER_LLM_ENDPOINT"); ok {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v, ok := env("WAYFARER_LLM_MODEL"); ok {
		cfg.Model = v
	}
	if n, ok := envInt("WAYFARER_LLM_TIMEOUT_MS"); ok && n > 0 {
		cfg.TimeoutMs = n
	}
	if n, ok := envInt("WAYFARER_LLM_MAX_RETRIES"); ok && n >= 0 {
		cfg.MaxRetries = n
	}
	if n, ok := envInt("WAYFARER_LLM_NARRATE_TIMEOUT_MS"); ok && n > 0 {
		tc := cfg.Tasks[TaskNarrate]
		tc.TimeoutMs = n
		cfg.Tasks[TaskNarrate] = tc
	}
	return cfg
}

// TaskTimeout returns the task-specific timeout, or the global one.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func env(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

func envInt(name string) (int, bool) {
	v, ok := env(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}
