package llm

import (
	"context"
	"log/slog"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

type slogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver reports every call through logger at debug level, and
// failures at warn level.
func NewSlogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		return NoopObserver{}
	}
	return &slogObserver{logger: logger}
}

func (o *slogObserver) OnCallComplete(e LLMCallEvent) {
	level := slog.LevelDebug
	if !e.Success {
		level = slog.LevelWarn
	}
	o.logger.Log(context.Background(), level, "llm_call",
		"task", string(e.Task),
		"model", e.Model,
		"latency_ms", e.LatencyMs,
		"attempts", e.Attempts,
		"success", e.Success,
		"error_code", e.ErrorCode,
	)
}

type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
