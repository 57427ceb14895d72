package llm

import "errors"

var (
	ErrOllamaUnavailable = errors.New("ollama server unavailable")
	ErrTimeout           = errors.New("llm request timed out")
	// ErrInvalidOutput means the response could not be decoded into the
	// expected structure.
	ErrInvalidOutput  = errors.New("invalid llm output format")
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
