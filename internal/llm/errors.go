package llm

import "errors"

var (
	// ErrProviderUnavailable indicates the completion provider is unreachable.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all attempts have failed.
	ErrRetryExhausted = errors.New("llm attempts exhausted")

	// ErrEmptyResponse indicates the provider answered without any content.
	ErrEmptyResponse = errors.New("llm returned empty response")
)
