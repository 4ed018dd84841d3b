package voice

import "errors"

var (
	// ErrUnavailable indicates the synthesis endpoint is unreachable.
	ErrUnavailable = errors.New("voice endpoint unavailable")

	// ErrTimeout indicates the synthesis request exceeded the configured timeout.
	ErrTimeout = errors.New("voice request timed out")

	// ErrEmptyText indicates the caller asked to synthesize nothing.
	ErrEmptyText = errors.New("empty narration text")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("voice retry attempts exhausted")
)
