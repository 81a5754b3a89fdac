package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	// ErrNoTranscript means every enabled transcript source was exhausted.
	ErrNoTranscript = errors.New("no transcript available")
	// ErrNotFound is returned by stores for unknown ids.
	ErrNotFound = errors.New("not found")
	// ErrConfigMissing means a required provider credential is absent.
	ErrConfigMissing = errors.New("required configuration missing")
)

// ExtractionError is returned when the model output never validated
// within the retry budget. LastErr is kept for diagnostics and must not
// be shown raw to end users.
type ExtractionError struct {
	Attempts int
	LastErr  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("recipe extraction failed after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *ExtractionError) Unwrap() error { return e.LastErr }

// AudioError marks an audio transcription that was attempted and failed.
// It is fatal for the request: once the audio path is taken, the result is
// never downgraded to a metadata placeholder.
type AudioError struct {
	Err error
}

func (e *AudioError) Error() string {
	return fmt.Sprintf("audio transcription failed: %v", e.Err)
}

func (e *AudioError) Unwrap() error { return e.Err }
