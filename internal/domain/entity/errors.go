package entity

import (
	"fmt"
	"time"
)

// Error kinds exposed in the HTTP error response.
const (
	KindAuthentication = "authentication"
	KindGeneration     = "generation_failed"
	KindTimeout        = "generation_timeout"
	KindExtraction     = "extraction"
	KindDriver         = "driver"
)

// AuthenticationError: login was required but could not be completed.
// Never retried automatically, retrying with possibly-wrong credentials
// risks account lockout.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Reason
}

// GenerationFailedError: the remote site showed an explicit error marker
// while the generation was in flight.
type GenerationFailedError struct {
	Reason string
}

func (e *GenerationFailedError) Error() string {
	return "generation failed: " + e.Reason
}

// GenerationTimeoutError: the polling deadline passed with no terminal
// signal. Distinct from failure so the caller may retry with a fresh
// request.
type GenerationTimeoutError struct {
	Deadline time.Duration
}

func (e *GenerationTimeoutError) Error() string {
	return fmt.Sprintf("generation did not finish within %s", e.Deadline)
}

// ExtractionError: completion was signaled but no usable code could be
// retrieved after bounded retries.
type ExtractionError struct {
	Attempts int
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("extraction failed after %d attempts", e.Attempts)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// DriverError wraps an underlying browser-operation fault (navigation
// error, detached element) not otherwise classified.
type DriverError struct {
	Op  string
	Err error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("driver %s: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error { return e.Err }
