package weather

import (
	"errors"
	"fmt"
)

// ErrEmptySeries is returned when an otherwise well-formed response carries
// zero observations. Callers must never see an empty Series from a fetch.
var ErrEmptySeries = errors.New("response contained no observations")

// NetworkError indicates that an outbound request could not be completed:
// transport failure, timeout, or a non-2xx status from the remote API.
type NetworkError struct {
	URL        string
	StatusCode int // 0 when the request never produced a response
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError indicates that a response body did not match the expected
// schema. An empty body is a ParseError, never a partial result.
type ParseError struct {
	Source string // which API produced the body
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
