package errs

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration     = errors.New("configuration error")
	ErrTransport         = errors.New("transport error")
	ErrRunClosed         = errors.New("run is already closed")
	ErrInvalidTransition = errors.New("invalid sync phase transition")
	ErrInvalidToken      = errors.New("invalid token")
	ErrMissingRunID      = errors.New("missing TestRail run ID")
)

// TransportError describes a failed call to the TestRail API.
type TransportError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("testrail %s: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("testrail %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Configuration wraps a configuration problem with ErrConfiguration.
func Configuration(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
