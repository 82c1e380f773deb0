package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("submit: %w", &TransportError{Op: "add_results_for_cases", StatusCode: 403, Body: "forbidden"})

	assert.True(t, errors.Is(err, ErrTransport))
	assert.Contains(t, err.Error(), "status 403")

	var te *TransportError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, "add_results_for_cases", te.Op)
}

func TestTransportError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Op: "get_tests", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, "testrail get_tests: connection refused", err.Error())
}

func TestConfiguration_WrapsSentinel(t *testing.T) {
	err := Configuration("%s is required", "TESTRAIL_HOST")

	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, "configuration error: TESTRAIL_HOST is required", err.Error())
}
