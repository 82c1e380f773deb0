package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/railsync.net/internal/static/errs"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"closed run", fmt.Errorf("close: %w", errs.ErrRunClosed), http.StatusConflict},
		{"unknown run", &errs.TransportError{Op: "get_run", StatusCode: 400}, http.StatusNotFound},
		{"missing run", &errs.TransportError{Op: "get_run", StatusCode: 404}, http.StatusNotFound},
		{"server error", &errs.TransportError{Op: "get_run", StatusCode: 500}, http.StatusBadGateway},
		{"network", &errs.TransportError{Op: "get_run", Err: errors.New("refused")}, http.StatusBadGateway},
		{"config", errs.Configuration("TESTRAIL_HOST is required"), http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err).StatusCode)
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrorMessage{Message: "nope", StatusCode: http.StatusConflict})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"nope","status_code":409}`, rec.Body.String())
}
