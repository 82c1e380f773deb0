package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/railsync.net/internal/static/errs"
)

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// FromError maps service errors to an HTTP status
func FromError(err error) ErrorMessage {
	var transportErr *errs.TransportError
	switch {
	case errors.Is(err, errs.ErrRunClosed):
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusConflict}
	case errors.As(err, &transportErr) && transportErr.StatusCode == http.StatusNotFound,
		errors.As(err, &transportErr) && transportErr.StatusCode == http.StatusBadRequest:
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusNotFound}
	case errors.Is(err, errs.ErrTransport):
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadGateway}
	case errors.Is(err, errs.ErrConfiguration):
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusServiceUnavailable}
	default:
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusInternalServerError}
	}
}
