package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/railsync.net/internal/adapter/crypto"
	"gitlab.com/railsync.net/internal/adapter/logging"
	"gitlab.com/railsync.net/internal/config"
)

func protectedRouter(t *testing.T) (*mux.Router, string) {
	t.Helper()
	tokens := crypto.NewJWTService(&config.JwtConfig{Secret: "s3cret"})
	token, err := tokens.GenerateTokenHMAC(context.Background(), "ci", time.Minute)
	require.NoError(t, err)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(New(tokens, logging.NewNopLogger()).JWTMiddleware)
	api.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r, token
}

func TestJWTMiddleware(t *testing.T) {
	r, token := protectedRouter(t)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRegisterHealth(t *testing.T) {
	r := mux.NewRouter()
	RegisterHealth(r, "railsync")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"railsync"}`, rec.Body.String())
}
