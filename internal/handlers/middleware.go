package handlers

import (
	"net/http"
	"strings"

	"gitlab.com/railsync.net/internal/core/ports/primary"
)

type MiddlewareProvider struct {
	tokens primary.TokenService
	logger primary.Logger
}

func New(tokens primary.TokenService, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		tokens: tokens,
		logger: logger,
	}
}

func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ResponseError(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			ResponseError(w, "Bearer token expected", http.StatusUnauthorized)
			return
		}

		ok, err := m.tokens.VerifyTokenHMAC(r.Context(), tokenString)
		if err != nil || !ok {
			m.logger.Warn("Rejected ingest request", "path", r.URL.Path, "error", err)
			ResponseError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
