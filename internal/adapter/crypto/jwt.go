package crypto

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/railsync.net/internal/config"
	"gitlab.com/railsync.net/internal/core/ports/primary"
	"gitlab.com/railsync.net/internal/static/errs"
)

var _ primary.TokenService = (*JWTServiceImpl)(nil)

const issuer = "railsync"

type JWTServiceImpl struct {
	HMACSecretKey string
}

func NewJWTService(jwtConfig *config.JwtConfig) primary.TokenService {
	return &JWTServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
	}
}

func (J JWTServiceImpl) GenerateTokenHMAC(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	if J.HMACSecretKey == "" {
		return "", errs.Configuration("SERVER_JWT_SECRET is required to issue tokens")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(J.HMACSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (J JWTServiceImpl) VerifyTokenHMAC(ctx context.Context, token string) (bool, error) {
	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(J.HMACSecretKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return false, fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}

	return parsedToken.Valid, nil
}
