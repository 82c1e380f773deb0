package config

import "time"

type JwtConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// Enabled reports whether ingest requests must carry a token
func (c *JwtConfig) Enabled() bool {
	return c != nil && c.Secret != ""
}

func NewJwtConfig(env map[string]string) *JwtConfig {
	return &JwtConfig{
		Secret:   env["SERVER_JWT_SECRET"],
		TokenTTL: time.Duration(getInt(env, "SERVER_JWT_TTL_HOURS", 24)) * time.Hour,
	}
}
