package config

type AppConfig struct {
	DebugMode      bool
	LogLevel       string
	TestRailConfig *TestRailConfig
	SyncConfig     *SyncConfig
	ServerConfig   *ServerConfig
	LedgerConfig   *LedgerConfig
	JwtConfig      *JwtConfig
}

// NewSystemConfig builds the configuration from env, see Environ.
// Missing TestRail credentials are reported as ErrConfiguration.
// The run id is resolved separately with ResolveRunID.
func NewSystemConfig(env map[string]string) (*AppConfig, error) {
	trCfg, err := NewTestRailConfig(env)
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		DebugMode:      env["DEBUG_MODE"] == "true",
		LogLevel:       LogLevel(env),
		TestRailConfig: trCfg,
		SyncConfig:     NewSyncConfig(env),
		ServerConfig:   NewServerConfig(env),
		LedgerConfig:   NewLedgerConfig(env),
		JwtConfig:      NewJwtConfig(env),
	}, nil
}

// LogLevel picks the log level, DEBUG_MODE forcing debug.
func LogLevel(env map[string]string) string {
	if env["DEBUG_MODE"] == "true" {
		return "debug"
	}
	return getString(env, "LOG_LEVEL", "info")
}
