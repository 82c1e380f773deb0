package config

type ServerConfig struct {
	Port int
}

func NewServerConfig(env map[string]string) *ServerConfig {
	return &ServerConfig{
		Port: getInt(env, "SERVER_PORT", 8082),
	}
}
