package config

type Config interface {
	EnvConfig
	CorsConfig
	BackendConfig
	LoggingConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// BackendConfig exposes everything needed to reach the aegis backend.
type BackendConfig interface {
	GetBackendURL() string
	GetAegisAdminDomain() string
	GetMasterAPIKey() string
}

// LoggingConfig selects and configures the structured log sink.
type LoggingConfig interface {
	GetLokiURL() string
	GetLokiUser() string
	GetLokiPassword() string
	GetDebugLocal() bool
}

type SessionConfig interface {
	GetSessionSecret() string
	GetMaxSessionAge() int // seconds
}

type mainConfig struct {
	EnvVars
	Cors
	Backend
	Logging
	Session
}

func New() Config {
	return mainConfig{}
}
