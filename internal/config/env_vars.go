package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	backendURLVar = "API_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Aegis Frontend")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

type Backend struct{}

var _ BackendConfig = Backend{}

func (Backend) GetBackendURL() string {
	return GetEnv(backendURLVar, "http://localhost:5678")
}

// GetAegisAdminDomain returns the domain of the designated super-admin site.
// Empty means the aegis console is not configured on this deployment.
func (Backend) GetAegisAdminDomain() string {
	return GetEnv("AEGIS_ADMIN_DOMAIN", "")
}

// GetMasterAPIKey returns the shared secret for cross-site backend
// operations. Never sent to browsers.
func (Backend) GetMasterAPIKey() string {
	return GetEnv("MASTER_API_KEY", "")
}

type Logging struct{}

var _ LoggingConfig = Logging{}

func (Logging) GetLokiURL() string {
	return GetEnv("LOKI_URL", "")
}

func (Logging) GetLokiUser() string {
	return GetEnv("LOKI_USER", "")
}

func (Logging) GetLokiPassword() string {
	return GetEnv("LOKI_PASS", "")
}

// GetDebugLocal forces console logging even when a Loki URL is configured.
func (Logging) GetDebugLocal() bool {
	return os.Getenv("DEBUG_LOCAL") == "true"
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "")
}

func (Session) GetMaxSessionAge() int {
	return 3600 // 1 hour
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
