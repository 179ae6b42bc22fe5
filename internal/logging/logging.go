// Package logging provides the structured log sink for the frontend.
// The sink is selected once at process start: a Grafana Loki push client
// when LOKI_URL is configured, otherwise the local console. Logging is
// fire-and-forget - a failed or slow sink never blocks a response.
package logging

import (
	"github.com/byteforge/aegis-frontend/internal/config"
)

// Extra is a flat string-keyed metadata map attached to a log entry.
type Extra map[string]string

type Logger interface {
	Debug(message string, extra Extra)
	Info(message string, extra Extra)
	Warning(message string, extra Extra)
	Error(message string, extra Extra)
	Critical(message string, extra Extra)
}

// Close flushes and stops the sink when it buffers, like the Loki
// pusher. The console sink writes synchronously and has nothing to do.
func Close(l Logger) {
	if c, ok := l.(interface{ Close() }); ok {
		c.Close()
	}
}

// New selects the log sink from configuration. DEBUG_LOCAL forces the
// console sink even when a Loki URL is present.
func New(cfg config.LoggingConfig, name string) Logger {
	if !cfg.GetDebugLocal() && cfg.GetLokiURL() != "" {
		return NewLoki(LokiConfig{
			URL:      cfg.GetLokiURL(),
			Username: cfg.GetLokiUser(),
			Password: cfg.GetLokiPassword(),
			Labels:   map[string]string{"app": "aegis-frontend", "env": "production"},
		}, name)
	}
	return NewConsole(name)
}
