package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

type consoleLogger struct {
	log zerolog.Logger
}

// NewConsole returns a console sink backed by zerolog.
func NewConsole(name string) Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Str("name", name).
		Logger()
	return &consoleLogger{log: zl}
}

func (c *consoleLogger) Debug(message string, extra Extra) {
	c.emit(c.log.Debug(), message, extra)
}

func (c *consoleLogger) Info(message string, extra Extra) {
	c.emit(c.log.Info(), message, extra)
}

func (c *consoleLogger) Warning(message string, extra Extra) {
	c.emit(c.log.Warn(), message, extra)
}

func (c *consoleLogger) Error(message string, extra Extra) {
	c.emit(c.log.Error(), message, extra)
}

func (c *consoleLogger) Critical(message string, extra Extra) {
	// zerolog has no critical level; fatal severity without the exit
	c.emit(c.log.WithLevel(zerolog.FatalLevel), message, extra)
}

func (c *consoleLogger) emit(ev *zerolog.Event, message string, extra Extra) {
	for k, v := range extra {
		ev = ev.Str(k, v)
	}
	ev.Msg(message)
}
