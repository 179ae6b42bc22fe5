package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

// pushRequest is the Loki push API request body (v1).
type pushRequest struct {
	Streams []stream `json:"streams"`
}

// stream is a single stream with labels and log entries.
type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"` // each entry is [timestamp_ns, log_line]
}

// labelSanitize replaces characters that are invalid in Loki label values.
var labelSanitize = regexp.MustCompile(`[^a-zA-Z0-9_\-:]`)

// LokiConfig configures the Loki push sink.
type LokiConfig struct {
	URL           string
	Username      string
	Password      string
	Labels        map[string]string
	BatchCapacity int           // entries per push, default 20
	FlushInterval time.Duration // default 3s
}

type lokiEntry struct {
	ts    time.Time
	level string
	line  string
}

type lokiLogger struct {
	cfg    LokiConfig
	name   string
	client *http.Client

	entries chan lokiEntry
	once    sync.Once
	done    chan struct{}
}

// NewLoki returns a batching Loki push sink. Entries are buffered and
// flushed in the background; when the buffer is full new entries are
// dropped rather than blocking the caller.
func NewLoki(cfg LokiConfig, name string) Logger {
	if cfg.BatchCapacity <= 0 {
		cfg.BatchCapacity = 20
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 3 * time.Second
	}
	l := &lokiLogger{
		cfg:     cfg,
		name:    name,
		client:  &http.Client{Timeout: 10 * time.Second},
		entries: make(chan lokiEntry, cfg.BatchCapacity*4),
		done:    make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *lokiLogger) Debug(message string, extra Extra)    { l.enqueue("debug", message, extra) }
func (l *lokiLogger) Info(message string, extra Extra)     { l.enqueue("info", message, extra) }
func (l *lokiLogger) Warning(message string, extra Extra)  { l.enqueue("warning", message, extra) }
func (l *lokiLogger) Error(message string, extra Extra)    { l.enqueue("error", message, extra) }
func (l *lokiLogger) Critical(message string, extra Extra) { l.enqueue("critical", message, extra) }

// Close flushes buffered entries and stops the background worker.
func (l *lokiLogger) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *lokiLogger) enqueue(level, message string, extra Extra) {
	line := map[string]string{
		"level":   level,
		"name":    l.name,
		"message": message,
	}
	for k, v := range extra {
		line[k] = v
	}
	payload, err := json.Marshal(line)
	if err != nil {
		return
	}
	select {
	case l.entries <- lokiEntry{ts: time.Now().UTC(), level: level, line: string(payload)}:
	default:
		// buffer full - drop rather than block the request path
	}
}

func (l *lokiLogger) run() {
	ticker := time.NewTicker(l.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]lokiEntry, 0, l.cfg.BatchCapacity)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		l.push(batch)
		batch = batch[:0]
	}

	for {
		select {
		case e := <-l.entries:
			batch = append(batch, e)
			if len(batch) >= l.cfg.BatchCapacity {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-l.done:
			for {
				select {
				case e := <-l.entries:
					batch = append(batch, e)
				default:
					flush()
					return
				}
			}
		}
	}
}

// push sends one batch grouped by level label. Errors are swallowed:
// the sink must never fail the caller.
func (l *lokiLogger) push(batch []lokiEntry) {
	byLevel := map[string][][]string{}
	for _, e := range batch {
		byLevel[e.level] = append(byLevel[e.level], []string{
			fmt.Sprintf("%d", e.ts.UnixNano()), e.line,
		})
	}

	body := pushRequest{}
	for level, values := range byLevel {
		labels := make(map[string]string, len(l.cfg.Labels)+1)
		for k, v := range l.cfg.Labels {
			sanitized := labelSanitize.ReplaceAllString(strings.TrimSpace(v), "_")
			if sanitized != "" {
				labels[k] = sanitized
			}
		}
		labels["level"] = level
		body.Streams = append(body.Streams, stream{Stream: labels, Values: values})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return
	}
	url := strings.TrimSuffix(l.cfg.URL, "/") + "/loki/api/v1/push"
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if l.cfg.Username != "" && l.cfg.Password != "" {
		req.SetBasicAuth(l.cfg.Username, l.cfg.Password)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
