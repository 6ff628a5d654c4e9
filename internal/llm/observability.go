package llm

import (
	"github.com/charmbracelet/log"
)

// CallEvent records metadata about a single completion call.
// It never carries the credential or the prompt text.
type CallEvent struct {
	RequestID  string
	Model      string
	LatencyMs  int64
	StatusCode int
	Success    bool
	ErrorCode  string
}

// Observer receives events about completion calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a charmbracelet logger.
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *log.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	kv := []any{
		"request_id", event.RequestID,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
		"status", event.StatusCode,
	}
	if event.Success {
		o.logger.Info("completion call", kv...)
		return
	}
	o.logger.Warn("completion call failed", append(kv, "error_code", event.ErrorCode)...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
