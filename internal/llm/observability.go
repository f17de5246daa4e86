package llm

import (
	"github.com/sirupsen/logrus"
)

// CallEvent records metadata about a single model invocation.
type CallEvent struct {
	Task      Task
	Op        string // "chat" or "embed"
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about model calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes model call events to a logrus logger.
type LogObserver struct {
	log *logrus.Logger
}

// NewLogObserver creates an Observer that logs events to log.
func NewLogObserver(log *logrus.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	fields := logrus.Fields{
		"task":       event.Task,
		"op":         event.Op,
		"model":      event.Model,
		"latency_ms": event.LatencyMs,
	}
	if event.Success {
		o.log.WithFields(fields).Debug("model call completed")
		return
	}
	fields["error_code"] = event.ErrorCode
	o.log.WithFields(fields).Warn("model call failed")
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
