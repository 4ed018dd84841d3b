package voice

import (
	"fmt"
	"io"
	"time"
)

// CallEvent records metadata about a single synthesis invocation.
type CallEvent struct {
	Function  string
	TextLen   int
	AudioLen  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about synthesis calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes synthesis call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] voice_call fn=%s text_len=%d audio_len=%d latency_ms=%d status=%s\n",
		ts, event.Function, event.TextLen, event.AudioLen, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
