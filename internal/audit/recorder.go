package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Recorder buffers events in a channel and drains them with a background
// worker so emitting never blocks a lookup. A full buffer drops the event;
// the lookup trail is best-effort, like the cache.
type Recorder struct {
	sink   Sink
	inbox  chan Event
	logger *slog.Logger
}

func NewRecorder(sink Sink, buffer int, logger *slog.Logger) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}
	return &Recorder{
		sink:   sink,
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Emit queues one event. Never blocks.
func (r *Recorder) Emit(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case r.inbox <- event:
	default:
		r.logger.Warn("audit buffer full, dropping event", "zip", event.ZipCode)
	}
}

// Run drains the inbox until ctx is cancelled. Sink failures are logged and
// skipped; one bad event must not stall the trail.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-r.inbox:
			if err := r.sink.Append(ctx, event); err != nil {
				r.logger.Error("audit append failed", "zip", event.ZipCode, "error", err)
			}
		}
	}
}
