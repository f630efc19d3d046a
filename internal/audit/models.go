package audit

import (
	"context"
	"time"
)

// Event is emitted from domain logic to capture one finished lookup. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"requestId,omitempty"`
	ZipCode    string    `json:"zipCode"`
	Outcome    string    `json:"outcome"`
	CacheHit   bool      `json:"cacheHit"`
	DurationMs int64     `json:"durationMs"`
}

// Sink receives audit events. It is append-only so tests can swap
// implementations easily.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
