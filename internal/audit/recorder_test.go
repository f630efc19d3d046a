package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderDeliversEvents(t *testing.T) {
	sink := NewMemorySink()
	rec := NewRecorder(sink, 8, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = rec.Run(ctx) }()

	rec.Emit(Event{ZipCode: "90210", Outcome: "computed"})
	rec.Emit(Event{ZipCode: "10001", Outcome: "cached", CacheHit: true})

	require.Eventually(t, func() bool {
		return len(sink.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	events := sink.Events()
	assert.Equal(t, "90210", events[0].ZipCode)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.True(t, events[1].CacheHit)
}

func TestRecorderDropsWhenBufferFull(t *testing.T) {
	sink := NewMemorySink()
	rec := NewRecorder(sink, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// No worker running, so the second emit finds the buffer full. It must
	// return immediately instead of blocking.
	done := make(chan struct{})
	go func() {
		rec.Emit(Event{ZipCode: "90210"})
		rec.Emit(Event{ZipCode: "10001"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full buffer")
	}
}
