package repositories

import (
	"context"
	"log"
	"time"

	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/ports"
)

// AsyncFixWriter decorates a FixRepository with a write-behind queue so
// persistence latency never blocks the fix-processing pipeline. Writes
// are retried a bounded number of times with backoff and then dropped
// with a log line; in-memory session state stays authoritative either
// way.
type AsyncFixWriter struct {
	inner ports.FixRepository
	queue chan pendingFix
	done  chan struct{}
}

type pendingFix struct {
	sessionID string
	fix       domain.LocationFix
}

func NewAsyncFixWriter(inner ports.FixRepository, queueSize int) *AsyncFixWriter {
	if queueSize <= 0 {
		queueSize = 256
	}
	w := &AsyncFixWriter{
		inner: inner,
		queue: make(chan pendingFix, queueSize),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

// Append enqueues the write and returns immediately. A full queue drops
// the fix rather than stalling the caller.
func (w *AsyncFixWriter) Append(ctx context.Context, sessionID string, fix domain.LocationFix) error {
	select {
	case w.queue <- pendingFix{sessionID: sessionID, fix: fix}:
	default:
		log.Printf("fix_writer=drop session=%s reason=queue_full", sessionID)
	}
	return nil
}

func (w *AsyncFixWriter) run() {
	defer close(w.done)

	for p := range w.queue {
		w.write(p)
	}
}

func (w *AsyncFixWriter) write(p pendingFix) {
	const maxAttempts = 3
	backoff := 100 * time.Millisecond

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := w.inner.Append(ctx, p.sessionID, p.fix)
		cancel()

		if err == nil {
			return
		}

		if attempt == maxAttempts {
			log.Printf("fix_writer=drop session=%s attempts=%d err=%v", p.sessionID, attempt, err)
			return
		}

		time.Sleep(backoff)
		backoff *= 2
	}
}

// Close drains the queue and stops the worker.
func (w *AsyncFixWriter) Close() {
	close(w.queue)
	<-w.done
}
