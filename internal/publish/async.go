package publish

import (
	"context"
	"errors"
	"sync"

	"airquality_dashboard/internal/logger"
	"airquality_dashboard/internal/models"
)

// DefaultQueueSize is the Async buffer used when none is given.
const DefaultQueueSize = 64

var (
	ErrQueueFull = errors.New("publish queue full")
	ErrClosed    = errors.New("publisher closed")
)

// Async hands snapshots to a single worker so a slow sink never delays the
// writer. Snapshots reach next in commit order; one older than the last
// delivered snapshot is skipped.
type Async struct {
	next  Publisher
	log   *logger.Logger
	queue chan models.Snapshot
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewAsync starts the worker. A full queue drops the snapshot and logs it.
func NewAsync(next Publisher, size int, log *logger.Logger) *Async {
	if size <= 0 {
		size = DefaultQueueSize
	}
	a := &Async{
		next:  next,
		log:   log,
		queue: make(chan models.Snapshot, size),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) Publish(_ context.Context, s models.Snapshot) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}
	select {
	case a.queue <- s:
		return nil
	default:
		if a.log != nil {
			a.log.Warnw("publish_dropped", "timestamp", s.Timestamp, "err", ErrQueueFull)
		}
		return ErrQueueFull
	}
}

// Close delivers what is queued, stops the worker and closes next.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	<-a.done
	return a.next.Close()
}

func (a *Async) run() {
	defer close(a.done)
	var last models.Snapshot
	for s := range a.queue {
		if s.Timestamp.Before(last.Timestamp) {
			continue
		}
		last = s
		// sinks report their own failures
		_ = a.next.Publish(context.Background(), s)
	}
}
