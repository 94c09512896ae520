package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of file events per path and flushes the
// batch after a quiet window, or earlier when the batch fills up.
type Debouncer struct {
	window   time.Duration
	maxBatch int
	pending  map[string]FileEvent
	mu       sync.Mutex
	timer    *time.Timer
	onFlush  func([]FileEvent)
	stopped  bool
}

func NewDebouncer(window time.Duration, maxBatch int, onFlush func([]FileEvent)) *Debouncer {
	return &Debouncer{
		window:   window,
		maxBatch: maxBatch,
		pending:  make(map[string]FileEvent),
		onFlush:  onFlush,
	}
}

func (d *Debouncer) Add(event FileEvent) {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.pending[event.Path] = event

	if len(d.pending) >= d.maxBatch {
		d.flushLocked()
		return
	}

	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		d.flushLocked()
	})

	d.mu.Unlock()
}

// flushLocked releases the mutex itself so the callback runs unlocked.
func (d *Debouncer) flushLocked() {
	events := make([]FileEvent, 0, len(d.pending))
	for _, event := range d.pending {
		events = append(events, event)
	}
	d.pending = make(map[string]FileEvent)

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.mu.Unlock()

	if len(events) > 0 && d.onFlush != nil {
		d.onFlush(events)
	}
}

func (d *Debouncer) Stop() {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if len(d.pending) > 0 {
		d.flushLocked()
		return
	}

	d.mu.Unlock()
}
