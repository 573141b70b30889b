package workers

import (
	"context"
	"time"
)

// entry pairs a worker with its configured interval.
type entry struct {
	worker   Worker
	interval time.Duration
}

// Workers aggregates background jobs so the application can start and stop
// them as a unit.
type Workers struct {
	entries []entry
}

// Add registers a worker with the interval it will be started with.
func (w *Workers) Add(worker Worker, interval time.Duration) {
	w.entries = append(w.entries, entry{worker: worker, interval: interval})
}

// StartAll starts every registered worker.
func (w *Workers) StartAll(ctx context.Context) {
	for _, e := range w.entries {
		e.worker.Start(ctx, e.interval)
	}
}

// StopAll stops every registered worker, blocking until all have exited.
func (w *Workers) StopAll() {
	for _, e := range w.entries {
		e.worker.Stop()
	}
}
