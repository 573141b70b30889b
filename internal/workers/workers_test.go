package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingWorker struct {
	started atomic.Int32
	stopped atomic.Int32
}

func (w *countingWorker) Start(context.Context, time.Duration) { w.started.Add(1) }
func (w *countingWorker) Stop()                                { w.stopped.Add(1) }

func TestWorkers_StartAndStopAll(t *testing.T) {
	first := &countingWorker{}
	second := &countingWorker{}

	var ws Workers
	ws.Add(first, time.Second)
	ws.Add(second, time.Minute)

	ws.StartAll(context.Background())
	if got := first.started.Load() + second.started.Load(); got != 2 {
		t.Fatalf("StartAll() started %d workers, want 2", got)
	}

	ws.StopAll()
	if got := first.stopped.Load() + second.stopped.Load(); got != 2 {
		t.Fatalf("StopAll() stopped %d workers, want 2", got)
	}
}

func TestWorkers_EmptyAggregateIsSafe(t *testing.T) {
	var ws Workers
	ws.StartAll(context.Background())
	ws.StopAll()
}
