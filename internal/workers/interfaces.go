// Package workers provides abstractions for managing and running
// background jobs in the client application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops multiple jobs in a unified way.
package workers

import (
	"context"
	"time"
)

// Worker is the interface implemented by background jobs tied to the
// client process lifetime (session auto-lock, pollers).
type Worker interface {
	// Start launches the job's goroutine with the given interval. Any
	// previously running instance is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the goroutine to exit and blocks until it has fully
	// terminated. Safe to call when the job is not running.
	Stop()
}
