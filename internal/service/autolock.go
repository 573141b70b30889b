package service

import (
	"context"
	"sync"
	"time"

	"github.com/pswdapp/vaultcore/internal/logger"
)

const defaultAutoLockIdle = 5 * time.Minute

type autoLockJob struct {
	session SessionService
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAutoLockJob creates the background job that locks an idle session.
// The job is idle until Start is called.
func NewAutoLockJob(session SessionService, log *logger.Logger) AutoLockJob {
	return &autoLockJob{session: session, logger: log}
}

// Start implements [AutoLockJob]. It stops any previously running job, then
// launches a goroutine that checks the session's last activity at a quarter
// of the idle limit and locks once the limit is exceeded. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *autoLockJob) Start(ctx context.Context, idle time.Duration) {
	if idle <= 0 {
		idle = defaultAutoLockIdle
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	tick := idle / 4
	if tick <= 0 {
		tick = idle
	}

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(tick)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if j.session.Unlocked() && time.Since(j.session.LastActivity()) >= idle {
					j.logger.Info().Str("func", "autolock").Dur("idle", idle).Msg("locking idle session")
					j.session.Lock()
				}
			}
		}
	}()
}

// Stop implements [AutoLockJob]. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call
// when the job is not running.
func (j *autoLockJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
