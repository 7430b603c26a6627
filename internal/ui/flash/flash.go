package flash

import (
	"context"
	"sync"
	"time"
)

// Config contains hold times for transient visual states.
type Config struct {
	ReminderHold time.Duration
	MessageHold  time.Duration
}

// DefaultConfig returns the hold times of the countdown window.
func DefaultConfig() Config {
	return Config{
		ReminderHold: 5 * time.Second,
		MessageHold:  4 * time.Second,
	}
}

// Presenter shows a transient state and reverts it after a hold time.
// Showing a new state cancels the pending revert of the previous one.
type Presenter struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates an idle presenter.
func New() *Presenter {
	return &Presenter{}
}

// Show calls apply now and revert after hold, unless Show or Stop is called first.
func (presenter *Presenter) Show(ctx context.Context, hold time.Duration, apply func(), revert func()) {
	presenter.mu.Lock()
	if presenter.cancel != nil {
		presenter.cancel()
		presenter.cancel = nil
	}
	pending := hold > 0 && revert != nil
	runCtx, cancel := context.WithCancel(ctx)
	if pending {
		presenter.cancel = cancel
	}
	presenter.mu.Unlock()

	if apply != nil {
		apply()
	}
	if !pending {
		cancel()
		return
	}

	go func() {
		if !sleepWithContext(runCtx, hold) {
			return
		}
		presenter.mu.Lock()
		// Superseded between the timer firing and taking the lock.
		if runCtx.Err() != nil {
			presenter.mu.Unlock()
			return
		}
		presenter.cancel = nil
		presenter.mu.Unlock()
		cancel()
		revert()
	}()
}

// Stop cancels any pending revert without running it.
func (presenter *Presenter) Stop() {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	if presenter.cancel != nil {
		presenter.cancel()
		presenter.cancel = nil
	}
}

// Pending reports whether a revert is scheduled.
func (presenter *Presenter) Pending() bool {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	return presenter.cancel != nil
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
