package exam

import (
	"time"
)

// stopTimeout bounds the join in TimerDisplay.Stop.
const stopTimeout = 2 * time.Second

// TimerDisplay periodically samples a read-only remaining-time query from
// its own goroutine and publishes the value on a channel for a display layer
// to consume. It never touches engine state beyond the query, so it can run
// alongside the single actor driving the engine without locks.
type TimerDisplay struct {
	remaining func() time.Duration
	interval  time.Duration
	ticks     chan time.Duration
	stop      chan struct{}
	done      chan struct{}
}

// NewTimerDisplay creates a timer sampling remaining every interval.
func NewTimerDisplay(remaining func() time.Duration, interval time.Duration) *TimerDisplay {
	if interval <= 0 {
		interval = time.Second
	}
	return &TimerDisplay{
		remaining: remaining,
		interval:  interval,
		ticks:     make(chan time.Duration, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Ticks is the channel on which sampled remaining times are delivered.
func (t *TimerDisplay) Ticks() <-chan time.Duration {
	return t.ticks
}

// Start launches the sampling goroutine. An immediate first sample is
// published before the interval cadence begins.
func (t *TimerDisplay) Start() {
	go t.run()
}

// Stop signals the goroutine and waits for it to exit, giving up after a
// bounded timeout so a stuck consumer cannot hang shutdown.
func (t *TimerDisplay) Stop() {
	close(t.stop)
	select {
	case <-t.done:
	case <-time.After(stopTimeout):
	}
}

func (t *TimerDisplay) run() {
	defer close(t.done)
	// Closing ticks unblocks any consumer still waiting after Stop; a
	// closed-channel read yields a zero sample, which consumers ignore
	// once the session is over.
	defer close(t.ticks)

	t.publish()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.publish()
		}
	}
}

// publish delivers the latest sample without blocking: a slow consumer
// keeps only the freshest value.
func (t *TimerDisplay) publish() {
	v := t.remaining()
	select {
	case t.ticks <- v:
	default:
		select {
		case <-t.ticks:
		default:
		}
		select {
		case t.ticks <- v:
		default:
		}
	}
}
