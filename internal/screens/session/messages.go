package session

import "time"

// timerTickMsg carries the latest remaining-time sample from the live timer.
type timerTickMsg time.Duration

// resultSavedMsg reports the outcome of persisting the finished session.
type resultSavedMsg struct {
	Err error
}
