package config

import (
	"errors"
	"time"
)

// ExamWindow describes when the exam can be entered and how strictly it is
// proctored. The entry window is deliberately wider than the nominal working
// duration so participants can start staggered.
type ExamWindow struct {
	StartsAt           time.Time
	Duration           time.Duration
	EntryWindow        time.Duration
	ViolationThreshold int
	Active             bool
}

// Validate checks the window for values that would make the exam unrunnable.
func (w ExamWindow) Validate() error {
	if w.Duration <= 0 {
		return errors.New("exam duration must be positive")
	}
	if w.ViolationThreshold < 0 {
		return errors.New("violation threshold must not be negative")
	}
	if w.EntryWindow < w.Duration {
		return errors.New("entry window must not be shorter than the exam duration")
	}
	return nil
}

// IsAvailableAt reports whether the exam accepts entries at t.
// The window is closed-open: [StartsAt, StartsAt+EntryWindow).
func (w ExamWindow) IsAvailableAt(t time.Time) bool {
	if !w.Active {
		return false
	}
	if t.Before(w.StartsAt) {
		return false
	}
	return t.Before(w.EndsAt())
}

// IsAvailable reports availability against the wall clock.
func (w ExamWindow) IsAvailable() bool {
	return w.IsAvailableAt(time.Now())
}

// EndsAt returns the instant the entry window closes.
func (w ExamWindow) EndsAt() time.Time {
	return w.StartsAt.Add(w.EntryWindow)
}
