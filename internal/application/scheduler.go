package application

import "time"

// Scheduler runs fn once after d. Scheduled work is never cancelled.
type Scheduler interface {
	After(d time.Duration, fn func())
}

type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Timing holds the staged feedback delays.
type Timing struct {
	RemovalDelay   time.Duration
	FeedbackDelay  time.Duration
	HighlightDelay time.Duration
	ErrorDismiss   time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		RemovalDelay:   300 * time.Millisecond,
		FeedbackDelay:  350 * time.Millisecond,
		HighlightDelay: 800 * time.Millisecond,
		ErrorDismiss:   4 * time.Second,
	}
}
