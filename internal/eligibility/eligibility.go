// Package eligibility decides whether an accident is still inside the claim
// submission window.
package eligibility

import (
	"fmt"
	"time"
)

// Window is how long after an accident a claim may be submitted.
const Window = 24 * time.Hour

const DeadlinePassed = "24-hour deadline passed"

// WithinDeadline reports whether less than window has elapsed since accident.
// Accident times in the future count as within the window.
func WithinDeadline(accident, now time.Time, window time.Duration) bool {
	return now.Sub(accident) < window
}

// TimeRemaining renders the time left before accident+window, floored to the
// minute, e.g. "21h 29m remaining" or "45m remaining".
func TimeRemaining(accident, now time.Time, window time.Duration) string {
	remaining := accident.Add(window).Sub(now)
	if remaining <= 0 {
		return DeadlinePassed
	}

	hours := int(remaining / time.Hour)
	minutes := int((remaining % time.Hour) / time.Minute)

	if hours > 0 {
		return fmt.Sprintf("%dh %dm remaining", hours, minutes)
	}
	return fmt.Sprintf("%dm remaining", minutes)
}

type Evaluator struct {
	window time.Duration
	now    func() time.Time
}

func NewEvaluator(window time.Duration, now func() time.Time) *Evaluator {
	if window <= 0 {
		window = Window
	}
	if now == nil {
		now = time.Now
	}
	return &Evaluator{window: window, now: now}
}

func (e *Evaluator) WithinDeadline(accident time.Time) bool {
	return WithinDeadline(accident, e.now(), e.window)
}

func (e *Evaluator) TimeRemaining(accident time.Time) string {
	return TimeRemaining(accident, e.now(), e.window)
}

// InFuture reports whether accident is later than the evaluator's clock.
func (e *Evaluator) InFuture(accident time.Time) bool {
	return accident.After(e.now())
}

func (e *Evaluator) Now() time.Time {
	return e.now()
}
