package renderer

import "time"

// Limiter caps the frame rate of a loop.
type Limiter struct {
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewLimiter creates a limiter for fps frames per second; fps <= 0 disables it.
func NewLimiter(fps int) *Limiter {
	l := &Limiter{now: time.Now, sleep: time.Sleep}
	if fps > 0 {
		l.interval = time.Second / time.Duration(fps)
	}
	return l
}

// Wait blocks until a full interval has passed since the previous Wait and
// returns the time elapsed between the two calls.
func (l *Limiter) Wait() time.Duration {
	now := l.now()
	if l.last.IsZero() {
		l.last = now
		return 0
	}

	if remaining := l.interval - now.Sub(l.last); remaining > 0 {
		l.sleep(remaining)
		now = l.now()
	}
	dt := now.Sub(l.last)
	l.last = now
	return dt
}
