package renderer

import (
	"testing"
	"time"
)

// fakeClock advances only when sleep is called or tick moves it.
type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func newTestLimiter(fps int) (*Limiter, *fakeClock) {
	c := &fakeClock{t: time.Unix(1000, 0)}
	l := NewLimiter(fps)
	l.now = c.now
	l.sleep = c.sleep
	return l, c
}

func TestLimiterSleepsRemainder(t *testing.T) {
	l, c := newTestLimiter(30)
	interval := time.Second / 30

	if dt := l.Wait(); dt != 0 {
		t.Errorf("expected first Wait to return 0, got %v", dt)
	}

	c.t = c.t.Add(10 * time.Millisecond)
	dt := l.Wait()
	if dt != interval {
		t.Errorf("expected frame time %v, got %v", interval, dt)
	}
	if len(c.slept) != 1 || c.slept[0] != interval-10*time.Millisecond {
		t.Errorf("expected one sleep of %v, got %v", interval-10*time.Millisecond, c.slept)
	}
}

func TestLimiterSlowFrame(t *testing.T) {
	l, c := newTestLimiter(30)
	l.Wait()

	c.t = c.t.Add(100 * time.Millisecond)
	if dt := l.Wait(); dt != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", dt)
	}
	if len(c.slept) != 0 {
		t.Errorf("expected no sleep for a slow frame, got %v", c.slept)
	}
}

func TestLimiterDisabled(t *testing.T) {
	l, c := newTestLimiter(0)
	l.Wait()
	c.t = c.t.Add(time.Millisecond)
	l.Wait()
	if len(c.slept) != 0 {
		t.Errorf("expected no sleep when disabled, got %v", c.slept)
	}
}
