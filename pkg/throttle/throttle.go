// Package throttle bounds how often a high-frequency callback, such as a
// pointer-move handler during a drag, is allowed to run.
package throttle

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle is a leading-edge rate limiter around an action: the first call
// of a burst runs immediately, later calls inside the cooldown are dropped
// and never replayed.
type Throttle struct {
	mu       sync.Mutex
	action   func()
	interval time.Duration
	limiter  *rate.Limiter
	lastFire time.Time
	fired    bool
}

// New wraps action so it runs at most once per interval. A non-positive
// interval disables throttling.
func New(action func(), interval time.Duration) *Throttle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Throttle{
		action:   action,
		interval: interval,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Func returns a plain callable backed by a new Throttle.
func Func(action func(), interval time.Duration) func() {
	t := New(action, interval)
	return func() { t.Invoke() }
}

// Invoke runs the action unless the throttle is cooling down. It reports
// whether the action ran.
func (t *Throttle) Invoke() bool {
	return t.InvokeAt(time.Now())
}

// InvokeAt is Invoke with an explicit clock reading.
func (t *Throttle) InvokeAt(now time.Time) bool {
	t.mu.Lock()
	allowed := t.limiter.AllowN(now, 1)
	if allowed {
		t.lastFire = now
		t.fired = true
	}
	t.mu.Unlock()

	// The action runs unlocked so it may safely call back into Invoke.
	if allowed && t.action != nil {
		t.action()
	}
	return allowed
}

// CoolingDown reports whether a call made now would be dropped.
func (t *Throttle) CoolingDown() bool {
	return t.CoolingDownAt(time.Now())
}

// CoolingDownAt is CoolingDown with an explicit clock reading.
func (t *Throttle) CoolingDownAt(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired && now.Sub(t.lastFire) < t.interval
}

// Interval returns the cooldown length.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}
