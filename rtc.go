package main

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// realTimeClock is the wall time the user set, kept as an offset from the
// tick source so it follows fake clocks in tests
type realTimeClock struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	offset time.Duration
}

func newRealTimeClock(clock clockwork.Clock) *realTimeClock {
	return &realTimeClock{clock: clock}
}

func (r *realTimeClock) now() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clock.Now().Add(r.offset)
}

func (r *realTimeClock) set(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offset = t.Sub(r.clock.Now())
}

// hostPower has no low power state, it just waits out the tick
type hostPower struct {
	clock clockwork.Clock
}

func (hp *hostPower) deepSleep(d time.Duration) {
	hp.clock.Sleep(d)
}

// clockNoise stands in for a floating ADC pin
type clockNoise struct {
	clock clockwork.Clock
	pid   int64
}

func (cn *clockNoise) noise() int64 {
	return cn.clock.Now().UnixNano() ^ (cn.pid << 20)
}
