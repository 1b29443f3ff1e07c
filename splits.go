package main

import (
	"sync"
	"time"
)

// splitRecord is a fixed capacity list of split times, packed as
// minutes*100000 + seconds*1000 + millis. It is shared with the status
// service so access is locked.
type splitRecord struct {
	mu     sync.Mutex
	name   string
	cap    int
	values []uint32
}

func newSplitRecord(name string, capacity int) *splitRecord {
	return &splitRecord{name: name, cap: capacity}
}

func encodeSplit(minutes, seconds, millis int) uint32 {
	return uint32(minutes*100000 + seconds*1000 + millis)
}

// splitTime breaks an elapsed duration into display parts, minutes wrap
// at the hour
func splitTime(elapsed time.Duration) (minutes, seconds, millis int) {
	ms := int(elapsed / time.Millisecond)
	millis = ms % 1000
	s := ms / 1000
	seconds = s % 60
	minutes = (s / 60) % 60
	return
}

// record appends v and returns its slot, false once the record is full
func (sr *splitRecord) record(v uint32) (int, bool) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	if len(sr.values) >= sr.cap {
		return 0, false
	}
	sr.values = append(sr.values, v)
	return len(sr.values) - 1, true
}

func (sr *splitRecord) count() int {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return len(sr.values)
}

func (sr *splitRecord) full() bool {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return len(sr.values) >= sr.cap
}

// snapshot copies the recorded values
func (sr *splitRecord) snapshot() []uint32 {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	out := make([]uint32, len(sr.values))
	copy(out, sr.values)
	return out
}
