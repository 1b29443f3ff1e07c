package main

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// testEvents hands out a fixed next alarm, or fails a set number of times
type testEvents struct {
	mu         sync.Mutex
	next       time.Time
	errorCount int
	fetches    int
}

func (te *testEvents) setFails(cnt int) {
	te.mu.Lock()
	defer te.mu.Unlock()
	te.errorCount = cnt
}

func (te *testEvents) nextAlarm(rt runtimeConfig) (time.Time, error) {
	te.mu.Lock()
	defer te.mu.Unlock()
	te.fetches++
	if te.errorCount > 0 {
		te.errorCount--
		return time.Time{}, errors.New("bad fetch error")
	}
	if te.next.IsZero() {
		return time.Time{}, errNoEvents
	}
	return te.next, nil
}

// testNtpChecker reports curtime as the real time
type testNtpChecker struct {
	mu      sync.Mutex
	curtime time.Time
	fail    bool
}

func (tn *testNtpChecker) set(t time.Time) {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	tn.curtime = t
}

func (tn *testNtpChecker) getIPDateTime(rt runtimeConfig) (time.Time, error) {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	if tn.fail {
		return time.Time{}, errors.New("time service down")
	}
	return tn.curtime, nil
}
