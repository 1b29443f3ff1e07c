package main

import (
	"fmt"
	"sync"
)

type logLed struct {
	mu         sync.Mutex
	leds       []bool
	audit      []string
	disableLog bool
	logger     flogger
}

func (ll *logLed) init() error {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.leds = make([]bool, ledTotal)
	ll.audit = make([]string, 0)
	ll.logger = &ThreadLogger{name: "LEDs"}
	return nil
}

func (ll *logLed) set(idx int, on bool) {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	if idx < 0 || idx >= len(ll.leds) || ll.leds[idx] == on {
		return
	}
	ll.leds[idx] = on
	if !ll.disableLog {
		ll.logger.Printf("Set LED %v to %v", idx, on)
	}
	ll.audit = append(ll.audit, fmt.Sprintf("Set LED %v to %v", idx, on))
}

func (ll *logLed) on(idx int) {
	ll.set(idx, true)
}

func (ll *logLed) off(idx int) {
	ll.set(idx, false)
}

func (ll *logLed) lit(idx int) bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return ll.leds[idx]
}

func (ll *logLed) history() []string {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return append([]string{}, ll.audit...)
}
