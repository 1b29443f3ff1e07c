package main

import (
	"sync"

	"github.com/stianeikeland/go-rpio"
)

// noButtons has no hardware behind it, states only change through set/clear
type noButtons struct {
	mu     sync.Mutex
	states map[string]rpio.State
}

func (nb *noButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	ret := make(map[string]rpio.State)
	for k, v := range nb.states {
		ret[k] = v
	}
	return ret, nil
}

func (nb *noButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.states = make(map[string]rpio.State)
	for k := range pins {
		nb.states[k] = rpio.High
	}
	return nil
}

func (nb *noButtons) initButtons(s *settings) error {
	return nil
}

func (nb *noButtons) closeButtons() {
}

func (nb *noButtons) set(btns map[string]rpio.State) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	for k, v := range btns {
		nb.states[k] = v
	}
}

func (nb *noButtons) press(name string) {
	nb.set(map[string]rpio.State{name: rpio.Low})
}

func (nb *noButtons) release(name string) {
	nb.set(map[string]rpio.State{name: rpio.High})
}

func (nb *noButtons) clear() {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	for k := range nb.states {
		nb.states[k] = rpio.High
	}
}
