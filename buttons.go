package main

import (
	"github.com/stianeikeland/go-rpio"
)

func buttonPins(s *settings) map[string]buttonMap {
	pins := make(map[string]buttonMap)
	for _, name := range s.GetAllButtonNames() {
		pins[name] = s.GetButtonMap(name)
	}
	return pins
}

func startButtons(rt runtimeConfig) error {
	if err := rt.buttons.initButtons(rt.settings); err != nil {
		return err
	}
	return rt.buttons.setupButtons(buttonPins(rt.settings), rt)
}

// pressed reads one button; the inputs are pulled up so low means pressed
func pressed(rt runtimeConfig, name string) bool {
	states, err := rt.buttons.readButtons(rt)
	if err != nil {
		rt.logger.Println(err.Error())
		rt.comms.shutdown()
		return false
	}
	st, ok := states[name]
	return ok && st == rpio.Low
}

// waitPress polls until name is down, false if we are quitting
func waitPress(rt runtimeConfig, name string) bool {
	for !pressed(rt, name) {
		if rt.quitting() {
			return false
		}
		rt.clock.Sleep(dPoll)
	}
	return true
}

func waitRelease(rt runtimeConfig, name string) bool {
	for pressed(rt, name) {
		if rt.quitting() {
			return false
		}
		rt.clock.Sleep(dPoll)
	}
	return true
}

// waitRisingEdge waits for a full press and release
func waitRisingEdge(rt runtimeConfig, name string) bool {
	return waitPress(rt, name) && waitRelease(rt, name)
}

// firstPressed returns the first of names that is down, "" if none
func firstPressed(rt runtimeConfig, names ...string) string {
	states, err := rt.buttons.readButtons(rt)
	if err != nil {
		rt.logger.Println(err.Error())
		rt.comms.shutdown()
		return ""
	}
	for _, n := range names {
		if st, ok := states[n]; ok && st == rpio.Low {
			return n
		}
	}
	return ""
}

// waitAnyPress blocks until one of names is pressed and returns it
func waitAnyPress(rt runtimeConfig, names ...string) string {
	for !rt.quitting() {
		if n := firstPressed(rt, names...); n != "" {
			return n
		}
		rt.clock.Sleep(dPoll)
	}
	return ""
}
