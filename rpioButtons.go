package main

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

type rpioButtons struct {
	pins map[string]rpio.Pin
}

func (rb *rpioButtons) initButtons(s *settings) error {
	if err := rpio.Open(); err != nil {
		return errors.Wrap(err, "open gpio")
	}
	return nil
}

func (rb *rpioButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	rb.pins = make(map[string]rpio.Pin)

	for k, v := range pins {
		pin := rpio.Pin(v.pinNum)
		pin.Input()  // Input mode
		pin.PullUp() // GND => button press
		rb.pins[k] = pin
		rt.logger.Printf("%s on gpio %d", k, v.pinNum)
	}
	return nil
}

func (rb *rpioButtons) closeButtons() {
	rpio.Close()
}

func (rb *rpioButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	ret := make(map[string]rpio.State)
	for k, pin := range rb.pins {
		ret[k] = pin.Read() // Read state from pin (High / Low)
	}
	return ret, nil
}
