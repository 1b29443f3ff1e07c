package main

import (
	"log"

	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

func init() {
	features = append(features, "leds")
}

// rpioLed drives LEDs wired straight to gpio, pins[i] serves logical LED i
type rpioLed struct {
	pins []int
}

func (rpi *rpioLed) init() error {
	if err := rpio.Open(); err != nil {
		return errors.Wrap(err, "open gpio for leds")
	}
	for _, p := range rpi.pins {
		rpio.Pin(p).Output()
	}
	return nil
}

func (rpi *rpioLed) set(idx int, on bool) {
	if idx < 0 || idx >= len(rpi.pins) {
		log.Printf("No pin for LED %d", idx)
		return
	}
	pin := rpio.Pin(rpi.pins[idx])
	if on {
		pin.High()
	} else {
		pin.Low()
	}
}

func (rpi *rpioLed) on(idx int) {
	rpi.set(idx, true)
}

func (rpi *rpioLed) off(idx int) {
	rpi.set(idx, false)
}
