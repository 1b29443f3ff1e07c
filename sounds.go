package main

import (
	"log"

	"github.com/stianeikeland/go-rpio"
)

func init() {
	features = append(features, "tone")
}

// rpioBuzzer squares a piezo from the hardware PWM pin
type rpioBuzzer struct {
	pin    int
	active bool
}

// pwm cycle length, the clock runs at freq * toneCycle
const toneCycle = 32

func (rb *rpioBuzzer) tone(freq int) {
	if freq <= 0 {
		rb.noTone()
		return
	}
	pin := rpio.Pin(rb.pin)
	if !rb.active {
		pin.Pwm()
		rb.active = true
	}
	pin.Freq(freq * toneCycle)
	pin.DutyCycle(toneCycle/2, toneCycle)
}

func (rb *rpioBuzzer) noTone() {
	if !rb.active {
		return
	}
	rpio.Pin(rb.pin).DutyCycle(0, toneCycle)
	log.Printf("tone off on gpio %d", rb.pin)
}
