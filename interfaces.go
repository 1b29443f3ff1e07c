package main

import (
	"time"

	"github.com/stianeikeland/go-rpio"
)

type buttons interface {
	initButtons(s *settings) error
	setupButtons(pins map[string]buttonMap, rt runtimeConfig) error
	readButtons(rt runtimeConfig) (map[string]rpio.State, error)
	closeButtons()
}

// led addresses indicator LEDs and backlight channels by logical index
type led interface {
	init() error
	set(idx int, on bool)
	on(idx int)
	off(idx int)
}

type buzzer interface {
	tone(freq int)
	noTone()
}

// interrupts turns button edges into pending flags for the polling loops
type interrupts interface {
	attach(btn string, f irqFlag)
	detach(btn string)
	pending(f irqFlag) bool
	clear(f irqFlag)
}

type fuelGauge interface {
	begin() error
	percent() (int, error)
	millivolts() (int, error)
}

type envSensor interface {
	begin() error
	read() (envReading, error)
}

type accelerometer interface {
	begin() error
	read() (x, y, z int32, err error)
}

type power interface {
	deepSleep(d time.Duration)
}

type noiseSource interface {
	noise() int64
}

type alarmSource interface {
	nextAlarm(rt runtimeConfig) (time.Time, error)
}
