package main

import (
	"fmt"
)

// a telemetry page reads its sensor and fills the right surface
type telemetryPage struct {
	label string
	show  func(d *device) error
}

var telemetryPages = []telemetryPage{
	{"tmp", func(d *device) error {
		r, err := d.rt.env.read()
		if err != nil {
			return err
		}
		d.right.SetString(fmt.Sprintf("%2d*C", r.milliC/1000))
		return nil
	}},
	{"hum", func(d *device) error {
		r, err := d.rt.env.read()
		if err != nil {
			return err
		}
		d.right.SetDecimal(int(r.humidity / 100))
		return nil
	}},
	{"hPa", func(d *device) error {
		r, err := d.rt.env.read()
		if err != nil {
			return err
		}
		d.right.SetDecimal(int(r.milliPa / 100000))
		return nil
	}},
	{"batt", func(d *device) error {
		pct, err := d.rt.fuel.percent()
		if err != nil {
			return err
		}
		d.right.SetDecimal(pct)
		return nil
	}},
	{"volt", func(d *device) error {
		mv, err := d.rt.fuel.millivolts()
		if err != nil {
			return err
		}
		d.right.SetDecimal(mv)
		return nil
	}},
	{"acc", accelAxis(0)},
	{"acc", accelAxis(1)},
	{"acc", accelAxis(2)},
}

// accelAxis shows one axis in milli-g, the axis letter rides on the label
func accelAxis(axis int) func(d *device) error {
	return func(d *device) error {
		x, y, z, err := d.rt.accel.read()
		if err != nil {
			return err
		}
		v := [3]int32{x, y, z}[axis]
		d.left.SetChar(3, "xyz"[axis])
		d.right.SetDecimal(int(v / 1000))
		return nil
	}
}

// runTelemetry pages through the sensors with btn3, btn4 leaves
func runTelemetry(d *device) {
	rt := d.rt
	page := 0
	for !d.quitting() {
		p := telemetryPages[page]
		d.left.SetString(p.label)
		if err := p.show(d); err != nil {
			d.logger.Println(err.Error())
			d.right.SetString("Err")
		}

		// sample the buttons until the next refresh
		next := rt.clock.Now().Add(dReadingCycle)
		for rt.clock.Now().Before(next) {
			switch firstPressed(rt, btn3, btn4) {
			case btn3:
				waitRelease(rt, btn3)
				page = (page + 1) % len(telemetryPages)
				next = rt.clock.Now()
			case btn4:
				waitRelease(rt, btn4)
				return
			}
			if d.quitting() {
				return
			}
			d.sleep(dPoll)
		}
	}
}
