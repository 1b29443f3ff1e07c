package main

import (
	"time"

	"dscheirer.com/tm8/cdm4101"
	"dscheirer.com/tm8/i2c"
)

const (
	dSitRep      = 750 * time.Millisecond
	dGoBlink     = 75 * time.Millisecond
	goBlinks     = 7
	expectedDevs = 5
)

type probe struct {
	code string
	bus  int
	addr uint16
}

// boot probes in display order
var bootProbes = []probe{
	{"FUEL", 0, addrFuel},
	{"LCDl", 0, cdm4101.Address},
	{"ACCL", 1, addrAccel},
	{"TEMP", 1, addrEnv},
	{"LCDr", 1, cdm4101.Address},
}

// probeAll walks the peripherals and reports how many answered
func (d *device) probeAll() int {
	found := 0
	for _, p := range bootProbes {
		d.left.SetString(p.code)
		ok := i2c.Probe(d.rt.buses[p.bus], p.addr)
		d.logger.Printf("probe %s 0x%02x: %v", p.code, p.addr, ok)
		d.blinkGo(ok)
		if ok {
			found++
		}
	}
	return found
}

// selfTest runs the boot animation and device check. A missing fuel gauge
// parks the display on " no "/"batt" until quit.
func (d *device) selfTest() error {
	d.animTach(dTachFrame)
	found := d.probeAll()
	d.publish("selftest")

	if found == expectedDevs {
		d.sleep(dSitRep)
		d.showBoth("All ", "")
		d.sleep(dSitRep)
		d.showBoth("Syst", "ems")
		d.sleep(dSitRep)
		d.blinkBoth(" GO ", "", goBlinks, dGoBlink, false)
	} else {
		d.showBoth("Err ", "")
		d.right.SetDecimal(found)
		d.sleep(dSecond)
	}

	if err := d.rt.fuel.begin(); err != nil {
		d.logger.Println(err.Error())
		for !d.quitting() {
			d.showBoth(" no ", "batt")
			d.sleep(dSecond)
		}
		return err
	}
	d.showBoth("", "")
	return nil
}
