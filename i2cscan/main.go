package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"dscheirer.com/tm8/cdm4101"
	"dscheirer.com/tm8/i2c"
	"github.com/stianeikeland/go-rpio"
)

// names of the parts the board carries
var known = map[uint16]string{
	0x18: "ACCL",
	0x36: "FUEL",
	0x38: "LCD",
	0x76: "TEMP",
}

func waitForPress(pin rpio.Pin) {
	for pin.Read() != rpio.Low {
		time.Sleep(10 * time.Millisecond)
	}
	for pin.Read() == rpio.Low {
		time.Sleep(10 * time.Millisecond)
	}
}

// scan probes every 7 bit address and returns the ones that answered
func scan(bus i2c.Bus) []uint16 {
	found := []uint16{}
	for addr := uint16(1); addr < 127; addr++ {
		if i2c.Probe(bus, addr) {
			found = append(found, addr)
		}
	}
	return found
}

func main() {
	transport := flag.String("transport", "dev", "i2c transport: dev, periph, smbus or sim")
	buses := flag.String("bus", "1,2", "comma separated bus numbers")
	button := flag.Int("button", 0, "gpio pin to wait on between buses, 0 to run straight through")
	flag.Parse()

	var pin rpio.Pin
	if *button != 0 {
		if err := rpio.Open(); err != nil {
			log.Fatal(err.Error())
		}
		defer rpio.Close()
		pin = rpio.Pin(*button)
		pin.Input()
		pin.PullUp()
	}

	for i, s := range strings.Split(*buses, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			log.Fatalf("%s is not a number", s)
		}
		bus, err := i2c.Open(*transport, n)
		if err != nil {
			log.Fatal(err.Error())
		}

		var lcd *cdm4101.Surface
		if i2c.Probe(bus, cdm4101.Address) {
			lcd = cdm4101.Open(cdm4101.SurfaceID(i%2), bus, *transport == i2c.KindSim)
			if err := lcd.Init(); err != nil {
				log.Println(err.Error())
				lcd = nil
			}
		}
		show := func(s string, hold time.Duration) {
			if lcd != nil {
				lcd.SetString(s)
				time.Sleep(hold)
			}
		}

		log.Printf("scanning bus %d", n)
		show(fmt.Sprintf("bus%d", n), time.Second)
		if *button != 0 {
			waitForPress(pin)
		}

		found := scan(bus)
		for _, addr := range found {
			name, ok := known[addr]
			if !ok {
				name = "?"
			}
			log.Printf("  0x%02x %s", addr, name)
			show(fmt.Sprintf("  %02x", addr), 2*time.Second)
		}
		if len(found) == 0 {
			log.Println("  none")
			show("none", 2*time.Second)
		}
		bus.Close()
	}
}
