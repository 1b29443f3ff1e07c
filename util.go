// utility functions
package main

import (
	"io"
	"math/rand"
	"os"
	"sync"
	"time"

	"dscheirer.com/tm8/cdm4101"
	"dscheirer.com/tm8/i2c"
	"github.com/jonboulle/clockwork"
	"tinygo.org/x/drivers"
)

var wg sync.WaitGroup

// durations shared by the loops
const (
	dPoll         = 10 * time.Millisecond
	dButtonDelay  = 200 * time.Millisecond
	dMenuSettle   = 200 * time.Millisecond
	dInactivity   = 2 * time.Second
	dIrqSleep     = 5 * time.Millisecond
	dSecond       = time.Second
	dBlinkMenu    = 50 * time.Millisecond
	dBlinkExit    = 75 * time.Millisecond
	dSelectPause  = 500 * time.Millisecond
	dReadingCycle = 500 * time.Millisecond
)

type commChannels struct {
	quit     chan struct{}
	quitOnce *sync.Once
}

func initCommChannels() commChannels {
	return commChannels{
		quit:     make(chan struct{}),
		quitOnce: &sync.Once{},
	}
}

// shutdown closes quit, safe to call from any loop more than once
func (c commChannels) shutdown() {
	c.quitOnce.Do(func() { close(c.quit) })
}

type runtimeConfig struct {
	settings *settings
	clock    clockwork.Clock
	comms    commChannels
	logger   flogger
	display  *cdm4101.Pair
	buses    [2]drivers.I2C
	buttons  buttons
	irq      interrupts
	led      led
	buzzer   buzzer
	rtc      *realTimeClock
	fuel     fuelGauge
	env      envSensor
	accel    accelerometer
	power    power
	noise    noiseSource
	calendar alarmSource
	serial   io.Writer
	status   *statusBoard
}

func (rt runtimeConfig) quitting() bool {
	select {
	case <-rt.comms.quit:
		return true
	default:
		return false
	}
}

// initRuntime builds the hardware side of the runtime from the settings
func initRuntime(s *settings) (runtimeConfig, error) {
	clock := clockwork.NewRealClock()
	rt := runtimeConfig{
		settings: s,
		clock:    clock,
		comms:    initCommChannels(),
		logger:   &ThreadLogger{name: "Main"},
		rtc:      newRealTimeClock(clock),
		power:    &hostPower{clock: clock},
		noise:    &clockNoise{clock: clock, pid: int64(os.Getpid())},
		serial:   os.Stdout,
		status:   newStatusBoard(),
	}

	transport := s.GetString(sTransport)
	simulated := transport == i2c.KindSim
	for i, n := range []int{s.GetInt(sLeftBus), s.GetInt(sRightBus)} {
		bus, err := i2c.Open(transport, n)
		if err != nil {
			return rt, err
		}
		if sim, ok := bus.(*i2c.Sim); ok {
			seedSimBus(sim, i)
		}
		rt.buses[i] = bus
	}

	rt.display = cdm4101.NewPair(rt.buses[0], rt.buses[1], simulated)
	rt.display.SetHoldTime(s.GetInt(sHoldTime))
	rt.display.DebugDump(s.GetBool(sDebug))

	// fuel gauge and left display share the first bus, the rest the second
	rt.fuel = newFuelGauge(rt.buses[0])
	rt.accel = newAccelerometer(rt.buses[1])
	rt.env = newEnvSensor(rt.buses[1])

	switch s.GetString(sButtonSource) {
	case srcKeyboard:
		rt.buttons = &keyButtons{}
	case srcNone:
		rt.buttons = &noButtons{}
	default:
		rt.buttons = &rpioButtons{}
	}

	if simulated {
		rt.led = &logLed{}
		rt.buzzer = &logBuzzer{}
	} else {
		rt.led = &rpioLed{pins: append(s.GetIntList(sLedPins), s.GetIntList(sBacklightPins)...)}
		rt.buzzer = &rpioBuzzer{pin: s.GetInt(sTonePin)}
	}
	if err := rt.led.init(); err != nil {
		return rt, err
	}

	rt.calendar = &gcalEvents{}
	return rt, nil
}

// seedSimBus makes the simulated peripherals answer like the real board
func seedSimBus(sim *i2c.Sim, index int) {
	sim.Verbose(true)
	sim.SetWriteOnly(cdm4101.Address)
	if index == 0 {
		sim.SetPresent(addrFuel, cdm4101.Address)
		sim.SetRegister(addrFuel, regFuelVersion, 0x00, 0x12)
		sim.SetRegister(addrFuel, regFuelVCell, 0xCE, 0x40)
		sim.SetRegister(addrFuel, regFuelSOC, 87, 0)
		return
	}
	sim.SetPresent(addrAccel, addrEnv, cdm4101.Address)
	sim.SetRegister(addrAccel, regAccelWhoAmI, accelWhoAmI)
	sim.SetRegister(addrEnv, regEnvChipID, envChipID)
}

// newRand seeds a generator from the noise source
func newRand(rt runtimeConfig) *rand.Rand {
	return rand.New(rand.NewSource(rt.noise.noise()))
}
