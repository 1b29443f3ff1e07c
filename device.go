package main

import (
	"fmt"
	"math/rand"

	"dscheirer.com/tm8/cdm4101"
	"dscheirer.com/tm8/tracks"
	"github.com/pkg/errors"
)

// program is one entry of the main menu
type program struct {
	name string
	run  func(d *device)
}

// device is the state the control loop owns
type device struct {
	rt       runtimeConfig
	left     *cdm4101.Surface
	right    *cdm4101.Surface
	programs []program
	chrono   *splitRecord
	race     *splitRecord
	tracks   *tracks.Table
	alarm    *alarmState
	rng      *rand.Rand
	logger   flogger
}

const (
	chronoSplits = 10
	raceSplits   = 100
)

func newDevice(rt runtimeConfig, tbl *tracks.Table) *device {
	if tbl == nil {
		tbl = tracks.Default()
	}
	d := &device{
		rt:     rt,
		left:   rt.display.Left,
		right:  rt.display.Right,
		chrono: newSplitRecord("chro", chronoSplits),
		race:   newSplitRecord("race", raceSplits),
		tracks: tbl,
		alarm:  &alarmState{},
		rng:    newRand(rt),
		logger: &ThreadLogger{name: "Device"},
	}
	// index 0 is never selectable, picking it means "back to the clock"
	d.programs = []program{
		{"quit", nil},
		{"Chro", runChronograph},
		{"data", runSplitBrowser},
		{"Alrm", runAlarmSet},
		{"Adju", runTimeSet},
		{"Prty", runParty},
		{"Race", runRace},
		{"temp", runTelemetry},
		{"Flsh", runFlashlight},
		{"Game", runGames},
	}
	if rt.status != nil {
		rt.status.attach(d.alarm, d.chrono, d.race)
	}
	d.loadAlarm()
	return d
}

func (d *device) held(name string) bool {
	return pressed(d.rt, name)
}

func (d *device) quitting() bool {
	return d.rt.quitting()
}

// serialf writes one line to the debug channel
func (d *device) serialf(format string, args ...interface{}) {
	if d.rt.serial == nil {
		return
	}
	fmt.Fprintf(d.rt.serial, format+"\n", args...)
}

func (d *device) attachHome() {
	d.rt.irq.attach(btn3, flagMenu)
	d.rt.irq.attach(btn1, flagAction)
	d.rt.irq.attach(btn2, flagDate)
}

func (d *device) detachHome() {
	d.rt.irq.detach(btn3)
	d.rt.irq.detach(btn1)
	d.rt.irq.detach(btn2)
}

func (d *device) runProgram(idx int) {
	if idx <= 0 || idx >= len(d.programs) {
		return
	}
	p := d.programs[idx]
	d.logger.Printf("running %s", p.name)
	d.publish(p.name)
	p.run(d)
	d.logger.Printf("%s done", p.name)
}

// homeStep is one pass of the clock face
func (d *device) homeStep() {
	now := d.rt.rtc.now()
	d.left.SetDecimal(now.Hour()*100 + now.Minute())
	d.right.SetDecimal(now.Second())
	d.publish("home")

	irq := d.rt.irq
	if irq.pending(flagMenu) {
		d.detachHome()
		d.runProgram(d.menuSelect())
		d.attachHome()
		irq.clear(flagMenu)
		return
	}
	if irq.pending(flagAction) {
		d.showBattery()
		irq.clear(flagAction)
	}
	if irq.pending(flagDate) {
		d.showDate()
		irq.clear(flagDate)
	}
	d.checkAlarm(now)
	d.rt.power.deepSleep(d.rt.settings.GetDuration(sHomeTick))
}

// run keeps the clock face up until quit
func (d *device) run() {
	d.attachHome()
	defer d.detachHome()
	for !d.quitting() {
		d.homeStep()
	}
}

// boot brings up the displays and reports the peripherals; the only error
// is a missing fuel gauge
func (d *device) boot() error {
	if err := d.rt.display.Init(); err != nil {
		d.logger.Println(err.Error())
	}
	if err := d.selfTest(); err != nil {
		return err
	}
	if err := d.rt.accel.begin(); err != nil {
		d.logger.Println(err.Error())
	}
	if err := d.rt.env.begin(); err != nil {
		d.logger.Println(err.Error())
	}
	return nil
}

func isFuelFault(err error) bool {
	return errors.Cause(err) == errNoFuelGauge
}

// process exit codes
const (
	exitOK        = 0
	exitFailed    = 1
	exitNoBattery = 3
)

// exitStatus tells a supervisor a dead fuel gauge apart from other failures
func exitStatus(err error) int {
	switch {
	case err == nil:
		return exitOK
	case isFuelFault(err):
		return exitNoBattery
	}
	return exitFailed
}
