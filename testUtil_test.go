package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"dscheirer.com/tm8/cdm4101"
	"dscheirer.com/tm8/i2c"
	"github.com/jonboulle/clockwork"
	"github.com/stianeikeland/go-rpio"
	"tinygo.org/x/drivers"
)

// all tests start on a Friday
var testStart = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	log.SetOutput(os.Stderr)
	os.Exit(m.Run())
}

func logCaller(pc uintptr, file string, line int, ok bool) {
	if !ok {
		file = "?"
		line = 0
	}
	fn := runtime.FuncForPC(pc)
	fnName := "?()"
	if fn != nil {
		fnName = strings.TrimLeft(filepath.Ext(fn.Name()), ".") + "()"
	}
	log.Printf("Starting %s (%s:%d)", fnName, filepath.Base(file), line)
}

// stepClock is a fake clock where Sleep moves time on, so a program that
// polls and sleeps runs straight through on the test goroutine
type stepClock struct {
	clockwork.FakeClock
	hook func()
}

func (c *stepClock) Sleep(d time.Duration) {
	c.Advance(d)
	if c.hook != nil {
		c.hook()
	}
}

// quitAfter shuts the rig down once d has gone by
func (r *testRig) quitAfter(d time.Duration) {
	r.clock.hook = func() {
		if r.at() >= d {
			r.rt.comms.shutdown()
		}
	}
}

// press is one scripted button press, relative to the start of the test
type press struct {
	btn string
	at  time.Duration
	dur time.Duration
}

// scriptButtons reads the press script against the clock
type scriptButtons struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	start   time.Time
	presses []press
}

func (sb *scriptButtons) offset() time.Duration {
	return sb.clock.Now().Sub(sb.start)
}

func (sb *scriptButtons) add(p ...press) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.presses = append(sb.presses, p...)
}

func (sb *scriptButtons) script() []press {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return append([]press{}, sb.presses...)
}

func (sb *scriptButtons) down(name string) bool {
	t := sb.offset()
	for _, p := range sb.script() {
		if p.btn == name && t >= p.at && t < p.at+p.dur {
			return true
		}
	}
	return false
}

func (sb *scriptButtons) initButtons(s *settings) error { return nil }

func (sb *scriptButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	return nil
}

func (sb *scriptButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	ret := make(map[string]rpio.State)
	for _, name := range []string{btn1, btn2, btn3, btn4} {
		ret[name] = rpio.High
		if sb.down(name) {
			ret[name] = rpio.Low
		}
	}
	return ret, nil
}

func (sb *scriptButtons) closeButtons() {}

// scriptInterrupts raises a flag for every scripted press that starts
// after the button was attached and after the flag was last cleared
type scriptInterrupts struct {
	mu       sync.Mutex
	sb       *scriptButtons
	attached map[string]irqFlag
	since    map[string]time.Duration
	cleared  [flagCount]time.Duration
}

func newScriptInterrupts(sb *scriptButtons) *scriptInterrupts {
	si := &scriptInterrupts{
		sb:       sb,
		attached: make(map[string]irqFlag),
		since:    make(map[string]time.Duration),
	}
	for i := range si.cleared {
		si.cleared[i] = -time.Hour
	}
	return si
}

func (si *scriptInterrupts) attach(btn string, f irqFlag) {
	si.mu.Lock()
	defer si.mu.Unlock()
	si.attached[btn] = f
	si.since[btn] = si.sb.offset()
}

func (si *scriptInterrupts) detach(btn string) {
	si.mu.Lock()
	defer si.mu.Unlock()
	delete(si.attached, btn)
}

func (si *scriptInterrupts) pending(f irqFlag) bool {
	si.mu.Lock()
	defer si.mu.Unlock()
	now := si.sb.offset()
	for btn, af := range si.attached {
		if af != f {
			continue
		}
		after := si.since[btn]
		if si.cleared[f] > after {
			after = si.cleared[f]
		}
		for _, p := range si.sb.script() {
			if p.btn == btn && p.at > after && p.at <= now {
				return true
			}
		}
	}
	return false
}

func (si *scriptInterrupts) clear(f irqFlag) {
	si.mu.Lock()
	defer si.mu.Unlock()
	si.cleared[f] = si.sb.offset()
}

type fakeEnv struct {
	reading envReading
	err     error
}

func (fe *fakeEnv) begin() error              { return fe.err }
func (fe *fakeEnv) read() (envReading, error) { return fe.reading, fe.err }

type fakeAccel struct {
	x, y, z int32
	err     error
}

func (fa *fakeAccel) begin() error { return fa.err }
func (fa *fakeAccel) read() (int32, int32, int32, error) {
	return fa.x, fa.y, fa.z, fa.err
}

type fixedNoise int64

func (fn fixedNoise) noise() int64 { return int64(fn) }

// testRig is everything a device test pokes at
type testRig struct {
	rt      runtimeConfig
	clock   *stepClock
	buttons *scriptButtons
	screens [2]*frameLog
	led     *logLed
	buzzer  *logBuzzer
	serial  *bytes.Buffer
}

func testRuntime(presses ...press) *testRig {
	logCaller(runtime.Caller(1))

	s := defaultSettings()
	s.settings[sTransport] = i2c.KindSim
	s.settings[sButtonSource] = srcNone

	clock := &stepClock{FakeClock: clockwork.NewFakeClockAt(testStart)}
	sb := &scriptButtons{clock: clock, start: clock.Now(), presses: presses}

	var logs [2]*frameLog
	var buses [2]drivers.I2C
	for i := range logs {
		sim := i2c.NewSim(i + 1)
		seedSimBus(sim, i)
		sim.Verbose(false)
		logs[i] = &frameLog{Sim: sim}
		buses[i] = logs[i]
	}

	ll := &logLed{disableLog: true}
	ll.init()
	lb := &logBuzzer{}
	serial := &bytes.Buffer{}

	rt := runtimeConfig{
		settings: s,
		clock:    clock,
		comms:    initCommChannels(),
		logger:   &ThreadLogger{name: "Test"},
		display:  cdm4101.NewPair(buses[0], buses[1], true),
		buses:    buses,
		buttons:  sb,
		irq:      newScriptInterrupts(sb),
		led:      ll,
		buzzer:   lb,
		rtc:      newRealTimeClock(clock),
		fuel:     newFuelGauge(buses[0]),
		env:      &fakeEnv{reading: envReading{milliC: 23450, humidity: 4512, milliPa: 101325000}},
		accel:    &fakeAccel{x: 12000, y: -250000, z: 1001000},
		power:    &hostPower{clock: clock},
		noise:    fixedNoise(42),
		calendar: &testEvents{},
		serial:   serial,
		status:   newStatusBoard(),
	}
	return &testRig{
		rt:      rt,
		clock:   clock,
		buttons: sb,
		screens: logs,
		led:     ll,
		buzzer:  lb,
		serial:  serial,
	}
}

func (r *testRig) newDev() *device {
	return newDevice(r.rt, nil)
}

// at is the rig's time since start, handy for scripting presses later on
func (r *testRig) at() time.Duration {
	return r.buttons.offset()
}

// frameLog records each distinct digit load sent to the display
type frameLog struct {
	*i2c.Sim
	mu     sync.Mutex
	frames [][5]byte
}

func (fl *frameLog) Tx(addr uint16, w, r []byte) error {
	if addr == cdm4101.Address && len(w) == 10 {
		var p [5]byte
		copy(p[:], w[5:])
		fl.mu.Lock()
		if n := len(fl.frames); n == 0 || fl.frames[n-1] != p {
			fl.frames = append(fl.frames, p)
		}
		fl.mu.Unlock()
	}
	return fl.Sim.Tx(addr, w, r)
}

func (fl *frameLog) index(want [5]byte, from int) int {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	for i := from; i < len(fl.frames); i++ {
		if fl.frames[i] == want {
			return i
		}
	}
	return -1
}

// seen reports whether text was ever on the display
func (fl *frameLog) seen(text string) bool {
	return fl.index(cdm4101.Pack(cdm4101.Text(text)), 0) >= 0
}

// seenAll reports whether every digit ever showed glyph at once
func (fl *frameLog) seenAll(glyph byte) bool {
	return fl.index(cdm4101.Pack([4]byte{glyph, glyph, glyph, glyph}), 0) >= 0
}

// inOrder reports whether every text showed up, in this order
func (fl *frameLog) inOrder(texts ...string) bool {
	at := 0
	for _, t := range texts {
		i := fl.index(cdm4101.Pack(cdm4101.Text(t)), at)
		if i < 0 {
			return false
		}
		at = i + 1
	}
	return true
}

func (fl *frameLog) reset() {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	fl.frames = nil
}

func (r *testRig) left() *frameLog  { return r.screens[0] }
func (r *testRig) right() *frameLog { return r.screens[1] }

// testQuit stops the loops and waits for them; a fake clock is nudged so
// sleepers wake up and see quit
func testQuit(rt runtimeConfig) {
	rt.comms.shutdown()
	if fc, ok := rt.clock.(clockwork.FakeClock); ok {
		fc.Advance(time.Hour)
	}
	wg.Wait()
}
