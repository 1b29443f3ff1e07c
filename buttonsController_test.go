package main

import (
	"runtime"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stianeikeland/go-rpio"
	"gotest.tools/assert"
)

func watcherRuntime(t *testing.T) (runtimeConfig, clockwork.FakeClock, *noButtons) {
	logCaller(runtime.Caller(1))
	s := defaultSettings()
	clock := clockwork.NewFakeClockAt(testStart)
	nb := &noButtons{}
	rt := runtimeConfig{
		settings: s,
		clock:    clock,
		comms:    initCommChannels(),
		logger:   &ThreadLogger{name: "Test"},
		buttons:  nb,
	}
	assert.NilError(t, startButtons(rt))
	return rt, clock, nb
}

func TestSampleEdges(t *testing.T) {
	gi := newGpioInterrupts()
	gi.attach(btn3, flagMenu)

	up := map[string]rpio.State{btn1: rpio.High, btn3: rpio.High}
	down := map[string]rpio.State{btn1: rpio.Low, btn3: rpio.Low}

	assert.Equal(t, len(gi.sample(up)), 0)
	assert.DeepEqual(t, gi.sample(down), []irqFlag{flagMenu})
	assert.Assert(t, gi.pending(flagMenu))
	// btn1 is not attached
	assert.Assert(t, !gi.pending(flagAction))

	// holding is not a new edge
	gi.clear(flagMenu)
	assert.Equal(t, len(gi.sample(down)), 0)
	assert.Assert(t, !gi.pending(flagMenu))

	gi.sample(up)
	gi.detach(btn3)
	assert.Equal(t, len(gi.sample(down)), 0)
}

func TestWatchInterrupts(t *testing.T) {
	rt, clock, nb := watcherRuntime(t)
	gi := newGpioInterrupts()
	gi.attach(btn3, flagMenu)
	gi.attach(btn4, flagSplit)

	startWatchInterrupts(rt, gi)
	clock.BlockUntil(1)

	nb.press(btn3)
	clock.Advance(dIrqSleep)
	clock.BlockUntil(1)
	assert.Assert(t, gi.pending(flagMenu))
	assert.Assert(t, !gi.pending(flagSplit))

	// still held, cleared flag stays down
	gi.clear(flagMenu)
	clock.Advance(dIrqSleep)
	clock.BlockUntil(1)
	assert.Assert(t, !gi.pending(flagMenu))

	// a second press after a release raises it again
	nb.release(btn3)
	clock.Advance(dIrqSleep)
	clock.BlockUntil(1)
	nb.press(btn3)
	clock.Advance(dIrqSleep)
	clock.BlockUntil(1)
	assert.Assert(t, gi.pending(flagMenu))

	testQuit(rt)
}

func TestWatchInterruptsQuit(t *testing.T) {
	rt, clock, _ := watcherRuntime(t)
	gi := newGpioInterrupts()

	startWatchInterrupts(rt, gi)
	clock.BlockUntil(1)
	testQuit(rt)
	assert.Assert(t, rt.quitting())
}

func TestPressedHelpers(t *testing.T) {
	rt, _, nb := watcherRuntime(t)

	assert.Assert(t, !pressed(rt, btn2))
	nb.press(btn2)
	assert.Assert(t, pressed(rt, btn2))
	assert.Equal(t, firstPressed(rt, btn1, btn2, btn3), btn2)
	assert.Equal(t, firstPressed(rt, btn1, btn3), "")
	// unknown names never read as pressed
	assert.Assert(t, !pressed(rt, "btn9"))
	nb.clear()
	assert.Assert(t, !pressed(rt, btn2))
}
