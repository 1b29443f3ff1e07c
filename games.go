package main

import (
	"time"
)

const (
	dReactMin   = time.Second
	dReactRange = 3 * time.Second
	dDiceFrame  = 50 * time.Millisecond
	diceFrames  = 15
)

// reaction waits a random moment, then times the btn4 press after "GO".
// Pressing early is a false start.
func (d *device) reaction() {
	rt := d.rt
	d.showBoth("rdy", "")
	wait := dReactMin + time.Duration(d.rng.Int63n(int64(dReactRange)))
	start := rt.clock.Now()
	for rt.clock.Since(start) < wait {
		if d.quitting() {
			return
		}
		if d.held(btn4) {
			waitRelease(rt, btn4)
			d.showBoth("Err", "frst")
			d.sleep(dSecond)
			return
		}
		d.sleep(dPoll)
	}

	d.right.SetString(" GO ")
	rt.buzzer.tone(alarmTone)
	start = rt.clock.Now()
	if !waitPress(rt, btn4) {
		rt.buzzer.noTone()
		return
	}
	ms := int(rt.clock.Since(start) / time.Millisecond)
	rt.buzzer.noTone()
	waitRelease(rt, btn4)

	d.logger.Printf("reaction %dms", ms)
	d.serialf("reaction %d", ms)
	d.left.SetString("ms")
	d.right.SetDecimal(ms)
	d.sleep(2 * dSecond)
}

// dice rolls 1..6 after a short scramble
func (d *device) dice() int {
	d.scrambleAnim(diceFrames, dDiceFrame)
	roll := d.rng.Intn(6) + 1
	d.left.SetString("dice")
	d.right.SetDecimal(roll)
	d.sleep(dSecond)
	return roll
}

// runGames offers the reaction game on btn1 and a dice roll on btn3
func runGames(d *device) {
	rt := d.rt
	for !d.quitting() {
		d.showBoth("rEAC", "dice")
		btn := waitAnyPress(rt, btn1, btn3, btn4)
		waitRelease(rt, btn)
		switch btn {
		case btn1:
			d.reaction()
		case btn3:
			d.dice()
		default:
			return
		}
	}
}
