package main

import (
	"fmt"
	"time"

	"dscheirer.com/tm8/tracks"
)

// splitDigit is the highest slot number the right surface has room for
const splitDigit = 9

func (d *device) showElapsed(minutes, seconds, millis, slot int) {
	if slot > splitDigit {
		slot = splitDigit
	}
	d.left.SetDecimal(minutes*100 + seconds)
	d.right.SetDecimal(millis*10 + slot)
}

// waitStart shows the start prompt and returns on the btn4 release
func (d *device) waitStart() bool {
	d.showBoth("btn4", "strt")
	return waitRisingEdge(d.rt, btn4)
}

// timeSplits runs the stopwatch until btn4. Every btn3 edge records a
// split into rec; onSplit gets the time since the previous split.
func (d *device) timeSplits(rec *splitRecord, onSplit func(lap time.Duration)) {
	rt := d.rt
	start := rt.clock.Now()
	prev := time.Duration(0)
	rt.irq.clear(flagSplit)

	for !d.held(btn4) {
		if d.quitting() {
			return
		}
		elapsed := rt.clock.Since(start)
		m, s, ms := splitTime(elapsed)
		d.showElapsed(m, s, ms, rec.count())

		if !rt.irq.pending(flagSplit) {
			d.sleep(dPoll)
			continue
		}

		// freeze the display while the button is down
		canRecord := !rec.full()
		for d.held(btn3) && !d.quitting() {
			rt.led.set(ledCenter, canRecord)
			d.sleep(dPoll)
		}
		rt.led.off(ledCenter)
		rt.irq.clear(flagSplit)

		v := encodeSplit(m, s, ms)
		slot, ok := rec.record(v)
		d.showElapsed(m, s, ms, rec.count())
		if !ok {
			d.right.SetStringTimed("full")
			continue
		}
		d.serialf("split %d: %d %d", slot, v/1000, v%1000)
		if onSplit != nil {
			onSplit(elapsed - prev)
		}
		prev = elapsed
	}
}

func (d *device) exitTimer(name string) {
	d.sleep(dSecond)
	d.showBoth("quit", name)
	d.sleep(dSecond)
	d.blinkBoth("quit", name, 3, dBlinkExit, false)
}

func runChronograph(d *device) {
	d.rt.irq.attach(btn3, flagSplit)
	defer d.rt.irq.detach(btn3)

	if !d.waitStart() {
		return
	}
	d.timeSplits(d.chrono, nil)
	d.exitTimer("chro")
}

// raceSpeed is the average speed over a lap in hundredths of km/h
func raceSpeed(distanceM int, lap time.Duration) int64 {
	ms := int64(lap / time.Millisecond)
	if ms <= 0 {
		return 0
	}
	return int64(distanceM) * 360000 / ms
}

func (d *device) showSpeed(centi int64) {
	d.left.SetDecimal(int(centi / 100))
	d.right.SetString(fmt.Sprintf("  %02d", centi%100))
}

// pickTrack scrolls the track table with btn3, btn4 takes the one shown
// and doing nothing takes the first
func (d *device) pickTrack() tracks.Track {
	rt := d.rt
	list := d.tracks.Tracks
	idx := 0
	last := rt.clock.Now()
	for rt.clock.Since(last) <= dInactivity && !d.quitting() {
		d.showBoth(list[idx].Name, fmt.Sprintf("%4d", idx+1))
		switch firstPressed(rt, btn3, btn4) {
		case btn3:
			idx = (idx + 1) % len(list)
			waitRelease(rt, btn3)
			last = rt.clock.Now()
			continue
		case btn4:
			waitRelease(rt, btn4)
			return list[idx]
		}
		d.sleep(dPoll)
	}
	return list[0]
}

func runRace(d *device) {
	tr := d.pickTrack()
	d.logger.Printf("race on %s, %dm", tr.Name, tr.Distance)

	d.rt.irq.attach(btn3, flagSplit)
	defer d.rt.irq.detach(btn3)

	if !d.waitStart() {
		return
	}
	d.timeSplits(d.race, func(lap time.Duration) {
		d.showSpeed(raceSpeed(tr.Distance, lap))
		d.sleep(dSecond)
	})
	d.exitTimer("race")
}

func (d *device) browseSplits(rec *splitRecord) {
	values := rec.snapshot()
	if len(values) == 0 {
		d.showBoth(rec.name, "none")
		d.sleep(dSecond)
		return
	}
	for i, v := range values {
		if d.quitting() {
			return
		}
		d.left.SetDecimal(int(v / 1000))
		d.right.SetDecimal(int(v % 1000))
		d.serialf("split %d: %d %d", i, v/1000, v%1000)
		d.sleep(dSecond)
	}
}

// runSplitBrowser plays back a split record, btn1 for the chronograph and
// btn3 for the race
func runSplitBrowser(d *device) {
	d.showBoth("chro", "race")
	switch waitAnyPress(d.rt, btn1, btn3, btn4) {
	case btn1:
		d.browseSplits(d.chrono)
	case btn3:
		d.browseSplits(d.race)
	}
}
