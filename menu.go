package main

import (
	"fmt"
)

// scrollIndex moves i by delta inside [1, n-1], wrapping at both ends.
// Index 0 is the exit entry and never comes up while scrolling.
func scrollIndex(i, delta, n int) int {
	span := n - 1
	if span <= 0 {
		return 0
	}
	i = (i - 1 + delta) % span
	if i < 0 {
		i += span
	}
	return i + 1
}

func (d *device) showMenuEntry(idx int) {
	d.left.SetDecimal(idx)
	d.right.SetString(d.programs[idx].name)
}

// menuSelect scrolls the program list and returns the picked index, or 0
// once the buttons have been left alone for the inactivity timeout
func (d *device) menuSelect() int {
	rt := d.rt
	idx := 1
	n := len(d.programs)
	d.sleep(dMenuSettle)
	last := rt.clock.Now()

	for rt.clock.Since(last) <= dInactivity {
		if d.quitting() {
			return 0
		}
		d.showMenuEntry(idx)
		switch firstPressed(rt, btn3, btn1, btn4) {
		case btn3:
			idx = scrollIndex(idx, 1, n)
			d.showMenuEntry(idx)
			d.sleep(dButtonDelay)
			last = rt.clock.Now()
			continue
		case btn1:
			idx = scrollIndex(idx, -1, n)
			d.showMenuEntry(idx)
			d.sleep(dButtonDelay)
			last = rt.clock.Now()
			continue
		case btn4:
			d.blinkBoth(fmt.Sprintf("%4d", idx), d.programs[idx].name, 3, dBlinkMenu, true)
			d.sleep(dSelectPause)
			return idx
		}
		d.sleep(dPoll)
	}
	return 0
}
