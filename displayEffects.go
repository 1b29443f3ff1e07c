package main

import (
	"math/rand"
	"time"

	"dscheirer.com/tm8/cdm4101"
)

// tachometer needle, one frame per step
var tachFrames = [...]byte{0x00, 0x04, 0x0C, 0x2C, 0x6C, 0x6D, 0x6F}

// a bar falling through the digit
var swipeFrames = [...]byte{0x40, 0x61, 0x71, 0x7B, 0x7F, 0x3F, 0x1E, 0x0E, 0x04, 0x00}

// one lit segment circling the digit
var swirlFrames = [...]byte{0x40, 0x20, 0x08, 0x04, 0x02, 0x01}

// glyph flashed by blinkGo
const goFlash = 0x54

const (
	dTachFrame  = 80 * time.Millisecond
	dTachPause  = 200 * time.Millisecond
	dSwipeFrame = 80 * time.Millisecond
	dSwirlFrame = 30 * time.Millisecond
	dGoFlash    = 30 * time.Millisecond
	dGoResult   = 500 * time.Millisecond
)

func (d *device) sleep(dur time.Duration) {
	d.rt.clock.Sleep(dur)
}

func (d *device) setBoth(glyph byte) {
	d.left.SetAll(glyph)
	d.right.SetAll(glyph)
}

func (d *device) showBoth(left, right string) {
	d.left.SetString(left)
	d.right.SetString(right)
}

// shuffle permutes order in place (Fisher-Yates)
func shuffle(r *rand.Rand, order []int) {
	for i := len(order) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
}

// animTach sweeps the needle up and back while the indicator LEDs light in
// a random order and go out in reverse, delay per frame
func (d *device) animTach(delay time.Duration) {
	order := make([]int, ledCount)
	for i := range order {
		order[i] = i
	}
	shuffle(rand.New(rand.NewSource(d.rt.noise.noise())), order)

	for i, g := range tachFrames {
		d.setBoth(g)
		if i >= 1 && i-1 < len(order) {
			d.rt.led.on(order[i-1])
		}
		d.sleep(delay)
	}
	d.sleep(dTachPause)
	for i := len(tachFrames) - 1; i >= 0; i-- {
		d.setBoth(tachFrames[i])
		if i >= 1 && i-1 < len(order) {
			d.rt.led.off(order[i-1])
		}
		d.sleep(delay)
	}
}

func (d *device) animSwipeDown(delay time.Duration) {
	for _, g := range swipeFrames {
		d.setBoth(g)
		d.sleep(delay)
	}
}

// animSwirl circles one digit of s, the rest of the surface is untouched
func (d *device) animSwirl(s *cdm4101.Surface, index int, times int) {
	for t := 0; t < times; t++ {
		for _, g := range swirlFrames {
			s.SetDigit(index, g)
			d.sleep(dSwirlFrame)
		}
	}
	s.SetDigit(index, cdm4101.Blank)
}

func (d *device) scrambleAnim(count int, delay time.Duration) {
	for i := 0; i < count; i++ {
		d.left.SetDecimal(d.rng.Intn(10000))
		d.right.SetDecimal(d.rng.Intn(10000))
		d.sleep(delay)
	}
}

// blinkGo flashes the right surface with a chirp and lands on the verdict
func (d *device) blinkGo(isGo bool) {
	for i := 0; i < 5; i++ {
		d.right.SetString("")
		d.rt.buzzer.noTone()
		d.sleep(dGoFlash)
		d.right.SetAll(goFlash)
		d.rt.buzzer.tone((d.rng.Intn(6) + 1) * 1000)
		d.sleep(dGoFlash)
	}
	if isGo {
		d.right.SetString(" GO ")
	} else {
		d.right.SetString("Err ")
	}
	d.rt.buzzer.noTone()
	d.sleep(dGoResult)
}

// blinkBoth shows left/right and blanks them, times over; blankFirst
// flips the order so the text is left up at the end
func (d *device) blinkBoth(left, right string, times int, delay time.Duration, blankFirst bool) {
	for i := 0; i < times; i++ {
		if blankFirst {
			d.showBoth("", "")
			d.sleep(delay)
			d.showBoth(left, right)
			d.sleep(delay)
		} else {
			d.showBoth(left, right)
			d.sleep(delay)
			d.showBoth("", "")
			d.sleep(delay)
		}
	}
}
