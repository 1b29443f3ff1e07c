package main

import (
	"time"
)

// party effects, picked at random
const (
	eSwipe = iota
	eScramble
	eTach
	eSwirl
	eLedShuffle
	eCount
)

const (
	dPartyFrame = 60 * time.Millisecond
	partyFrames = 12
)

// partyTones are the notes the party picks from
var partyTones = [...]int{523, 659, 784, 1047, 1319, 1568}

func (d *device) ledShuffle(frames int) {
	for i := 0; i < frames; i++ {
		for led := 0; led < ledCount; led++ {
			d.rt.led.set(led, d.rng.Intn(2) == 1)
		}
		d.rt.buzzer.tone(partyTones[d.rng.Intn(len(partyTones))])
		d.sleep(dPartyFrame)
	}
	indicatorsOff(d.rt)
}

func (d *device) partyEffect(id int) {
	d.rt.buzzer.tone(partyTones[d.rng.Intn(len(partyTones))])
	switch id {
	case eSwipe:
		d.animSwipeDown(dSwipeFrame)
	case eScramble:
		d.scrambleAnim(partyFrames, dPartyFrame)
	case eTach:
		d.animTach(dPartyFrame)
	case eSwirl:
		d.showBoth("", "")
		d.animSwirl(d.left, d.rng.Intn(4), 2)
		d.animSwirl(d.right, d.rng.Intn(4), 2)
	case eLedShuffle:
		d.ledShuffle(partyFrames)
	}
	d.rt.buzzer.noTone()
}

// runParty plays random effects until btn4
func runParty(d *device) {
	for !d.quitting() {
		if d.held(btn4) {
			waitRelease(d.rt, btn4)
			break
		}
		d.partyEffect(d.rng.Intn(eCount))
	}
	d.rt.buzzer.noTone()
	indicatorsOff(d.rt)
	d.showBoth("", "")
}
