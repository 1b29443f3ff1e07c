package main

// logical LED indexes
const (
	ledCenter = 4 // LED5, the split indicator
	ledCount  = 5 // indicator LEDs 0..4

	blLeftR  = 5
	blLeftG  = 6
	blLeftB  = 7
	blRightR = 8
	blRightG = 9
	blRightB = 10

	ledTotal = 11
)

type rgb struct {
	r, g, b bool
}

var (
	rgbOff   = rgb{}
	rgbWhite = rgb{true, true, true}
	rgbRed   = rgb{r: true}
	rgbGreen = rgb{g: true}
	rgbBlue  = rgb{b: true}
)

func setBacklight(rt runtimeConfig, c rgb) {
	rt.led.set(blLeftR, c.r)
	rt.led.set(blLeftG, c.g)
	rt.led.set(blLeftB, c.b)
	rt.led.set(blRightR, c.r)
	rt.led.set(blRightG, c.g)
	rt.led.set(blRightB, c.b)
}

func indicatorsOff(rt runtimeConfig) {
	for i := 0; i < ledCount; i++ {
		rt.led.off(i)
	}
}
