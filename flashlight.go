package main

var flashColors = []struct {
	name string
	c    rgb
}{
	{"whte", rgbWhite},
	{" red", rgbRed},
	{"gren", rgbGreen},
	{"blue", rgbBlue},
}

// runFlashlight lights both backlights; btn3 steps the color and btn4
// turns them off and leaves
func runFlashlight(d *device) {
	rt := d.rt
	i := 0
	for !d.quitting() {
		setBacklight(rt, flashColors[i].c)
		d.showBoth("FLSH", flashColors[i].name)
		btn := waitAnyPress(rt, btn3, btn4)
		waitRelease(rt, btn)
		if btn != btn3 {
			break
		}
		i = (i + 1) % len(flashColors)
	}
	setBacklight(rt, rgbOff)
	d.showBoth("", "")
}
