package cdm4101

import (
	"fmt"
	"log"

	"github.com/pkg/errors"
	"tinygo.org/x/drivers"
)

// both controllers answer on the same address, one per bus
const Address = 0x38

// controller commands
const i2cMODE_SET = 0xCD
const i2cLOAD_DP = 0x80
const i2cDEVICE_SEL = 0xE0
const i2cBANK_SEL = 0xF8
const i2cNOBLINK = 0x70
const i2cBLINK = 0x71

// DefaultHold is the number of renders a timed string survives
const DefaultHold = 8

const maxDecimal = 9999
const minDecimal = -999

// preamble + blink + 5 bytes of packed digits
const frameSize = 10

var setupFrame = [frameSize]byte{
	i2cMODE_SET, i2cLOAD_DP, i2cDEVICE_SEL, i2cBANK_SEL, i2cNOBLINK,
	0x05, 0xD5, 0x9B, 0xFF, 0x00,
}

// Command is a surface level control code
type Command byte

const (
	BlinkOff Command = 6
	BlinkOn  Command = 7
	Clear    Command = 8
)

// SurfaceID names one of the two displays
type SurfaceID int

const (
	Left SurfaceID = iota
	Right
)

func (id SurfaceID) String() string {
	switch id {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("surface(%d)", int(id))
}

// Surface is one 4 digit LCD behind its own bus
type Surface struct {
	id       SurfaceID
	bus      drivers.I2C
	digits   [4]byte
	blink    bool
	hold     int
	holdTime int
	drops    int
	dump     bool
	sim      bool
	lastDump [4]byte
}

func Open(id SurfaceID, bus drivers.I2C, simulated bool) *Surface {
	return &Surface{
		id:       id,
		bus:      bus,
		holdTime: DefaultHold,
		sim:      simulated,
	}
}

func (this *Surface) simLog(v string, args ...interface{}) {
	if !this.sim {
		return
	}
	log.Printf(this.id.String()+": "+v, args...)
}

func (this *Surface) ID() SurfaceID {
	return this.id
}

func (this *Surface) DebugDump(on bool) {
	this.dump = on
}

// SetHoldTime changes how many renders SetStringTimed freezes the surface for
func (this *Surface) SetHoldTime(n int) {
	if n < 0 {
		n = 0
	}
	this.holdTime = n
}

func (this *Surface) Digits() [4]byte {
	return this.digits
}

func (this *Surface) Blink() bool {
	return this.blink
}

func (this *Surface) Hold() int {
	return this.hold
}

// Drops counts frames the bus refused
func (this *Surface) Drops() int {
	return this.drops
}

// Init resets the surface and sends the controller setup sequence.
func (this *Surface) Init() error {
	this.blink = false
	this.hold = 0
	this.digits = [4]byte{}
	this.simLog("Init")
	if err := this.bus.Tx(Address, setupFrame[:], nil); err != nil {
		return errors.Wrapf(err, "%s display init", this.id)
	}
	return nil
}

// Frame returns the bytes Render would put on the bus
func (this *Surface) Frame() [frameSize]byte {
	var frame [frameSize]byte
	frame[0] = i2cMODE_SET
	frame[1] = i2cLOAD_DP
	frame[2] = i2cDEVICE_SEL
	frame[3] = i2cBANK_SEL
	frame[4] = i2cNOBLINK
	if this.blink {
		frame[4] = i2cBLINK
	}
	packed := Pack(this.digits)
	copy(frame[5:], packed[:])
	return frame
}

// Render pushes the digit buffer to the controller unless a timed hold is
// still running, in which case one hold tick is used up instead.
func (this *Surface) Render() {
	if this.hold > 0 {
		this.hold--
		return
	}
	if this.dump && this.lastDump != this.digits {
		this.lastDump = this.digits
		log.Println(this.Dump())
	}
	frame := this.Frame()
	if err := this.bus.Tx(Address, frame[:], nil); err != nil {
		this.drops++
		log.Printf("%s: %v", this.id, errors.Wrapf(err, "render 0x%02x", Address))
	}
}

// SetDigit writes a raw glyph, bypassing the encoder
func (this *Surface) SetDigit(index int, glyph byte) {
	if index < 0 || index >= len(this.digits) {
		return
	}
	this.digits[index] = glyph
	this.Render()
}

func (this *Surface) SetChar(index int, c byte) {
	this.SetDigit(index, Encode(c))
}

// SetAll writes the same raw glyph to every digit
func (this *Surface) SetAll(glyph byte) {
	for i := range this.digits {
		this.digits[i] = glyph
	}
	this.Render()
}

// SetString left-fills up to four characters, stopping early at a NUL.
func (this *Surface) SetString(s string) {
	this.digits = Text(s)
	this.Render()
}

// SetStringTimed shows s, then keeps it up for the next hold-time renders.
func (this *Surface) SetStringTimed(s string) {
	this.SetString(s)
	this.hold = this.holdTime
}

// SetDecimal shows n right justified, clamped to what four digits can hold.
func (this *Surface) SetDecimal(n int) {
	if n > maxDecimal {
		n = maxDecimal
	} else if n < minDecimal {
		n = minDecimal
	}
	this.SetString(fmt.Sprintf("%4d", n))
}

func (this *Surface) Command(cmd Command) {
	switch cmd {
	case BlinkOff:
		this.blink = false
	case BlinkOn:
		this.blink = true
	case Clear:
		this.digits = [4]byte{}
	default:
		this.simLog("ignoring command %d", cmd)
		return
	}
	this.simLog("Command %d", cmd)
	this.Render()
}

// Dump draws the digit buffer as ASCII art
func (this *Surface) Dump() string {
	//  -     -     -     -
	// | |   | |   | |   | |
	//  -     -     -     -
	// | |   | |   | |   | |
	//  -     -     -     -
	on := func(d byte, seg uint) bool { return d&(1<<seg) != 0 }
	line := "\n"
	for _, d := range this.digits {
		if on(d, SEG_TOP) {
			line += "  -   "
		} else {
			line += "      "
		}
	}
	line += "\n"
	for _, d := range this.digits {
		if on(d, SEG_TOPL) {
			line += " |"
		} else {
			line += "  "
		}
		if on(d, SEG_TOPR) {
			line += " |  "
		} else {
			line += "    "
		}
	}
	line += "\n"
	for _, d := range this.digits {
		if on(d, SEG_MID) {
			line += "  -   "
		} else {
			line += "      "
		}
	}
	line += "\n"
	for _, d := range this.digits {
		if on(d, SEG_BOTL) {
			line += " |"
		} else {
			line += "  "
		}
		if on(d, SEG_BOTR) {
			line += " |  "
		} else {
			line += "    "
		}
	}
	line += "\n"
	for _, d := range this.digits {
		if on(d, SEG_BOT) {
			line += "  -   "
		} else {
			line += "      "
		}
	}
	return line + "\n"
}

// Pair is the left and right surface of the device
type Pair struct {
	Left  *Surface
	Right *Surface
}

func NewPair(left, right drivers.I2C, simulated bool) *Pair {
	return &Pair{
		Left:  Open(Left, left, simulated),
		Right: Open(Right, right, simulated),
	}
}

func (p *Pair) Surface(id SurfaceID) *Surface {
	if id == Right {
		return p.Right
	}
	return p.Left
}

// Init initializes both surfaces, the first failure is returned
func (p *Pair) Init() error {
	errL := p.Left.Init()
	errR := p.Right.Init()
	if errL != nil {
		return errL
	}
	return errR
}

func (p *Pair) SetHoldTime(n int) {
	p.Left.SetHoldTime(n)
	p.Right.SetHoldTime(n)
}

func (p *Pair) DebugDump(on bool) {
	p.Left.DebugDump(on)
	p.Right.DebugDump(on)
}
