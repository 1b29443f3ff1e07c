package cdm4101

// positions of segments within a glyph byte
const SEG_TOPR = 0
const SEG_BOTR = 1
const SEG_BOT = 2
const SEG_BOTL = 3
const SEG_MID = 4
const SEG_TOPL = 5
const SEG_TOP = 6

// table offsets for the non-numeral glyphs
const (
	glyphDash       = 10
	glyphUnderscore = 11
	glyphSpace      = 12
	glyphAlpha      = 13
	glyphAsterisk   = 39
)

// Blank is the glyph with no segments lit
const Blank byte = 0x00

var glyphs = [40]byte{
	0x6F, // 0
	0x03, // 1
	0x5D, // 2
	0x57, // 3
	0x33, // 4
	0x76, // 5
	0x7E, // 6
	0x43, // 7
	0x7F, // 8
	0x77, // 9
	0x10, // -
	0x04, // _
	0x00, // space
	0x7B, // A
	0x3E, // b
	0x6C, // C
	0x1F, // d
	0x7C, // E
	0x78, // F
	0x6E, // G
	0x3A, // H
	0x03, // I
	0x0F, // J
	0x3B, // K
	0x2C, // L
	0x5A, // M
	0x1A, // n
	0x6F, // O
	0x79, // P
	0x73, // Q
	0x18, // r
	0x76, // S
	0x3C, // t
	0x0E, // u
	0x2F, // V
	0x35, // W
	0x2B, // X
	0x37, // y
	0x5D, // Z
	0x01, // * (also used as a degree mark)
}

func glyphIndex(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return glyphAlpha + int(c-'a')
	case c >= 'A' && c <= 'Z':
		return glyphAlpha + int(c-'A')
	case c == '-':
		return glyphDash
	case c == '_':
		return glyphUnderscore
	case c == '*':
		return glyphAsterisk
	}
	return glyphSpace
}

// Encode maps a character to its segment pattern. Anything without a glyph
// comes back blank.
func Encode(c byte) byte {
	return glyphs[glyphIndex(c)]
}

// Text encodes up to four characters left to right, stopping at a NUL
func Text(s string) [4]byte {
	var d [4]byte
	for i := 0; i < len(s) && i < len(d); i++ {
		if s[i] == 0 {
			break
		}
		d[i] = Encode(s[i])
	}
	return d
}

// Pack folds four 7-bit glyphs into the controller's 5 byte data load.
func Pack(d [4]byte) [5]byte {
	return [5]byte{
		d[0] >> 4,
		d[0]<<4 | d[1]>>3,
		d[1]<<5 | d[2]>>2,
		d[2]<<6 | d[3]>>1,
		d[3] << 7,
	}
}
