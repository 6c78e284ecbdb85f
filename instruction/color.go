package instruction

import (
	"image/color"
	"unsafe"
)

// Color is a color table entry. The alpha channel is stored but always
// treated as opaque.
type Color struct {
	R, G, B, A uint8
}

// Color must pack to exactly four bytes.
var (
	_ [unsafe.Sizeof(Color{}) - 4]struct{}
	_ [4 - unsafe.Sizeof(Color{})]struct{}
)

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

func expand(v uint8) uint8 {
	return uint8(int(v) * 0xff / 0x0f)
}

// DecodeColor unpacks a color from its two byte wire form:
//
//	byte 0   byte 1
//	xxrrrrgg xxggbbbb
//
// Each 4-bit channel is scaled to 8 bits as v*255/15.
func DecodeColor(b [2]byte) Color {
	r := b[0] & 0x3c >> 2
	g := b[0]&0x03<<2 | b[1]&0x30>>4
	bl := b[1] & 0x0f

	return Color{
		R: expand(r),
		G: expand(g),
		B: expand(bl),
	}
}

// EncodeColor packs a color into its two byte wire form. Channels are
// reduced to 4 bits so only colors produced by DecodeColor survive a round
// trip unchanged.
func EncodeColor(c Color) [2]byte {
	r := c.R / 17
	g := c.G / 17
	b := c.B / 17

	return [2]byte{
		r<<2 | g>>2,
		g&0x03<<4 | b,
	}
}
