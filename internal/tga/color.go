package tga

import "image/color"

// Supported pixel depths in bytes.
const (
	Grayscale = 1
	RGB       = 3
	RGBA      = 4
)

// Color is one pixel sample in TGA channel order (blue, green, red, alpha).
// BytesPP records how many leading channels are meaningful.
type Color struct {
	B, G, R, A uint8
	BytesPP    int
}

// NewRGBA returns a 4-channel color.
func NewRGBA(r, g, b, a uint8) Color {
	return Color{B: b, G: g, R: r, A: a, BytesPP: RGBA}
}

// NewRGB returns a 3-channel color.
func NewRGB(r, g, b uint8) Color {
	return Color{B: b, G: g, R: r, BytesPP: RGB}
}

// NewGray returns a single-channel color. The value lives in the blue slot.
func NewGray(v uint8) Color {
	return Color{B: v, BytesPP: Grayscale}
}

// colorFromBytes reads the first bpp channels of raw. Missing channels are 0.
func colorFromBytes(raw []byte, bpp int) Color {
	c := Color{B: raw[0], BytesPP: bpp}
	if bpp > 1 {
		c.G = raw[1]
	}
	if bpp > 2 {
		c.R = raw[2]
	}
	if bpp > 3 {
		c.A = raw[3]
	}
	return c
}

// put writes the first bpp channels of c into dst.
func (c Color) put(dst []byte, bpp int) {
	dst[0] = c.B
	if bpp > 1 {
		dst[1] = c.G
	}
	if bpp > 2 {
		dst[2] = c.R
	}
	if bpp > 3 {
		dst[3] = c.A
	}
}

// Equal compares the first c.BytesPP channels of both colors.
func (c Color) Equal(o Color) bool {
	if c.BytesPP != o.BytesPP {
		return false
	}
	if c.B != o.B {
		return false
	}
	if c.BytesPP > 1 && c.G != o.G {
		return false
	}
	if c.BytesPP > 2 && c.R != o.R {
		return false
	}
	if c.BytesPP > 3 && c.A != o.A {
		return false
	}
	return true
}

// NRGBA converts the sample to a non-premultiplied stdlib color.
// Grayscale expands to all three channels; samples without alpha are opaque.
func (c Color) NRGBA() color.NRGBA {
	switch c.BytesPP {
	case Grayscale:
		return color.NRGBA{R: c.B, G: c.B, B: c.B, A: 0xff}
	case RGB:
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	default:
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	}
}
