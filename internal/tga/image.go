package tga

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrInvalidFormat reports a malformed header or pixel stream.
	ErrInvalidFormat = errors.New("tga: invalid format")

	// ErrOutOfBounds reports a pixel access outside the image.
	ErrOutOfBounds = errors.New("tga: coordinates out of bounds")
)

// Image is a W×H grid of bpp-byte pixels stored row-major from the top-left
// corner.
type Image struct {
	width   int
	height  int
	bytespp int
	data    []byte // len = width*height*bytespp
}

// NewImage allocates a zero-filled image.
func NewImage(w, h, bpp int) (*Image, error) {
	if err := checkGeometry(w, h, bpp); err != nil {
		return nil, err
	}
	return &Image{
		width:   w,
		height:  h,
		bytespp: bpp,
		data:    make([]byte, w*h*bpp),
	}, nil
}

func checkGeometry(w, h, bpp int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("tga: invalid dimensions %dx%d", w, h)
	}
	if bpp != Grayscale && bpp != RGB && bpp != RGBA {
		return fmt.Errorf("tga: unsupported bytes per pixel %d", bpp)
	}
	return nil
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// BytesPerPixel returns 1, 3 or 4.
func (m *Image) BytesPerPixel() int { return m.bytespp }

// Pix returns the raw pixel bytes. The slice aliases the image.
func (m *Image) Pix() []byte { return m.data }

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	data := make([]byte, len(m.data))
	copy(data, m.data)
	return &Image{width: m.width, height: m.height, bytespp: m.bytespp, data: data}
}

// InBounds reports whether (x, y) addresses a pixel.
func (m *Image) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

func (m *Image) offset(x, y int) int {
	return (x + y*m.width) * m.bytespp
}

// Get returns the pixel at (x, y).
func (m *Image) Get(x, y int) (Color, error) {
	if !m.InBounds(x, y) {
		return Color{}, fmt.Errorf("%w: get (%d,%d) in %dx%d", ErrOutOfBounds, x, y, m.width, m.height)
	}
	i := m.offset(x, y)
	return colorFromBytes(m.data[i:i+m.bytespp], m.bytespp), nil
}

// Set overwrites the pixel at (x, y) with the first BytesPerPixel channels
// of c. Channels beyond the image depth are ignored.
func (m *Image) Set(x, y int, c Color) error {
	if !m.InBounds(x, y) {
		return fmt.Errorf("%w: set (%d,%d) in %dx%d", ErrOutOfBounds, x, y, m.width, m.height)
	}
	i := m.offset(x, y)
	c.put(m.data[i:i+m.bytespp], m.bytespp)
	return nil
}

// FlipVertically swaps scanline i with scanline H-1-i.
func (m *Image) FlipVertically() {
	lineBytes := m.width * m.bytespp
	line := make([]byte, lineBytes)
	for j := 0; j < m.height/2; j++ {
		l1 := m.data[j*lineBytes : (j+1)*lineBytes]
		l2 := m.data[(m.height-1-j)*lineBytes : (m.height-j)*lineBytes]
		copy(line, l1)
		copy(l1, l2)
		copy(l2, line)
	}
}

// FlipHorizontally swaps column i with column W-1-i.
func (m *Image) FlipHorizontally() {
	bpp := m.bytespp
	var tmp [RGBA]byte
	for j := 0; j < m.height; j++ {
		for i := 0; i < m.width/2; i++ {
			p1 := m.data[m.offset(i, j) : m.offset(i, j)+bpp]
			p2 := m.data[m.offset(m.width-1-i, j) : m.offset(m.width-1-i, j)+bpp]
			copy(tmp[:bpp], p1)
			copy(p1, p2)
			copy(p2, tmp[:bpp])
		}
	}
}

// Scale resamples the image to w×h with nearest-neighbour selection, using
// integer error accumulators on each axis instead of floating point.
func (m *Image) Scale(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("tga: invalid scale target %dx%d", w, h)
	}
	bpp := m.bytespp
	newData := make([]byte, w*h*bpp)
	nLineBytes := w * bpp
	oLineBytes := m.width * bpp

	nScanline, oScanline := 0, 0
	erry := 0
	for j := 0; j < m.height; j++ {
		errx := 0
		nx := -bpp
		ox := -bpp
		for i := 0; i < m.width; i++ {
			ox += bpp
			errx += w
			for errx >= m.width {
				errx -= m.width
				nx += bpp
				copy(newData[nScanline+nx:nScanline+nx+bpp], m.data[oScanline+ox:oScanline+ox+bpp])
			}
		}
		erry += h
		oScanline += oLineBytes
		for erry >= m.height {
			// another destination row follows from the same source row
			if erry >= m.height<<1 {
				copy(newData[nScanline+nLineBytes:nScanline+2*nLineBytes], newData[nScanline:nScanline+nLineBytes])
			}
			erry -= m.height
			nScanline += nLineBytes
		}
	}

	m.data = newData
	m.width = w
	m.height = h
	return nil
}

// Clear zero-fills every pixel.
func (m *Image) Clear() {
	clear(m.data)
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	c, err := m.Get(x, y)
	if err != nil {
		return color.NRGBA{}
	}
	return c.NRGBA()
}
