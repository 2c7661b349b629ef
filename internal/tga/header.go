package tga

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the encoded size of Header in bytes.
const HeaderSize = 18

// Data type codes.
const (
	TypeRawTrueColor = 2
	TypeRawGrayscale = 3
	TypeRLETrueColor = 10
	TypeRLEGrayscale = 11
)

// Image descriptor bits.
const (
	DescriptorRightToLeft = 0x10
	DescriptorTopToBottom = 0x20
)

var (
	developerAreaRef = [4]byte{}
	extensionAreaRef = [4]byte{}
	footer           = []byte("TRUEVISION-XFILE.\x00")
)

// Header is the fixed 18-byte TGA file header. Field order and widths match
// the file layout so it can be read and written with encoding/binary.
type Header struct {
	IDLength        uint8
	ColorMapType    uint8
	DataTypeCode    uint8
	ColorMapOrigin  int16
	ColorMapLength  int16
	ColorMapDepth   uint8
	XOrigin         int16
	YOrigin         int16
	Width           int16
	Height          int16
	BitsPerPixel    uint8
	ImageDescriptor uint8
}

// DecodeHeader reads the 18-byte header from r.
func DecodeHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Header{}, fmt.Errorf("tga: read header: %w", err)
	}
	return h, nil
}

func (h Header) write(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("tga: write header: %w", err)
	}
	return nil
}

// BytesPerPixel derives the pixel depth from BitsPerPixel.
func (h Header) BytesPerPixel() int {
	return int(h.BitsPerPixel >> 3)
}

// RLE reports whether the payload is run-length encoded.
func (h Header) RLE() bool {
	return h.DataTypeCode == TypeRLETrueColor || h.DataTypeCode == TypeRLEGrayscale
}

// Validate checks the fields the decoder depends on.
func (h Header) Validate() error {
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidFormat, h.Width, h.Height)
	}
	switch h.BytesPerPixel() {
	case Grayscale, RGB, RGBA:
	default:
		return fmt.Errorf("%w: %d bits per pixel", ErrInvalidFormat, h.BitsPerPixel)
	}
	switch h.DataTypeCode {
	case TypeRawTrueColor, TypeRawGrayscale, TypeRLETrueColor, TypeRLEGrayscale:
	default:
		return fmt.Errorf("%w: data type code %d", ErrInvalidFormat, h.DataTypeCode)
	}
	return nil
}

// colorMapBytes is the size of the optional color map that precedes the
// pixel data.
func (h Header) colorMapBytes() int {
	if h.ColorMapType == 0 || h.ColorMapLength <= 0 {
		return 0
	}
	return int(h.ColorMapLength) * ((int(h.ColorMapDepth) + 7) / 8)
}

func headerFor(m *Image, rle bool) Header {
	h := Header{
		BitsPerPixel:    uint8(m.bytespp << 3),
		Width:           int16(m.width),
		Height:          int16(m.height),
		ImageDescriptor: DescriptorTopToBottom,
	}
	switch {
	case m.bytespp == Grayscale && rle:
		h.DataTypeCode = TypeRLEGrayscale
	case m.bytespp == Grayscale:
		h.DataTypeCode = TypeRawGrayscale
	case rle:
		h.DataTypeCode = TypeRLETrueColor
	default:
		h.DataTypeCode = TypeRawTrueColor
	}
	return h
}
