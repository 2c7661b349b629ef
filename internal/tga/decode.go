package tga

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Decode reads a TGA stream and returns an image normalized to top-left
// origin, left-to-right order. Nothing is returned on error.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	h, err := DecodeHeader(br)
	if err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	// image ID and color map are not used
	if skip := int(h.IDLength) + h.colorMapBytes(); skip > 0 {
		if _, err := br.Discard(skip); err != nil {
			return nil, fmt.Errorf("tga: skip id/color map: %w", err)
		}
	}

	m, err := NewImage(int(h.Width), int(h.Height), h.BytesPerPixel())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if h.RLE() {
		err = decodeRLE(br, m)
	} else if _, err = io.ReadFull(br, m.data); err != nil {
		err = fmt.Errorf("tga: read pixel data: %w", err)
	}
	if err != nil {
		return nil, err
	}

	if h.ImageDescriptor&DescriptorTopToBottom == 0 {
		m.FlipVertically()
	}
	if h.ImageDescriptor&DescriptorRightToLeft != 0 {
		m.FlipHorizontally()
	}
	return m, nil
}

// decodeRLE fills m from a stream of raw and repeat packets.
func decodeRLE(r *bufio.Reader, m *Image) error {
	bpp := m.bytespp
	pixelCount := m.width * m.height
	currentPixel := 0
	currentByte := 0
	var color [RGBA]byte

	for currentPixel < pixelCount {
		chunkHeader, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("tga: read rle chunk header: %w", err)
		}

		if chunkHeader < 128 {
			n := int(chunkHeader) + 1
			if currentPixel+n > pixelCount {
				return fmt.Errorf("%w: too many pixels in rle stream", ErrInvalidFormat)
			}
			if _, err := io.ReadFull(r, m.data[currentByte:currentByte+n*bpp]); err != nil {
				return fmt.Errorf("tga: read rle raw packet: %w", err)
			}
			currentByte += n * bpp
			currentPixel += n
			continue
		}

		n := int(chunkHeader) - 127
		if currentPixel+n > pixelCount {
			return fmt.Errorf("%w: too many pixels in rle stream", ErrInvalidFormat)
		}
		if _, err := io.ReadFull(r, color[:bpp]); err != nil {
			return fmt.Errorf("tga: read rle repeat packet: %w", err)
		}
		for i := 0; i < n; i++ {
			copy(m.data[currentByte:currentByte+bpp], color[:bpp])
			currentByte += bpp
		}
		currentPixel += n
	}
	return nil
}

// ReadFile decodes the TGA file at path.
func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tga: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("tga: decode %s: %w", path, err)
	}
	return m, nil
}
