package tga

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
)

// maxChunkLength is the pixel cap of one RLE packet.
const maxChunkLength = 128

// Encode writes m as a TGA stream with a top-left origin. When rle is set
// the payload is run-length encoded.
func Encode(w io.Writer, m *Image, rle bool) error {
	if m.width > math.MaxInt16 || m.height > math.MaxInt16 {
		return fmt.Errorf("tga: image %dx%d exceeds format limits", m.width, m.height)
	}

	bw := bufio.NewWriter(w)
	if err := headerFor(m, rle).write(bw); err != nil {
		return err
	}

	var err error
	if rle {
		err = encodeRLE(bw, m)
	} else {
		_, err = bw.Write(m.data)
	}
	if err != nil {
		return fmt.Errorf("tga: write pixel data: %w", err)
	}

	for _, b := range [][]byte{developerAreaRef[:], extensionAreaRef[:], footer} {
		if _, err := bw.Write(b); err != nil {
			return fmt.Errorf("tga: write footer: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("tga: flush: %w", err)
	}
	return nil
}

// encodeRLE emits packets of at most 128 pixels. A raw packet grows while
// neighbours keep differing and gives back its last pixel as soon as two
// equal neighbours appear; a repeat packet grows while neighbours are equal.
func encodeRLE(w *bufio.Writer, m *Image) error {
	bpp := m.bytespp
	nPixels := m.width * m.height
	curPix := 0

	for curPix < nPixels {
		chunkStart := curPix * bpp
		curByte := chunkStart
		runLength := 1
		raw := true

		for curPix+runLength < nPixels && runLength < maxChunkLength {
			succEq := bytes.Equal(m.data[curByte:curByte+bpp], m.data[curByte+bpp:curByte+2*bpp])
			curByte += bpp
			if runLength == 1 {
				raw = !succEq
			}
			if raw && succEq {
				runLength--
				break
			}
			if !raw && !succEq {
				break
			}
			runLength++
		}
		curPix += runLength

		if raw {
			if err := w.WriteByte(byte(runLength - 1)); err != nil {
				return err
			}
			if _, err := w.Write(m.data[chunkStart : chunkStart+runLength*bpp]); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteByte(byte(runLength + 127)); err != nil {
			return err
		}
		if _, err := w.Write(m.data[chunkStart : chunkStart+bpp]); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile encodes m into the file at path, replacing any existing file.
func WriteFile(path string, m *Image, rle bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tga: create %s: %w", path, err)
	}
	if err := Encode(f, m, rle); err != nil {
		f.Close()
		return fmt.Errorf("tga: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("tga: close %s: %w", path, err)
	}
	return nil
}
