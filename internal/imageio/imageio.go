// Package imageio moves pixel buffers between tga.Image and the standard
// image formats on disk.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	xtga "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"tinyrender/internal/tga"
)

// ErrUnsupportedFormat is returned for file extensions with no codec.
var ErrUnsupportedFormat = errors.New("imageio: unsupported format")

// Format names an on-disk image encoding.
type Format string

const (
	FormatTGA  Format = "tga"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatWebP Format = "webp"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseFormat accepts a format name or extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "tga":
		return FormatTGA, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Ext is the canonical file extension, dot included.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// SaveOptions controls Save.
type SaveOptions struct {
	RLE bool // run-length encode TGA output
}

// Load decodes the image at path. TGA files go through the native codec;
// variants it rejects (color-mapped, 15/16-bit) are retried with a generic
// TGA decoder.
func Load(path string) (*tga.Image, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	if format == FormatTGA {
		m, err := tga.ReadFile(path)
		if err == nil || !errors.Is(err, tga.ErrInvalidFormat) {
			return m, err
		}
		return decodeFile(path, xtga.Decode)
	}

	switch format {
	case FormatBMP:
		return decodeFile(path, bmp.Decode)
	case FormatWebP:
		return decodeFile(path, webp.Decode)
	default:
		return decodeFile(path, func(r io.Reader) (image.Image, error) {
			img, _, err := image.Decode(r)
			return img, err
		})
	}
}

func decodeFile(path string, decode func(io.Reader) (image.Image, error)) (*tga.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}
	return FromImage(img, depthOf(img))
}

// depthOf picks the smallest tga depth that holds img without loss.
func depthOf(img image.Image) int {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return tga.Grayscale
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return tga.RGB
	}
	return tga.RGBA
}

// Save encodes m into path using the format named by its extension.
func Save(path string, m *tga.Image, opts SaveOptions) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == FormatTGA {
		return tga.WriteFile(path, m, opts.RLE)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	if err := Encode(f, m, format); err != nil {
		f.Close()
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return f.Close()
}

// Encode writes m to w in a non-TGA format.
func Encode(w io.Writer, m *tga.Image, format Format) error {
	src := ToNRGBA(m)
	switch format {
	case FormatPNG:
		return png.Encode(w, src)
	case FormatBMP:
		return bmp.Encode(w, src)
	case FormatWebP:
		return nativewebp.Encode(w, src, nil)
	case FormatTGA:
		return tga.Encode(w, m, false)
	}
	return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, format)
}

// ToNRGBA converts m to a standard library image. Channels are copied as
// is, so fully transparent pixels keep their color.
func ToNRGBA(m *tga.Image) *image.NRGBA {
	dst := image.NewNRGBA(m.Bounds())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c, _ := m.Get(x, y)
			dst.SetNRGBA(x, y, c.NRGBA())
		}
	}
	return dst
}

// FromImage copies src into a new tga.Image of the given depth.
func FromImage(src image.Image, bpp int) (*tga.Image, error) {
	b := src.Bounds()
	m, err := tga.NewImage(b.Dx(), b.Dy(), bpp)
	if err != nil {
		return nil, fmt.Errorf("imageio: %w", err)
	}

	n, ok := src.(*image.NRGBA)
	if !ok {
		n = image.NewNRGBA(b)
		draw.Draw(n, b, src, b.Min, draw.Src)
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := n.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			var px tga.Color
			switch bpp {
			case tga.Grayscale:
				px = tga.NewGray(color.GrayModel.Convert(c).(color.Gray).Y)
			case tga.RGB:
				px = tga.NewRGB(c.R, c.G, c.B)
			default:
				px = tga.NewRGBA(c.R, c.G, c.B, c.A)
			}
			if err := m.Set(x, y, px); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Resample returns a w×h copy of m filtered with Catmull-Rom. Unlike
// tga.Image.Scale it blends neighbouring pixels.
func Resample(m *tga.Image, w, h int) (*tga.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("imageio: resample to %dx%d", w, h)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), m, m.Bounds(), draw.Src, nil)
	return FromImage(dst, m.BytesPerPixel())
}
