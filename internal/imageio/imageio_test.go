package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"tinyrender/internal/tga"
)

func sampleImage(t *testing.T, bpp int) *tga.Image {
	t.Helper()
	m, err := tga.NewImage(7, 5, bpp)
	if err != nil {
		t.Fatal(err)
	}
	rand.New(rand.NewSource(3)).Read(m.Pix())
	return m
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"tga": FormatTGA, "PNG": FormatPNG, "jpg": FormatJPEG, "jpeg": FormatJPEG,
		"bmp": FormatBMP, "WebP": FormatWebP,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("gif: err = %v, want ErrUnsupportedFormat", err)
	}
	if got := FormatJPEG.Ext(); got != ".jpg" {
		t.Errorf("FormatJPEG.Ext() = %q", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		ext string
		bpp int
	}{
		{".tga", tga.RGBA},
		{".tga", tga.Grayscale},
		{".png", tga.RGB},
		{".png", tga.RGBA},
		{".bmp", tga.RGB},
		{".webp", tga.RGB},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			src := sampleImage(t, tt.bpp)
			path := filepath.Join(dir, "img"+tt.ext)
			if err := Save(path, src, SaveOptions{RLE: true}); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if got.BytesPerPixel() != tt.bpp {
				t.Fatalf("depth = %d, want %d", got.BytesPerPixel(), tt.bpp)
			}
			if !bytes.Equal(got.Pix(), src.Pix()) {
				t.Error("pixels changed across save and load")
			}
		})
	}
}

func TestSaveUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	if err := Save(path, sampleImage(t, tga.RGB), SaveOptions{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadColorMappedFallback(t *testing.T) {
	// 2x1 color-mapped image: palette of two BGR entries, 8-bit indices
	data := []byte{
		0, 1, 1, // id length, color map type, data type
		0, 0, 2, 0, 24, // color map origin, length, depth
		0, 0, 0, 0, // x, y origin
		2, 0, 1, 0, // width, height
		8, 0x20, // bits per pixel, descriptor
		0, 0, 255, // palette[0] red
		255, 0, 0, // palette[1] blue
		1, 0,
	}
	path := filepath.Join(t.TempDir(), "mapped.tga")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := tga.ReadFile(path); !errors.Is(err, tga.ErrInvalidFormat) {
		t.Fatalf("native decoder err = %v, want ErrInvalidFormat", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	left, _ := m.Get(0, 0)
	right, _ := m.Get(1, 0)
	if left.R != 0 || left.B != 255 || right.R != 255 || right.B != 0 {
		t.Errorf("pixels = %+v %+v, want blue then red", left, right)
	}
}

func TestToNRGBA(t *testing.T) {
	m, err := tga.NewImage(2, 1, tga.RGB)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Set(1, 0, tga.NewRGB(10, 20, 30)); err != nil {
		t.Fatal(err)
	}
	n := ToNRGBA(m)
	if got, want := n.NRGBAAt(1, 0), (color.NRGBA{R: 10, G: 20, B: 30, A: 255}); got != want {
		t.Errorf("NRGBAAt(1,0) = %v, want %v", got, want)
	}
}

func TestFromImageGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 1))
	src.Pix = []byte{0, 128, 255}
	m, err := FromImage(src, tga.Grayscale)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Pix(), src.Pix) {
		t.Errorf("Pix = %v, want %v", m.Pix(), src.Pix)
	}
	if depthOf(src) != tga.Grayscale {
		t.Error("gray source not detected")
	}
}

func TestResample(t *testing.T) {
	m, err := tga.NewImage(4, 4, tga.RGB)
	if err != nil {
		t.Fatal(err)
	}
	for i := range m.Pix() {
		m.Pix()[i] = 200
	}
	out, err := Resample(m, 9, 3)
	if err != nil {
		t.Fatal(err)
	}
	if out.Width() != 9 || out.Height() != 3 || out.BytesPerPixel() != tga.RGB {
		t.Fatalf("got %dx%d depth %d", out.Width(), out.Height(), out.BytesPerPixel())
	}
	for i, b := range out.Pix() {
		if b != 200 {
			t.Fatalf("byte %d = %d, want 200 for a flat image", i, b)
		}
	}
	if _, err := Resample(m, 0, 3); err == nil {
		t.Error("Resample to empty size succeeded")
	}
}
