package raster

import (
	"errors"
	"testing"

	"tinyrender/internal/mathutil"
	"tinyrender/internal/tga"
)

var white = tga.NewRGB(255, 255, 255)

func newImage(t *testing.T, w, h int) *tga.Image {
	t.Helper()
	img, err := tga.NewImage(w, h, tga.RGB)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

// lit returns the set of pixels that are not black.
func lit(t *testing.T, img *tga.Image) map[mathutil.Vec2i]bool {
	t.Helper()
	out := make(map[mathutil.Vec2i]bool)
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c, err := img.Get(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if c.R|c.G|c.B != 0 {
				out[mathutil.Vec2i{X: x, Y: y}] = true
			}
		}
	}
	return out
}

func TestLineSinglePoint(t *testing.T) {
	img := newImage(t, 5, 5)
	p := mathutil.Vec2i{X: 2, Y: 3}
	if err := Line(img, p, p, white); err != nil {
		t.Fatal(err)
	}
	got := lit(t, img)
	if len(got) != 1 || !got[p] {
		t.Errorf("lit = %v, want only %v", got, p)
	}
}

func TestLineShapes(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 mathutil.Vec2i
		want   []mathutil.Vec2i
	}{
		{
			name: "horizontal",
			p0:   mathutil.Vec2i{X: 0, Y: 1}, p1: mathutil.Vec2i{X: 3, Y: 1},
			want: []mathutil.Vec2i{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}},
		},
		{
			name: "vertical",
			p0:   mathutil.Vec2i{X: 2, Y: 4}, p1: mathutil.Vec2i{X: 2, Y: 1},
			want: []mathutil.Vec2i{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}, {X: 2, Y: 4}},
		},
		{
			name: "diagonal",
			p0:   mathutil.Vec2i{X: 0, Y: 0}, p1: mathutil.Vec2i{X: 3, Y: 3},
			want: []mathutil.Vec2i{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newImage(t, 5, 5)
			if err := Line(img, tt.p0, tt.p1, white); err != nil {
				t.Fatal(err)
			}
			got := lit(t, img)
			if len(got) != len(tt.want) {
				t.Fatalf("lit %d pixels, want %d: %v", len(got), len(tt.want), got)
			}
			for _, p := range tt.want {
				if !got[p] {
					t.Errorf("pixel %v not drawn", p)
				}
			}
		})
	}
}

func TestLineSteepHasOnePixelPerRow(t *testing.T) {
	img := newImage(t, 8, 8)
	if err := Line(img, mathutil.Vec2i{X: 1, Y: 0}, mathutil.Vec2i{X: 3, Y: 7}, white); err != nil {
		t.Fatal(err)
	}
	rows := make(map[int]int)
	for p := range lit(t, img) {
		rows[p.Y]++
	}
	for y := 0; y < 8; y++ {
		if rows[y] != 1 {
			t.Errorf("row %d has %d pixels, want 1", y, rows[y])
		}
	}
}

func TestLineSymmetric(t *testing.T) {
	pairs := [][2]mathutil.Vec2i{
		{{X: 0, Y: 0}, {X: 9, Y: 4}},
		{{X: 1, Y: 8}, {X: 7, Y: 0}},
		{{X: 9, Y: 9}, {X: 0, Y: 3}},
		{{X: 4, Y: 0}, {X: 5, Y: 9}},
	}
	for _, p := range pairs {
		a, b := newImage(t, 10, 10), newImage(t, 10, 10)
		if err := Line(a, p[0], p[1], white); err != nil {
			t.Fatal(err)
		}
		if err := Line(b, p[1], p[0], white); err != nil {
			t.Fatal(err)
		}
		ga, gb := lit(t, a), lit(t, b)
		if len(ga) != len(gb) {
			t.Errorf("%v: %d vs %d pixels", p, len(ga), len(gb))
			continue
		}
		for q := range ga {
			if !gb[q] {
				t.Errorf("%v: pixel %v only drawn in one direction", p, q)
			}
		}
	}
}

func TestLineOutOfBounds(t *testing.T) {
	img := newImage(t, 5, 5)
	err := Line(img, mathutil.Vec2i{X: 0, Y: 0}, mathutil.Vec2i{X: 9, Y: 0}, white)
	if !errors.Is(err, tga.ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
}
