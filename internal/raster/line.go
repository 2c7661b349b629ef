package raster

import (
	"tinyrender/internal/mathutil"
	"tinyrender/internal/tga"
)

// Line draws an 8-connected segment from p0 to p1, both endpoints included,
// with integer Bresenham stepping. Every pixel is written through img.Set,
// so an endpoint outside the image yields tga.ErrOutOfBounds.
func Line(img *tga.Image, p0, p1 mathutil.Vec2i, c tga.Color) error {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y

	steep := false
	if abs(x0-x1) < abs(y0-y1) {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
		steep = true
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := y1 - y0
	derror2 := abs(dy) * 2
	ystep := 1
	if dy < 0 {
		ystep = -1
	}

	error2 := 0
	y := y0
	for x := x0; x <= x1; x++ {
		var err error
		if steep {
			err = img.Set(y, x, c)
		} else {
			err = img.Set(x, y, c)
		}
		if err != nil {
			return err
		}
		error2 += derror2
		if error2 > dx {
			y += ystep
			error2 -= dx * 2
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
