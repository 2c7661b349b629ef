package raster

import (
	"fmt"

	"tinyrender/internal/mathutil"
	"tinyrender/internal/tga"
)

// Triangle scan-fills v0 v1 v2 with a flat color. Each scanline spans the
// long edge v0→v2 and the active short edge; positions are interpolated in
// float64 and rounded with mathutil.Round. A pixel is written only when its
// depth is strictly greater than the stored one, so draw order never
// decides visibility.
//
// A triangle whose three vertices share one y is a no-op. Pixels that fall
// outside the image are skipped.
func Triangle(img *tga.Image, zb *ZBuffer, v0, v1, v2 mathutil.Vec3i, c tga.Color) error {
	if zb.Width != img.Width() || zb.Height != img.Height() {
		return fmt.Errorf("raster: zbuffer %dx%d does not match image %dx%d",
			zb.Width, zb.Height, img.Width(), img.Height())
	}
	if v0.Y == v1.Y && v0.Y == v2.Y {
		return nil
	}

	// sort by ascending y
	if v0.Y > v1.Y {
		v0, v1 = v1, v0
	}
	if v0.Y > v2.Y {
		v0, v2 = v2, v0
	}
	if v1.Y > v2.Y {
		v1, v2 = v2, v1
	}

	f0, f1, f2 := mathutil.ToFloat3(v0), mathutil.ToFloat3(v1), mathutil.ToFloat3(v2)
	totalHeight := v2.Y - v0.Y
	lowerHeight := v1.Y - v0.Y

	for i := 0; i < totalHeight; i++ {
		upper := i > lowerHeight || lowerHeight == 0
		segmentHeight := lowerHeight
		if upper {
			segmentHeight = v2.Y - v1.Y
		}

		alpha := float64(i) / float64(totalHeight)
		a := mathutil.Round3(mathutil.Lerp3(f0, f2, alpha))
		var b mathutil.Vec3i
		if upper {
			beta := float64(i-lowerHeight) / float64(segmentHeight)
			b = mathutil.Round3(mathutil.Lerp3(f1, f2, beta))
		} else {
			beta := float64(i) / float64(segmentHeight)
			b = mathutil.Round3(mathutil.Lerp3(f0, f1, beta))
		}
		if a.X > b.X {
			a, b = b, a
		}

		y := v0.Y + i
		if y < 0 || y >= img.Height() {
			continue
		}
		fa, fb := mathutil.ToFloat3(a), mathutil.ToFloat3(b)
		for x := a.X; x < b.X; x++ {
			if x < 0 || x >= img.Width() {
				continue
			}
			phi := 1.0
			if b.X != a.X {
				phi = float64(x-a.X) / float64(b.X-a.X)
			}
			z := int32(mathutil.Round(mathutil.Lerp3(fa, fb, phi).Z))
			if z <= zb.At(x, y) {
				continue
			}
			zb.Set(x, y, z)
			if err := img.Set(x, y, c); err != nil {
				return err
			}
		}
	}
	return nil
}
