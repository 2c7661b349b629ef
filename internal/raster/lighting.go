package raster

import "tinyrender/internal/mathutil"

// Light is a single directional light used for flat shading.
type Light struct {
	Dir mathutil.Vec3f // unit vector the light travels along
}

// DefaultLight shines straight into the screen.
func DefaultLight() Light {
	return Light{Dir: mathutil.Vec3f{X: 0, Y: 0, Z: -1}}
}

// FaceNormal returns the unit normal (w2-w0)×(w1-w0) of a triangle given in
// world coordinates.
func FaceNormal(w0, w1, w2 mathutil.Vec3f) mathutil.Vec3f {
	return w2.Sub(w0).Cross(w1.Sub(w0)).Normalize()
}

// Intensity is the Lambert term n·dir. Values ≤ 0 mean the face points
// away from the light.
func (l Light) Intensity(normal mathutil.Vec3f) float64 {
	return normal.Dot(l.Dir)
}

// Shade scales a gray level by intensity, clamped to [0, 255].
func Shade(intensity float64) uint8 {
	return clamp255(intensity * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
