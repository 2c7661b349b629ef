package raster

import (
	"fmt"
	"math/rand"

	"tinyrender/internal/mathutil"
	"tinyrender/internal/mesh"
	"tinyrender/internal/tga"
)

// Mode selects how RenderMesh draws faces.
type Mode string

const (
	ModeWireframe Mode = "wireframe"
	ModeFlat      Mode = "flat"
	ModeRandom    Mode = "random"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeWireframe, ModeFlat, ModeRandom:
		return m, nil
	}
	return "", fmt.Errorf("raster: unknown mode %q", s)
}

// DepthRange is the span model z in [-1, 1] is mapped onto.
const DepthRange = 255

// Options controls RenderMesh.
type Options struct {
	Mode     Mode
	Light    Light
	Rotation mathutil.Mat3 // applied to model coordinates; zero value means identity
	Color    tga.Color     // wireframe color; zero value means white
	Seed     int64         // color source for ModeRandom
}

// RenderMesh draws every face of model into img. Model coordinates in
// [-1, 1] cover the whole image. The image is flipped vertically at the end
// so +y points up in the written file.
func RenderMesh(img *tga.Image, model *mesh.Model, opts Options) error {
	rot := opts.Rotation
	if rot == (mathutil.Mat3{}) {
		rot = mathutil.Mat3Identity()
	}
	light := opts.Light
	if light.Dir == (mathutil.Vec3f{}) {
		light = DefaultLight()
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeFlat
	}

	world := make([]mathutil.Vec3f, model.NumVerts())
	screen := make([]mathutil.Vec3i, model.NumVerts())
	for i, v := range model.Verts {
		world[i] = rot.MulVec3(v)
		screen[i] = toScreen(world[i], img.Width(), img.Height())
	}

	var err error
	switch mode {
	case ModeWireframe:
		err = renderWireframe(img, model, screen, opts.Color)
	case ModeFlat, ModeRandom:
		err = renderFilled(img, model, world, screen, light, mode, opts.Seed)
	default:
		err = fmt.Errorf("raster: unknown mode %q", mode)
	}
	if err != nil {
		return err
	}

	img.FlipVertically()
	return nil
}

// toScreen maps [-1, 1] model space onto pixel centers and [0, DepthRange].
func toScreen(v mathutil.Vec3f, w, h int) mathutil.Vec3i {
	return mathutil.Vec3i{
		X: mathutil.Round((v.X + 1) * float64(w-1) / 2),
		Y: mathutil.Round((v.Y + 1) * float64(h-1) / 2),
		Z: mathutil.Round((v.Z + 1) * DepthRange / 2),
	}
}

func renderWireframe(img *tga.Image, model *mesh.Model, screen []mathutil.Vec3i, c tga.Color) error {
	if c == (tga.Color{}) {
		c = tga.NewRGBA(255, 255, 255, 255)
	}
	for _, face := range model.Faces {
		if !faceOnScreen(img, face, screen) {
			continue
		}
		for j := range face {
			p0 := screen[face[j]].XY()
			p1 := screen[face[(j+1)%len(face)]].XY()
			if err := Line(img, p0, p1, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func faceOnScreen(img *tga.Image, face []int, screen []mathutil.Vec3i) bool {
	for _, idx := range face {
		if !img.InBounds(screen[idx].X, screen[idx].Y) {
			return false
		}
	}
	return true
}

// renderFilled fans every polygon into triangles and depth-tests them
// against a fresh ZBuffer.
func renderFilled(img *tga.Image, model *mesh.Model, world []mathutil.Vec3f, screen []mathutil.Vec3i,
	light Light, mode Mode, seed int64) error {
	zb := NewZBuffer(img.Width(), img.Height())
	rng := rand.New(rand.NewSource(seed))

	for _, face := range model.Faces {
		for k := 1; k+1 < len(face); k++ {
			i0, i1, i2 := face[0], face[k], face[k+1]

			var c tga.Color
			if mode == ModeRandom {
				c = tga.NewRGBA(uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255)
			} else {
				intensity := light.Intensity(FaceNormal(world[i0], world[i1], world[i2]))
				if intensity <= 0 {
					continue
				}
				v := Shade(intensity)
				c = tga.NewRGBA(v, v, v, 255)
			}

			if err := Triangle(img, zb, screen[i0], screen[i1], screen[i2], c); err != nil {
				return err
			}
		}
	}
	return nil
}
