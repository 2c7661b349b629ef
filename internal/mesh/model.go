package mesh

import (
	"math"

	"tinyrender/internal/mathutil"
)

// Model is a polygon mesh: vertex positions and faces that index into them.
type Model struct {
	Verts []mathutil.Vec3f
	Faces [][]int // 0-based vertex indices, at least 3 per face
}

// NumVerts returns the vertex count.
func (m *Model) NumVerts() int { return len(m.Verts) }

// NumFaces returns the face count.
func (m *Model) NumFaces() int { return len(m.Faces) }

// Vert returns vertex i.
func (m *Model) Vert(i int) mathutil.Vec3f { return m.Verts[i] }

// Face returns the vertex indices of face i.
func (m *Model) Face(i int) []int { return m.Faces[i] }

// Bounds returns the component-wise minimum and maximum over all vertices.
// An empty model returns two zero vectors.
func (m *Model) Bounds() (lo, hi mathutil.Vec3f) {
	if len(m.Verts) == 0 {
		return
	}
	lo = mathutil.Vec3f{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = mathutil.Vec3f{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range m.Verts {
		lo.X, hi.X = math.Min(lo.X, v.X), math.Max(hi.X, v.X)
		lo.Y, hi.Y = math.Min(lo.Y, v.Y), math.Max(hi.Y, v.Y)
		lo.Z, hi.Z = math.Min(lo.Z, v.Z), math.Max(hi.Z, v.Z)
	}
	return lo, hi
}

// Fit returns a copy centered on the origin and uniformly scaled so the
// largest extent spans [-1, 1]. Faces are shared with m.
func (m *Model) Fit() *Model {
	lo, hi := m.Bounds()
	center := lo.Add(hi).Scale(0.5)
	span := math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))
	if span < 1e-9 {
		span = 1e-9
	}
	scale := 2 / span

	verts := make([]mathutil.Vec3f, len(m.Verts))
	for i, v := range m.Verts {
		verts[i] = v.Sub(center).Scale(scale)
	}
	return &Model{Verts: verts, Faces: m.Faces}
}
