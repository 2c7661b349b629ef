package raster

import "math"

// ZBuffer holds one depth value per pixel. Larger values are nearer the
// viewer. It lives for a single render pass.
type ZBuffer struct {
	Width  int
	Height int
	Depth  []int32 // len = W*H, initialized to math.MinInt32
}

// NewZBuffer allocates a buffer whose every cell loses to any real depth.
func NewZBuffer(w, h int) *ZBuffer {
	depth := make([]int32, w*h)
	for i := range depth {
		depth[i] = math.MinInt32
	}
	return &ZBuffer{
		Width:  w,
		Height: h,
		Depth:  depth,
	}
}

// At returns the depth at (x, y). Coordinates are not checked.
func (zb *ZBuffer) At(x, y int) int32 {
	return zb.Depth[x+y*zb.Width]
}

// Set stores the depth at (x, y). Coordinates are not checked.
func (zb *ZBuffer) Set(x, y int, z int32) {
	zb.Depth[x+y*zb.Width] = z
}
