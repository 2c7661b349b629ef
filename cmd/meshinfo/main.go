package main

import (
	"fmt"
	"os"

	"tinyrender/internal/mesh"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshinfo file.obj ...")
		os.Exit(2)
	}
	status := 0
	for _, path := range os.Args[1:] {
		m, err := mesh.Load(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			status = 1
			continue
		}
		lo, hi := m.Bounds()
		tris, polys := 0, 0
		for _, f := range m.Faces {
			if len(f) == 3 {
				tris++
			} else {
				polys++
			}
		}
		fmt.Printf("%s\n", path)
		fmt.Printf("  Verts: %d, Faces: %d (%d triangles, %d polygons)\n", m.NumVerts(), m.NumFaces(), tris, polys)
		fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo.X, hi.X, lo.Y, hi.Y, lo.Z, hi.Z)
		fmt.Printf("  Size: %.3f x %.3f x %.3f\n", hi.X-lo.X, hi.Y-lo.Y, hi.Z-lo.Z)
	}
	os.Exit(status)
}
