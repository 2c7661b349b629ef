package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tinyrender/internal/mathutil"
)

// Parse reads a Wavefront OBJ stream. Only "v" and "f" records are used;
// everything else is ignored.
func Parse(r io.Reader) (*Model, error) {
	m := &Model{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("mesh: line %d: vertex needs 3 coordinates", lineNo)
			}
			var xyz [3]float64
			for k := 0; k < 3; k++ {
				f, err := strconv.ParseFloat(fields[1+k], 64)
				if err != nil {
					return nil, fmt.Errorf("mesh: line %d: %w", lineNo, err)
				}
				xyz[k] = f
			}
			m.Verts = append(m.Verts, mathutil.Vec3f{X: xyz[0], Y: xyz[1], Z: xyz[2]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("mesh: line %d: face needs at least 3 vertices", lineNo)
			}
			face := make([]int, 0, len(fields)-1)
			for _, part := range fields[1:] {
				idx, err := parseIndex(part, len(m.Verts))
				if err != nil {
					return nil, fmt.Errorf("mesh: line %d: %w", lineNo, err)
				}
				face = append(face, idx)
			}
			m.Faces = append(m.Faces, face)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: read: %w", err)
	}

	for i, face := range m.Faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(m.Verts) {
				return nil, fmt.Errorf("mesh: face %d: vertex index %d out of range (%d vertices)", i, idx, len(m.Verts))
			}
		}
	}
	return m, nil
}

// parseIndex converts the vertex part of "v", "v/vt" or "v/vt/vn" to a
// 0-based index. Negative indices count back from the last vertex seen.
func parseIndex(part string, nverts int) (int, error) {
	head, _, _ := strings.Cut(part, "/")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", part)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		return nverts + n, nil
	default:
		return 0, fmt.Errorf("face index 0 in %q", part)
	}
}

// Load parses the OBJ file at path.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("mesh: parse %s: %w", path, err)
	}
	return m, nil
}
