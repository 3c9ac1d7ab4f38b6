package demos

// cubeFaceColors assigns one RGB color to each face, in the face order
// used by CubeMesh: front, back, top, bottom, right, left.
var cubeFaceColors = [6][3]float32{
	{1, 0, 0}, // front: red
	{0, 1, 0}, // back: green
	{0, 0, 1}, // top: blue
	{1, 1, 0}, // bottom: yellow
	{1, 0, 1}, // right: magenta
	{0, 1, 1}, // left: cyan
}

// cubeFaceCorners lists the four corners of each face of a unit cube
// centered on the origin, counter-clockwise when viewed from outside.
var cubeFaceCorners = [6][4][3]float32{
	// front (z = +1)
	{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
	// back (z = -1)
	{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}},
	// top (y = +1)
	{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},
	// bottom (y = -1)
	{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
	// right (x = +1)
	{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},
	// left (x = -1)
	{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
}

// CubeMesh returns a unit cube with one solid color per face. Each face
// contributes four vertices (colors are per-face, so corners cannot be
// shared across faces) and two triangles, giving 24 vertices and 36
// indices in total.
func CubeMesh() *Mesh {
	m := &Mesh{
		Vertices: make([]float32, 0, 6*4*6),
		Indices:  make([]uint16, 0, 6*6),
		Stride:   6,
		HasColor: true,
	}
	for face := 0; face < 6; face++ {
		base := uint16(face * 4)
		color := cubeFaceColors[face]
		for _, corner := range cubeFaceCorners[face] {
			m.Vertices = append(m.Vertices,
				corner[0], corner[1], corner[2],
				color[0], color[1], color[2])
		}
		// Two counter-clockwise triangles per face.
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base, base+2, base+3)
	}
	return m
}
