package demos

// TriangleMesh returns a single triangle in clip space: apex up, centered
// on the origin. Position only; the fragment shader supplies the color.
func TriangleMesh() *Mesh {
	return &Mesh{
		Vertices: []float32{
			0.0, 0.5, 0.0,
			-0.5, -0.5, 0.0,
			0.5, -0.5, 0.0,
		},
		Stride: 3,
	}
}

// ColoredTriangleMesh returns the same triangle with an interleaved RGB
// color per vertex: red at the apex, green and blue at the base corners.
// The rasterizer interpolates the colors across the face.
func ColoredTriangleMesh() *Mesh {
	return &Mesh{
		Vertices: []float32{
			0.0, 0.5, 0.0, 1, 0, 0,
			-0.5, -0.5, 0.0, 0, 1, 0,
			0.5, -0.5, 0.0, 0, 0, 1,
		},
		Stride:   6,
		HasColor: true,
	}
}
