package demos

// Mesh is a fixed set of vertex data ready for GPU upload. Vertices are
// interleaved float32 values; Stride gives the number of floats per vertex.
// Meshes in this package are built once at startup and never mutated.
type Mesh struct {
	// Vertices holds the interleaved per-vertex floats. The first three
	// floats of each vertex are the position; when HasColor is set they
	// are followed by three RGB floats.
	Vertices []float32

	// Indices holds triangle-list indices. Empty for non-indexed meshes.
	Indices []uint16

	// Stride is the number of floats per vertex.
	Stride int

	// HasColor reports whether a color attribute follows the position.
	HasColor bool
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	if m.Stride == 0 {
		return 0
	}
	return len(m.Vertices) / m.Stride
}

// IndexCount returns the number of indices, zero for non-indexed meshes.
func (m *Mesh) IndexCount() int { return len(m.Indices) }

// Indexed reports whether draw calls for this mesh use the index buffer.
func (m *Mesh) Indexed() bool { return len(m.Indices) > 0 }
