package demos

import "testing"

func TestTriangleMesh(t *testing.T) {
	tests := []struct {
		name      string
		mesh      *Mesh
		wantVerts int
		wantColor bool
	}{
		{"flat", TriangleMesh(), 3, false},
		{"colored", ColoredTriangleMesh(), 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.VertexCount(); got != tt.wantVerts {
				t.Errorf("VertexCount() = %d, want %d", got, tt.wantVerts)
			}
			if tt.mesh.Indexed() {
				t.Error("triangle meshes must not be indexed")
			}
			if tt.mesh.HasColor != tt.wantColor {
				t.Errorf("HasColor = %v, want %v", tt.mesh.HasColor, tt.wantColor)
			}
			if len(tt.mesh.Vertices)%tt.mesh.Stride != 0 {
				t.Errorf("vertex data length %d is not a multiple of stride %d",
					len(tt.mesh.Vertices), tt.mesh.Stride)
			}
		})
	}
}

func TestTriangleMeshesShareGeometry(t *testing.T) {
	flat := TriangleMesh()
	colored := ColoredTriangleMesh()

	for v := 0; v < 3; v++ {
		for c := 0; c < 3; c++ {
			got := colored.Vertices[v*colored.Stride+c]
			want := flat.Vertices[v*flat.Stride+c]
			if got != want {
				t.Errorf("vertex %d position component %d = %v, want %v", v, c, got, want)
			}
		}
	}
}

func TestMeshVertexCountZeroStride(t *testing.T) {
	m := &Mesh{}
	if got := m.VertexCount(); got != 0 {
		t.Errorf("VertexCount() on empty mesh = %d, want 0", got)
	}
}
