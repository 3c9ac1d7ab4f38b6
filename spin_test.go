package demos

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSpinStepFixedIncrements(t *testing.T) {
	var s Spin
	s.Step()

	if s.X != SpinStepX {
		t.Errorf("X after one step = %v, want %v", s.X, SpinStepX)
	}
	if s.Y != SpinStepY {
		t.Errorf("Y after one step = %v, want %v", s.Y, SpinStepY)
	}
	if s.Z != SpinStepZ {
		t.Errorf("Z after one step = %v, want %v", s.Z, SpinStepZ)
	}

	// Increments accumulate linearly.
	for i := 0; i < 9; i++ {
		s.Step()
	}
	if got, want := s.X, float32(10*SpinStepX); !closeTo(got, want) {
		t.Errorf("X after ten steps = %v, want %v", got, want)
	}
}

func TestSpinModelAtRestIsIdentity(t *testing.T) {
	var s Spin
	model := s.Model()
	if !model.ApproxEqual(mgl32.Ident4()) {
		t.Errorf("Model() at rest = %v, want identity", model)
	}
}

func TestSpinModelIsRotation(t *testing.T) {
	s := Spin{X: 0.5, Y: 1.2, Z: -0.3}
	model := s.Model()

	// A pure rotation preserves vector length.
	v := mgl32.Vec4{1, 2, 3, 0}
	rotated := model.Mul4x1(v)
	if !closeTo(rotated.Len(), v.Len()) {
		t.Errorf("rotation changed vector length: %v -> %v", v.Len(), rotated.Len())
	}

	// And has determinant 1.
	if det := model.Det(); !closeTo(det, 1) {
		t.Errorf("Det() = %v, want 1", det)
	}
}

func TestSpinMVPKeepsCubeVisible(t *testing.T) {
	// Every cube corner must project inside the clip volume at any
	// rotation; spot-check a few rotations at the corners.
	corners := CubeMesh()
	spins := []Spin{
		{},
		{X: 0.7},
		{Y: 2.1},
		{X: 1.1, Y: 0.9, Z: 2.4},
	}
	for _, s := range spins {
		mvp := s.MVP(640, 480)
		for v := 0; v < corners.VertexCount(); v++ {
			off := v * corners.Stride
			p := mgl32.Vec4{
				corners.Vertices[off],
				corners.Vertices[off+1],
				corners.Vertices[off+2],
				1,
			}
			clip := mvp.Mul4x1(p)
			if clip.W() <= 0 {
				t.Fatalf("spin %+v vertex %d behind the camera (w=%v)", s, v, clip.W())
			}
			for c := 0; c < 3; c++ {
				ndc := clip[c] / clip.W()
				if math.Abs(float64(ndc)) > 1 {
					t.Errorf("spin %+v vertex %d outside clip volume (ndc[%d]=%v)", s, v, c, ndc)
				}
			}
		}
	}
}

func closeTo(got, want float32) bool {
	return math.Abs(float64(got-want)) < 1e-5
}
