package demos

import "github.com/go-gl/mathgl/mgl32"

// Angular increments applied by one Spin.Step call, in radians. The three
// axes use different increments so the tumble never settles into an
// axis-aligned loop.
const (
	SpinStepX = 0.013
	SpinStepY = 0.009
	SpinStepZ = 0.007
)

// Camera constants for the cube demos: a 45 degree vertical field of view
// with the cube pushed back along -Z far enough to stay inside the frustum
// at every rotation.
const (
	cameraFOV  = 45.0
	cameraNear = 0.1
	cameraFar  = 100.0
	cameraDist = 6.0
)

// Spin holds the cube's rotation angles about the X, Y and Z axes.
// The zero value is a cube at rest, axis-aligned.
type Spin struct {
	X, Y, Z float32
}

// Step advances each rotation axis by its fixed angular increment.
// Called once per animation frame.
func (s *Spin) Step() {
	s.X += SpinStepX
	s.Y += SpinStepY
	s.Z += SpinStepZ
}

// Model returns the rotation matrix for the current angles, applied in
// X, Y, Z order.
func (s *Spin) Model() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(s.X).
		Mul4(mgl32.HomogRotate3DY(s.Y)).
		Mul4(mgl32.HomogRotate3DZ(s.Z))
}

// MVP returns the full model-view-projection matrix for a viewport of the
// given pixel size: perspective projection, camera pulled back cameraDist
// units, then the current rotation.
func (s *Spin) MVP(width, height int) mgl32.Mat4 {
	aspect := float32(width) / float32(height)
	proj := mgl32.Perspective(mgl32.DegToRad(cameraFOV), aspect, cameraNear, cameraFar)
	view := mgl32.Translate3D(0, 0, -cameraDist)
	return proj.Mul4(view).Mul4(s.Model())
}
