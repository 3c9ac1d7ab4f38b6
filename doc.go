// Package demos holds the fixed geometry and animation state shared by the
// wgpu-demos binaries: a flat triangle, a per-vertex colored triangle, and a
// rotating cube.
//
// The package is deliberately small. It knows nothing about the GPU: meshes
// are plain float32/uint16 slices ready for upload, and Spin is the one piece
// of per-frame state (three rotation angles advanced by a fixed increment).
// All GPU plumbing lives in internal/gpu; the demo binaries under cmd/ wire
// the two together.
//
// Demos:
//
//	cmd/triangle    static single-color triangle, rendered to a PNG
//	cmd/tricolor    triangle with a per-vertex color attribute
//	cmd/cube        rotating cube in a gogpu window
//	cmd/cubeframes  rotating cube rendered headless to numbered PNG frames
package demos
