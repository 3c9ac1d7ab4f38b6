// Package gpu wraps the gogpu/wgpu HAL for the demo binaries.
//
// It covers the short fixed sequence every demo repeats: acquire a GPU
// context (Context), compile a WGSL shader pair (CompileShader), upload
// vertex/color/index data into GPU buffers, bind vertex attributes through
// a render pipeline, and issue one draw call per frame (Renderer.Frame or
// Renderer.FrameToSurface).
//
// The package uses wgpu's Vulkan backend via pure Go (no CGO). Rendering
// is either offscreen with CPU readback for the PNG-writing demos, or
// straight to a gogpu window surface view for the windowed cube.
package gpu
