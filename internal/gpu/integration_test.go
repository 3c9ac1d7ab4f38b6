package gpu

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"

	demos "github.com/andreeich/wgpu-demos"
)

// newTestContext opens a real device or skips the test when no GPU is
// present, so these tests pass on headless CI.
func newTestContext(t *testing.T) *Context {
	t.Helper()
	ctx, err := NewContext()
	if err != nil {
		t.Skipf("GPU not available: %v", err)
	}
	t.Cleanup(ctx.Close)
	return ctx
}

func TestContextReportsAdapter(t *testing.T) {
	ctx := newTestContext(t)
	if ctx.Device() == nil || ctx.Queue() == nil {
		t.Fatal("context has nil device or queue")
	}
	if ctx.AdapterName() == "" {
		t.Error("adapter name is empty")
	}
}

func TestContextCloseIsIdempotent(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Skipf("GPU not available: %v", err)
	}
	ctx.Close()
	ctx.Close()
	if _, err := ctx.CompileShader("after_close", ShaderFlat); err == nil {
		t.Error("CompileShader succeeded on closed context")
	}
}

func TestSharedContextRejectsBadProvider(t *testing.T) {
	if _, err := NewSharedContext(struct{}{}); err == nil {
		t.Error("NewSharedContext accepted a provider without a HAL device")
	}
}

func TestCompileShaderRejectsInvalidWGSL(t *testing.T) {
	ctx := newTestContext(t)
	if _, err := ctx.CompileShader("broken", "fn vs_main( {"); err == nil {
		t.Error("CompileShader accepted invalid WGSL")
	}
}

func TestRenderTriangleFrame(t *testing.T) {
	ctx := newTestContext(t)
	r, err := NewRenderer(ctx, Config{
		Width:       64,
		Height:      64,
		Mesh:        demos.TriangleMesh(),
		Shader:      ShaderFlat,
		ShaderLabel: "triangle",
		ClearColor:  gputypes.Color{R: 0, G: 0, B: 0, A: 1},
	})
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}
	defer r.Close()

	img, err := r.Frame()
	if err != nil {
		t.Fatalf("Frame() failed: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 64, 64) {
		t.Fatalf("image bounds = %v", got)
	}

	// The top-left corner is outside the triangle: clear color.
	if r8, g8, b8, _ := img.At(0, 0).RGBA(); r8 != 0 || g8 != 0 || b8 != 0 {
		t.Errorf("corner pixel = %d,%d,%d, want black clear", r8, g8, b8)
	}
	// The center is inside the triangle: the flat shader's white.
	if r8, _, _, _ := img.At(32, 32).RGBA(); r8 != 0xffff {
		t.Errorf("center pixel red = %d, want full white", r8)
	}
}

func TestRenderCubeFrames(t *testing.T) {
	ctx := newTestContext(t)
	r, err := NewRenderer(ctx, Config{
		Width:       64,
		Height:      64,
		Mesh:        demos.CubeMesh(),
		Shader:      ShaderCube,
		ShaderLabel: "cube",
		MVP:         true,
		Depth:       true,
		ClearColor:  gputypes.Color{R: 0, G: 0, B: 0, A: 1},
	})
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}
	defer r.Close()

	var spin demos.Spin
	for i := 0; i < 3; i++ {
		spin.Step()
		r.SetMVP(spin.MVP(64, 64))
		img, err := r.Frame()
		if err != nil {
			t.Fatalf("frame %d failed: %v", i, err)
		}
		// The cube covers the center of the view at every rotation.
		if r8, g8, b8, _ := img.At(32, 32).RGBA(); r8 == 0 && g8 == 0 && b8 == 0 {
			t.Errorf("frame %d: center pixel is clear color, cube not drawn", i)
		}
	}
}

func TestFrameToSurfaceWithoutTarget(t *testing.T) {
	ctx := newTestContext(t)
	r, err := NewRenderer(ctx, Config{
		Width:       8,
		Height:      8,
		Mesh:        demos.TriangleMesh(),
		Shader:      ShaderFlat,
		ShaderLabel: "triangle",
	})
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}
	defer r.Close()
	if err := r.FrameToSurface(); err == nil {
		t.Error("FrameToSurface succeeded without a surface target")
	}
}
