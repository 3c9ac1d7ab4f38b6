// Command cubeframes renders the rotating cube headless and writes each
// frame as a numbered PNG. It is the free-function twin of cmd/cube: the
// same cube and the same fixed per-frame rotation increments, but with no
// window; every frame goes through the offscreen readback path.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	demos "github.com/andreeich/wgpu-demos"
	"github.com/andreeich/wgpu-demos/internal/gpu"
	"github.com/gogpu/gputypes"
)

func main() {
	var (
		width   = flag.Int("width", 640, "frame width")
		height  = flag.Int("height", 480, "frame height")
		frames  = flag.Int("frames", 120, "number of frames to render")
		outDir  = flag.String("out", "frames", "output directory")
		verbose = flag.Bool("v", false, "enable log output")
	)
	flag.Parse()

	if *verbose {
		demos.SetLogger(slog.Default())
	}

	if err := run(*width, *height, *frames, *outDir); err != nil {
		log.Fatal(err)
	}
	log.Printf("%d cube frames saved to %s/", *frames, *outDir)
}

func run(width, height, frames int, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, err := gpu.NewContext()
	if err != nil {
		return fmt.Errorf("acquire GPU context: %w", err)
	}
	defer ctx.Close()

	renderer, err := newCubeRenderer(ctx, width, height)
	if err != nil {
		return fmt.Errorf("set up renderer: %w", err)
	}
	defer renderer.Close()

	var spin demos.Spin
	for i := 0; i < frames; i++ {
		img, err := renderFrame(renderer, &spin, width, height)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := saveFrame(outDir, i, img); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

func newCubeRenderer(ctx *gpu.Context, width, height int) (*gpu.Renderer, error) {
	return gpu.NewRenderer(ctx, gpu.Config{
		Width:       width,
		Height:      height,
		Mesh:        demos.CubeMesh(),
		Shader:      gpu.ShaderCube,
		ShaderLabel: "cube",
		MVP:         true,
		Depth:       true,
		ClearColor:  gputypes.Color{R: 0.05, G: 0.05, B: 0.08, A: 1},
	})
}

func renderFrame(renderer *gpu.Renderer, spin *demos.Spin, width, height int) (*image.RGBA, error) {
	spin.Step()
	renderer.SetMVP(spin.MVP(width, height))
	return renderer.Frame()
}

func saveFrame(dir string, index int, img image.Image) error {
	path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", index))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}
