// Command tricolor draws a triangle with a per-vertex color attribute:
// red, green and blue corners interpolated across the face by the
// rasterizer. Same setup sequence as cmd/triangle, plus the interleaved
// color attribute.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	demos "github.com/andreeich/wgpu-demos"
	"github.com/andreeich/wgpu-demos/internal/gpu"
	"github.com/gogpu/gputypes"
)

func main() {
	var (
		width   = flag.Int("width", 640, "image width")
		height  = flag.Int("height", 480, "image height")
		output  = flag.String("output", "tricolor.png", "output file")
		verbose = flag.Bool("v", false, "enable log output")
	)
	flag.Parse()

	if *verbose {
		demos.SetLogger(slog.Default())
	}

	ctx, err := gpu.NewContext()
	if err != nil {
		log.Fatalf("Failed to acquire GPU context: %v", err)
	}
	defer ctx.Close()

	renderer, err := gpu.NewRenderer(ctx, gpu.Config{
		Width:       *width,
		Height:      *height,
		Mesh:        demos.ColoredTriangleMesh(),
		Shader:      gpu.ShaderVertexColor,
		ShaderLabel: "vertex_color",
		ClearColor:  gputypes.Color{R: 0, G: 0, B: 0, A: 1},
	})
	if err != nil {
		log.Fatalf("Failed to set up renderer: %v", err)
	}
	defer renderer.Close()

	img, err := renderer.Frame()
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Colored triangle saved to %s (%dx%d)", *output, *width, *height)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}
