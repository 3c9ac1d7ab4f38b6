// Command cube shows a rotating colored cube in a gogpu window. The cube
// tumbles about all three axes, advancing each axis by a fixed angular
// increment per animation frame. Space pauses and resumes the animation.
//
// The renderer shares the window's GPU device and draws straight to the
// window's surface view; no readback occurs.
package main

import (
	"flag"
	"log"
	"log/slog"

	demos "github.com/andreeich/wgpu-demos"
	"github.com/andreeich/wgpu-demos/internal/gpu"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func main() {
	var (
		width   = flag.Int("width", 800, "window width")
		height  = flag.Int("height", 600, "window height")
		verbose = flag.Bool("v", false, "enable log output")
	)
	flag.Parse()

	if *verbose {
		demos.SetLogger(slog.Default())
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("Rotating Cube").
		WithSize(*width, *height).
		WithContinuousRender(false)) // Render at VSync only while the token is alive.

	var (
		ctx       *gpu.Context
		renderer  *gpu.Renderer
		spin      demos.Spin
		animToken *gogpu.AnimationToken
		paused    bool
	)

	app.OnDraw(func(dc *gogpu.Context) {
		if renderer == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			var err error
			ctx, err = gpu.NewSharedContext(provider)
			if err != nil {
				log.Fatalf("Failed to share the window's GPU device: %v", err)
			}
			renderer, err = gpu.NewRenderer(ctx, gpu.Config{
				Width:       dc.Width(),
				Height:      dc.Height(),
				Mesh:        demos.CubeMesh(),
				Shader:      gpu.ShaderCube,
				ShaderLabel: "cube",
				MVP:         true,
				Depth:       true,
				ClearColor:  gputypes.Color{R: 0.05, G: 0.05, B: 0.08, A: 1},
			})
			if err != nil {
				log.Fatalf("Failed to set up renderer: %v", err)
			}
			animToken = app.StartAnimation()
		}

		sw, sh := dc.SurfaceSize()
		if sw <= 0 || sh <= 0 {
			return
		}
		if err := renderer.SetSurfaceTarget(dc.SurfaceView(), int(sw), int(sh)); err != nil {
			log.Printf("Surface target error: %v", err)
			return
		}

		spin.Step()
		renderer.SetMVP(spin.MVP(int(sw), int(sh)))
		if err := renderer.FrameToSurface(); err != nil {
			log.Printf("Frame error: %v", err)
		}
	})

	// Space toggles the tumble: stopping the animation token drops the
	// frame rate to zero until resumed.
	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key != gpucontext.KeySpace {
			return
		}
		paused = !paused
		if paused {
			if animToken != nil {
				animToken.Stop()
				animToken = nil
			}
		} else {
			animToken = app.StartAnimation()
		}
	})

	app.OnClose(func() {
		if animToken != nil {
			animToken.Stop()
		}
		if renderer != nil {
			renderer.Close()
		}
		if ctx != nil {
			ctx.Close()
		}
	})

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
