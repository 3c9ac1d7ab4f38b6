package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ensureOffscreen creates the offscreen color texture at the current size
// if it does not exist yet.
func (r *Renderer) ensureOffscreen() error {
	if r.colorTex != nil {
		return nil
	}
	size := hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1}

	colorTex, err := r.ctx.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "demo_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        colorFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("gpu: create color texture: %w", err)
	}
	r.colorTex = colorTex

	colorView, err := r.ctx.device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label:         "demo_color_view",
		Format:        colorFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("gpu: create color view: %w", err)
	}
	r.colorView = colorView
	return nil
}

// ensureDepth creates the depth texture at the current size if depth
// testing is enabled and the texture does not exist yet.
func (r *Renderer) ensureDepth() error {
	if !r.depth || r.depthTex != nil {
		return nil
	}
	size := hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1}

	depthTex, err := r.ctx.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "demo_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("gpu: create depth texture: %w", err)
	}
	r.depthTex = depthTex

	depthView, err := r.ctx.device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label:         "demo_depth_view",
		Format:        depthFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("gpu: create depth view: %w", err)
	}
	r.depthView = depthView
	return nil
}

// destroyTargets releases the offscreen and depth textures. Called on
// resize and on Close.
func (r *Renderer) destroyTargets() {
	dev := r.ctx.device
	if r.depthView != nil {
		dev.DestroyTextureView(r.depthView)
		r.depthView = nil
	}
	if r.depthTex != nil {
		dev.DestroyTexture(r.depthTex)
		r.depthTex = nil
	}
	if r.colorView != nil {
		dev.DestroyTextureView(r.colorView)
		r.colorView = nil
	}
	if r.colorTex != nil {
		dev.DestroyTexture(r.colorTex)
		r.colorTex = nil
	}
}

// recordPass records the demo's render pass against the given color view:
// clear, bind the pipeline and buffers, and issue the one draw call.
func (r *Renderer) recordPass(encoder hal.CommandEncoder, view hal.TextureView) {
	rpDesc := &hal.RenderPassDescriptor{
		Label: "demo_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.clear,
		}},
	}
	if r.depthView != nil {
		rpDesc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:              r.depthView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		}
	}

	rp := encoder.BeginRenderPass(rpDesc)
	rp.SetPipeline(r.pipeline)
	if r.bindGroup != nil {
		rp.SetBindGroup(0, r.bindGroup, nil)
	}
	rp.SetVertexBuffer(0, r.vertBuf, 0)
	if r.idxBuf != nil {
		rp.SetIndexBuffer(r.idxBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(uint32(r.mesh.IndexCount()), 1, 0, 0, 0)
	} else {
		rp.Draw(uint32(r.mesh.VertexCount()), 1, 0, 0)
	}
	rp.End()
}

// submit finishes the encoder, submits with a fence, and waits for the
// GPU to drain.
func (r *Renderer) submit(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer r.ctx.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.ctx.device.CreateFence()
	if err != nil {
		return fmt.Errorf("gpu: create fence: %w", err)
	}
	defer r.ctx.device.DestroyFence(fence)

	if err := r.ctx.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}
	fenceOK, err := r.ctx.device.Wait(fence, 1, gpuTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("gpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

// Frame renders one frame offscreen and reads the pixels back into an
// RGBA image. Used by the headless demos to write PNG output.
func (r *Renderer) Frame() (*image.RGBA, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if err := r.ensureOffscreen(); err != nil {
		return nil, err
	}
	if err := r.ensureDepth(); err != nil {
		return nil, err
	}

	encoder, err := r.ctx.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "demo_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("demo_frame"); err != nil {
		return nil, fmt.Errorf("gpu: begin encoding: %w", err)
	}

	r.recordPass(encoder, r.colorView)

	// The pass leaves the color texture as a render attachment;
	// CopyTextureToBuffer needs it as a transfer source.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// WebGPU requires BytesPerRow aligned to 256 bytes.
	bytesPerRow := r.width * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(r.height)

	stagingBuf, err := r.ctx.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "demo_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("gpu: create staging buffer: %w", err)
	}
	defer r.ctx.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(r.colorTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: r.height},
		TextureBase:  hal.ImageCopyTexture{Texture: r.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1},
	}})

	// Return the texture to its render-attachment state for the next frame.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	if err := r.submit(encoder); err != nil {
		return nil, err
	}

	readback := make([]byte, stagingSize)
	if err := r.ctx.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("gpu: readback: %w", err)
	}

	return bgraToImage(readback, int(r.width), int(r.height), int(alignedBytesPerRow)), nil
}

// SetSurfaceTarget points the renderer at a window surface view instead
// of the offscreen texture. The view comes from gogpu.Context.SurfaceView
// and is owned by the window. Resizing recreates the depth texture.
func (r *Renderer) SetSurfaceTarget(view any, width, height int) error {
	if r.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	tv, ok := view.(hal.TextureView)
	if !ok || tv == nil {
		return ErrNotTextureView
	}
	if uint32(width) != r.width || uint32(height) != r.height {
		r.destroyTargets()
		r.width = uint32(width)
		r.height = uint32(height)
	}
	r.surfaceView = tv
	return nil
}

// FrameToSurface renders one frame straight to the window surface view.
// No readback occurs; the window presents the result.
func (r *Renderer) FrameToSurface() error {
	if r.closed {
		return ErrClosed
	}
	if r.surfaceView == nil {
		return ErrNoSurface
	}
	if err := r.ensureDepth(); err != nil {
		return err
	}

	encoder, err := r.ctx.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "demo_encoder",
	})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("demo_frame"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	r.recordPass(encoder, r.surfaceView)

	return r.submit(encoder)
}

// Close releases every GPU object the renderer owns, in reverse creation
// order. The borrowed surface view is left alone.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.surfaceView = nil
	r.destroyTargets()

	dev := r.ctx.device
	if r.pipeline != nil {
		dev.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		dev.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bindGroup != nil {
		dev.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformLayout != nil {
		dev.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.uniformBuf != nil {
		dev.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.idxBuf != nil {
		dev.DestroyBuffer(r.idxBuf)
		r.idxBuf = nil
	}
	if r.vertBuf != nil {
		dev.DestroyBuffer(r.vertBuf)
		r.vertBuf = nil
	}
	if r.shader != nil {
		dev.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

// bgraToImage converts padded BGRA rows from a staging buffer into a
// tightly packed RGBA image.
func bgraToImage(data []byte, width, height, stride int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		for x := 0; x < width; x++ {
			b, g, rr, a := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
			i := img.PixOffset(x, y)
			img.Pix[i] = rr
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = a
		}
	}
	return img
}
