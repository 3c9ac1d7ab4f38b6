package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	demos "github.com/andreeich/wgpu-demos"
)

// Render target formats shared by every demo pipeline.
const (
	colorFormat = gputypes.TextureFormatBGRA8Unorm
	depthFormat = gputypes.TextureFormatDepth24PlusStencil8
)

// gpuTimeout bounds the per-frame fence wait.
const gpuTimeout = 5 * time.Second

// copyPitchAlignment is the row alignment WebGPU requires for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// Renderer errors.
var (
	// ErrNilMesh is returned when a Config carries no mesh.
	ErrNilMesh = errors.New("gpu: config has no mesh")

	// ErrInvalidDimensions is returned for a non-positive target size.
	ErrInvalidDimensions = errors.New("gpu: invalid target dimensions")

	// ErrNoSurface is returned by FrameToSurface before SetSurfaceTarget.
	ErrNoSurface = errors.New("gpu: no surface target set")

	// ErrNotTextureView is returned when a window hands over a surface
	// view that is not a wgpu/hal texture view.
	ErrNotTextureView = errors.New("gpu: surface view is not hal.TextureView")
)

// Config describes one demo renderer: the mesh to upload, the WGSL pair
// to compile, and whether the pipeline carries an MVP uniform and a depth
// buffer (the cube) or neither (the triangles).
type Config struct {
	// Width, Height is the render target size in pixels.
	Width, Height int

	// Mesh is the fixed geometry to upload.
	Mesh *demos.Mesh

	// Shader is the WGSL source holding the vs_main/fs_main pair.
	Shader string

	// ShaderLabel names the shader in diagnostics.
	ShaderLabel string

	// MVP allocates a mat4 uniform at group(0) binding(0), written once
	// per frame via SetMVP.
	MVP bool

	// Depth attaches a depth buffer and enables depth testing.
	Depth bool

	// ClearColor is the render pass clear value.
	ClearColor gputypes.Color
}

// Renderer draws one mesh with one pipeline. It owns the compiled shader,
// the vertex/index/uniform buffers, and the offscreen target textures.
// Construction follows the fixed setup sequence the demos share: compile
// shaders, upload buffers, bind attributes; after that each Frame call is
// one or two draw calls.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	ctx  *Context
	mesh *demos.Mesh

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	width, height uint32
	clear         gputypes.Color
	depth         bool

	// Offscreen color target. Unused while a surface target is set.
	colorTex  hal.Texture
	colorView hal.TextureView

	// Depth target, present only when depth testing is enabled.
	depthTex  hal.Texture
	depthView hal.TextureView

	// Surface target borrowed from a window; never destroyed here.
	surfaceView hal.TextureView

	closed bool
}

// NewRenderer compiles the shader, uploads the mesh, and builds the
// render pipeline. Any failure tears down the partial state and is
// returned to the caller; the demos log it and stop.
func NewRenderer(ctx *Context, cfg Config) (*Renderer, error) {
	if cfg.Mesh == nil {
		return nil, ErrNilMesh
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cfg.Width, cfg.Height)
	}

	r := &Renderer{
		ctx:    ctx,
		mesh:   cfg.Mesh,
		width:  uint32(cfg.Width),
		height: uint32(cfg.Height),
		clear:  cfg.ClearColor,
		depth:  cfg.Depth,
	}

	label := cfg.ShaderLabel
	if label == "" {
		label = "demo"
	}

	shader, err := ctx.CompileShader(label, cfg.Shader)
	if err != nil {
		return nil, err
	}
	r.shader = shader

	if err := r.uploadMesh(label); err != nil {
		r.Close()
		return nil, err
	}
	if cfg.MVP {
		if err := r.createUniform(label); err != nil {
			r.Close()
			return nil, err
		}
	}
	if err := r.createPipeline(label); err != nil {
		r.Close()
		return nil, err
	}

	demos.Logger().Info("renderer ready",
		"shader", label,
		"vertices", cfg.Mesh.VertexCount(),
		"indices", cfg.Mesh.IndexCount())

	return r, nil
}

// uploadMesh uploads the vertex and (when present) index buffers.
func (r *Renderer) uploadMesh(label string) error {
	vertBuf, err := r.ctx.UploadVertices(label+"_verts", r.mesh.Vertices)
	if err != nil {
		return err
	}
	r.vertBuf = vertBuf

	if r.mesh.Indexed() {
		idxBuf, err := r.ctx.UploadIndices(label+"_indices", r.mesh.Indices)
		if err != nil {
			return err
		}
		r.idxBuf = idxBuf
	}
	return nil
}

// createUniform creates the mat4 uniform buffer, its bind group layout,
// and the bind group at group(0) binding(0).
func (r *Renderer) createUniform(label string) error {
	uniformBuf, err := r.ctx.CreateUniform(label + "_mvp")
	if err != nil {
		return err
	}
	r.uniformBuf = uniformBuf

	uniformLayout, err := r.ctx.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: label + "_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create uniform bind group layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	bindGroup, err := r.ctx.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind",
		Layout: uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: mat4Size,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// createPipeline builds the pipeline layout and render pipeline for the
// mesh's vertex layout. The pipeline must exist before any draw call or
// bind group references its layouts.
func (r *Renderer) createPipeline(label string) error {
	var layouts []hal.BindGroupLayout
	if r.uniformLayout != nil {
		layouts = append(layouts, r.uniformLayout)
	}

	pipeLayout, err := r.ctx.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return fmt.Errorf("gpu: create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	desc := &hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(r.mesh),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    colorFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
	if r.depth {
		desc.DepthStencil = &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilReadMask:  0xFF,
			StencilWriteMask: 0xFF,
		}
	}

	pipeline, err := r.ctx.device.CreateRenderPipeline(desc)
	if err != nil {
		return fmt.Errorf("gpu: create render pipeline: %w", err)
	}
	r.pipeline = pipeline
	return nil
}

// vertexLayout converts a mesh's interleaved layout into the pipeline's
// vertex buffer description: float32x3 position at location 0, and when
// present a float32x3 color at location 1.
func vertexLayout(m *demos.Mesh) []gputypes.VertexBufferLayout {
	attrs := []gputypes.VertexAttribute{
		{
			Format:         gputypes.VertexFormatFloat32x3,
			Offset:         0,
			ShaderLocation: 0,
		},
	}
	if m.HasColor {
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         gputypes.VertexFormatFloat32x3,
			Offset:         12,
			ShaderLocation: 1,
		})
	}
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: uint64(m.Stride * 4),
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes:  attrs,
		},
	}
}

// SetMVP writes the model-view-projection matrix for the next frame.
// No-op for pipelines built without a uniform.
func (r *Renderer) SetMVP(m mgl32.Mat4) {
	if r.uniformBuf == nil {
		return
	}
	r.ctx.WriteMat4(r.uniformBuf, m)
}
