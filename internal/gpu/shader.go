package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// WGSL sources for the demo shader pairs. Each file holds one
// vs_main/fs_main pair and is embedded at build time.

//go:embed shaders/flat.wgsl
var ShaderFlat string

//go:embed shaders/vertex_color.wgsl
var ShaderVertexColor string

//go:embed shaders/cube.wgsl
var ShaderCube string

// CompileShader validates the WGSL source with the naga compiler and then
// creates the shader module on the device. A broken shader surfaces the
// compiler's diagnostic text as the error.
func (c *Context) CompileShader(label, source string) (hal.ShaderModule, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if _, err := naga.Compile(source); err != nil {
		return nil, fmt.Errorf("gpu: compile %s: %w", label, err)
	}
	module, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create shader module %s: %w", label, err)
	}
	return module, nil
}
