package gpu

import (
	"strings"
	"testing"

	"github.com/gogpu/naga"
)

// TestShaderSourcesCompile validates every embedded WGSL pair with the
// naga compiler. This needs no GPU: naga runs entirely on the CPU, so a
// shader that breaks fails here rather than at first frame.
func TestShaderSourcesCompile(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"flat", ShaderFlat},
		{"vertex_color", ShaderVertexColor},
		{"cube", ShaderCube},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.source == "" {
				t.Fatal("embedded shader source is empty")
			}
			spirv, err := naga.Compile(tt.source)
			if err != nil {
				t.Fatalf("naga.Compile() failed: %v", err)
			}
			if len(spirv) == 0 {
				t.Error("naga.Compile() produced no SPIR-V output")
			}
		})
	}
}

// TestShaderSourcesEntryPoints checks that each pair exposes the entry
// point names the pipeline descriptors reference.
func TestShaderSourcesEntryPoints(t *testing.T) {
	for _, source := range []string{ShaderFlat, ShaderVertexColor, ShaderCube} {
		for _, entry := range []string{"vs_main", "fs_main"} {
			if !strings.Contains(source, "fn "+entry) {
				t.Errorf("shader missing entry point %q:\n%s", entry, source)
			}
		}
	}
}

// TestCubeShaderHasMVPUniform guards the binding the cube renderer
// writes its matrix to.
func TestCubeShaderHasMVPUniform(t *testing.T) {
	if !strings.Contains(ShaderCube, "mat4x4<f32>") {
		t.Error("cube shader has no mat4 uniform")
	}
	if !strings.Contains(ShaderCube, "@group(0) @binding(0)") {
		t.Error("cube shader uniform is not at group(0) binding(0)")
	}
}
