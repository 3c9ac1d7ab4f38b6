package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// mat4Size is the byte size of a WGSL mat4x4<f32> uniform.
const mat4Size = 64

// f32Bytes packs float32 values into little-endian bytes, the layout the
// vertex fetch stage expects.
func f32Bytes(values []float32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// u16Bytes packs uint16 index values into little-endian bytes.
func u16Bytes(values []uint16) []byte {
	out := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out
}

// mat4Bytes packs a column-major mgl32.Mat4 into the 64-byte layout of a
// WGSL mat4x4<f32> uniform. Both sides are column-major, so the floats
// are written in storage order.
func mat4Bytes(m mgl32.Mat4) []byte {
	return f32Bytes(m[:])
}

// uploadBuffer creates a GPU buffer and writes data into it through the
// queue. Every buffer a draw call references is uploaded here first, at
// renderer construction time.
func (c *Context) uploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	if c.closed {
		return nil, ErrClosed
	}
	buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	c.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// UploadVertices uploads interleaved vertex floats into a vertex buffer.
func (c *Context) UploadVertices(label string, vertices []float32) (hal.Buffer, error) {
	return c.uploadBuffer(label, f32Bytes(vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
}

// UploadIndices uploads triangle-list indices into an index buffer.
func (c *Context) UploadIndices(label string, indices []uint16) (hal.Buffer, error) {
	return c.uploadBuffer(label, u16Bytes(indices),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
}

// CreateUniform creates an empty mat4-sized uniform buffer. The contents
// are written once per frame via WriteMat4.
func (c *Context) CreateUniform(label string) (hal.Buffer, error) {
	if c.closed {
		return nil, ErrClosed
	}
	buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  mat4Size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	return buf, nil
}

// WriteMat4 replaces the contents of a mat4 uniform buffer.
func (c *Context) WriteMat4(buf hal.Buffer, m mgl32.Mat4) {
	c.queue.WriteBuffer(buf, 0, mat4Bytes(m))
}
