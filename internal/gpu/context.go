package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import the Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	demos "github.com/andreeich/wgpu-demos"
)

// Context errors.
var (
	// ErrNoGPU is returned when no usable GPU adapter can be acquired.
	ErrNoGPU = errors.New("gpu: no usable GPU adapter")

	// ErrClosed is returned when operating on a closed context.
	ErrClosed = errors.New("gpu: context is closed")

	// ErrNoHALProvider is returned when a window's device provider does
	// not expose the underlying HAL device and queue.
	ErrNoHALProvider = errors.New("gpu: provider does not expose HAL types")
)

// Context owns the GPU handles a demo issues commands through: the HAL
// instance, the logical device, and its submission queue. One per process;
// every GPU object the demo creates belongs to it and must be destroyed
// before it is closed.
//
// Context is not safe for concurrent use; the demos are single-threaded
// and drive it from one frame callback.
type Context struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	adapterName string
	shared      bool // device/queue borrowed from a window, don't destroy
	closed      bool
}

// NewContext acquires a GPU context: it creates a HAL instance, enumerates
// adapters (preferring a discrete GPU, then an integrated one), and opens a
// logical device with default limits.
//
// There is no recovery path: on failure the returned error wraps ErrNoGPU
// and the caller is expected to report it and stop.
func NewContext() (*Context, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrNoGPU)
	}

	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %v", ErrNoGPU, err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no adapters found", ErrNoGPU)
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: open device: %v", ErrNoGPU, err)
	}

	demos.Logger().Info("GPU context acquired", "adapter", selected.Info.Name)

	return &Context{
		instance:    instance,
		device:      openDev.Device,
		queue:       openDev.Queue,
		adapterName: selected.Info.Name,
	}, nil
}

// NewSharedContext adopts the device and queue of a gogpu window. The
// provider comes from gogpu.App.GPUContextProvider and must expose
// HalDevice() any and HalQueue() any returning wgpu/hal types. The window
// retains ownership; Close on a shared context releases nothing.
func NewSharedContext(provider any) (*Context, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}

	demos.Logger().Info("GPU context shared from window")

	return &Context{
		device: device,
		queue:  queue,
		shared: true,
	}, nil
}

// Device returns the logical device handle.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the submission queue.
func (c *Context) Queue() hal.Queue { return c.queue }

// AdapterName returns the name of the selected adapter, or the empty
// string for a shared context.
func (c *Context) AdapterName() string { return c.adapterName }

// Close releases the device and instance. GPU objects created through the
// context must be destroyed before calling Close. Shared contexts release
// nothing; the window owns the device.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true

	if c.shared {
		c.device = nil
		c.queue = nil
		return
	}
	if c.device != nil {
		c.device.Destroy()
		c.device = nil
	}
	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
	c.queue = nil
}
