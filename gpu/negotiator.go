package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	types "github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// deviceLabel is the debug label attached to the negotiated device.
const deviceLabel = "canvaskit device"

// Instance is a handle to the WebGPU instance.
type Instance interface {
	// Release drops the instance reference.
	Release()
}

// Adapter is a handle to a negotiated GPU adapter option.
type Adapter interface {
	// Release releases the adapter.
	Release() error
}

// Device is a handle to the negotiated, usable GPU device.
type Device interface {
	// Release releases the device.
	Release() error
}

// Queue is a handle to a device command queue.
// Opaque at this layer; consumers type-assert to the concrete handle
// of the backend in use.
type Queue any

// Negotiator performs the individual WebGPU acquisition steps.
//
// RequestAdapter and RequestDevice may block; the Context always calls them
// from a background goroutine, never from Poll. The default implementation
// talks to gogpu/wgpu; tests substitute a fake via WithNegotiator.
type Negotiator interface {
	// CreateInstance creates the WebGPU instance. Synchronous; cannot fail.
	CreateInstance() Instance

	// RequestAdapter negotiates a GPU adapter from the instance.
	RequestAdapter(inst Instance) (Adapter, error)

	// RequestDevice negotiates a device and its queue from the adapter.
	RequestDevice(adapter Adapter) (Device, Queue, error)
}

// wgpuNegotiator is the production Negotiator backed by gogpu/wgpu.
type wgpuNegotiator struct{}

// wgpuInstance wraps the gogpu/wgpu instance.
type wgpuInstance struct {
	inst *core.Instance
}

// Raw returns the underlying gogpu/wgpu instance.
func (i *wgpuInstance) Raw() *core.Instance { return i.inst }

func (i *wgpuInstance) Release() {
	// The instance has no explicit release in the current gogpu/wgpu
	// implementation; dropping the reference is sufficient.
	i.inst = nil
}

// wgpuAdapter wraps a gogpu/wgpu adapter ID.
type wgpuAdapter struct {
	id core.AdapterID
}

// Raw returns the underlying adapter ID.
func (a *wgpuAdapter) Raw() core.AdapterID { return a.id }

func (a *wgpuAdapter) Release() error {
	if a.id.IsZero() {
		return nil
	}
	if err := core.AdapterDrop(a.id); err != nil {
		return fmt.Errorf("adapter release failed: %w", err)
	}
	a.id = core.AdapterID{}
	return nil
}

// wgpuDevice wraps a gogpu/wgpu device ID.
type wgpuDevice struct {
	id core.DeviceID
}

// Raw returns the underlying device ID.
func (d *wgpuDevice) Raw() core.DeviceID { return d.id }

func (d *wgpuDevice) Release() error {
	if d.id.IsZero() {
		return nil
	}
	if err := core.DeviceDrop(d.id); err != nil {
		return fmt.Errorf("device release failed: %w", err)
	}
	d.id = core.DeviceID{}
	return nil
}

func (wgpuNegotiator) CreateInstance() Instance {
	return &wgpuInstance{inst: core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
	})}
}

func (wgpuNegotiator) RequestAdapter(inst Instance) (Adapter, error) {
	wi, ok := inst.(*wgpuInstance)
	if !ok {
		return nil, fmt.Errorf("unexpected instance type %T", inst)
	}

	id, err := wi.Raw().RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("adapter request failed: %w", err)
	}
	return &wgpuAdapter{id: id}, nil
}

func (wgpuNegotiator) RequestDevice(adapter Adapter) (Device, Queue, error) {
	wa, ok := adapter.(*wgpuAdapter)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected adapter type %T", adapter)
	}

	id, err := core.RequestDevice(wa.Raw(), &types.DeviceDescriptor{
		Label:            deviceLabel,
		RequiredFeatures: nil,
		RequiredLimits:   types.DefaultLimits(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("device request failed: %w", err)
	}

	queue, err := core.GetDeviceQueue(id)
	if err != nil {
		_ = core.DeviceDrop(id)
		return nil, nil, fmt.Errorf("queue retrieval failed: %w", err)
	}
	return &wgpuDevice{id: id}, queue, nil
}
