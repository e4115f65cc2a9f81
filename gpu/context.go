package gpu

import (
	"sync"
)

// Context holds the process-wide WebGPU acquisition state: the instance,
// adapter and device handles plus the in-flight/failure flags the Poll
// state machine classifies.
//
// Invariants: the adapter is never populated before the instance, the
// device never before the adapter. Both are enforced by Poll's strict
// left-to-right field checks under the context mutex.
//
// The process-wide instance shared by all "wg" canvases is returned by
// Shared. No canvas may assume exclusive ownership of the shared handles.
type Context struct {
	mu  sync.Mutex
	neg Negotiator

	// gen counts acquisition cycles. Term bumps it so a completion from a
	// request issued before Term releases its result instead of writing
	// into the fresh cycle.
	gen uint64

	instance Instance
	adapter  Adapter
	device   Device
	queue    Queue

	adapterRequested bool
	deviceRequested  bool
	failed           bool
}

// Option configures a Context created by NewContext.
type Option func(*Context)

// WithNegotiator substitutes the negotiation implementation.
// Intended for tests; passing nil keeps the default.
func WithNegotiator(n Negotiator) Option {
	return func(c *Context) {
		if n != nil {
			c.neg = n
		}
	}
}

// NewContext creates an independent acquisition context.
// Most callers want Shared instead.
func NewContext(opts ...Option) *Context {
	c := &Context{neg: wgpuNegotiator{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	sharedOnce sync.Once
	shared     *Context
)

// Shared returns the process-wide acquisition context. Exactly one shared
// context exists per process; it is created on first use and reset (not
// replaced) by Term.
func Shared() *Context {
	sharedOnce.Do(func() {
		shared = NewContext()
	})
	return shared
}

// Poll advances the acquisition state machine by at most one step and
// classifies the current state. It never blocks: negotiation runs on
// background goroutines whose completions write the context under the
// mutex.
//
// Callers loop on Poll (typically once per frame) until Ready or Failed.
// Failed is sticky and terminal until Term; once Ready, every subsequent
// Poll returns Ready without issuing further requests.
func (c *Context) Poll() PollResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failed {
		return Failed
	}

	if c.instance == nil {
		c.instance = c.neg.CreateInstance()
	}

	if c.adapter == nil {
		if c.adapterRequested {
			return Pending
		}
		c.adapterRequested = true
		go c.completeAdapter(c.gen, c.instance)
		return Pending
	}

	if c.deviceRequested {
		if c.device == nil {
			return Pending
		}
		return Ready
	}

	c.deviceRequested = true
	go c.completeDevice(c.gen, c.adapter)
	return Pending
}

// completeAdapter runs the blocking adapter negotiation and records the
// outcome. Runs on its own goroutine.
func (c *Context) completeAdapter(gen uint64, inst Instance) {
	adapter, err := c.neg.RequestAdapter(inst)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		// Term ran while the request was in flight; the result belongs
		// to a dead acquisition cycle.
		if err == nil {
			if rerr := adapter.Release(); rerr != nil {
				slogger().Warn("gpu: stale adapter release failed", "err", rerr)
			}
		}
		return
	}

	if err != nil {
		slogger().Warn("gpu: adapter negotiation failed", "err", err)
		c.failed = true
		return
	}
	c.adapter = adapter
	slogger().Info("gpu: adapter acquired")
}

// completeDevice runs the blocking device negotiation and records the
// outcome. Runs on its own goroutine.
func (c *Context) completeDevice(gen uint64, adapter Adapter) {
	device, queue, err := c.neg.RequestDevice(adapter)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		if err == nil {
			if rerr := device.Release(); rerr != nil {
				slogger().Warn("gpu: stale device release failed", "err", rerr)
			}
		}
		return
	}

	if err != nil {
		slogger().Warn("gpu: device negotiation failed", "err", err)
		c.failed = true
		return
	}
	c.device = device
	c.queue = queue
	slogger().Info("gpu: device acquired")
}

// Term releases the device, adapter and instance in that order (reverse of
// acquisition) and resets the context so a later Poll starts a fresh
// acquisition cycle. Idempotent; safe to call when nothing was acquired.
//
// Requests still in flight are not cancelled — they run to completion in
// the background, notice their acquisition cycle has ended, and release
// whatever they acquired.
func (c *Context) Term() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		if err := c.device.Release(); err != nil {
			slogger().Warn("gpu: device release failed", "err", err)
		}
	}
	if c.adapter != nil {
		if err := c.adapter.Release(); err != nil {
			slogger().Warn("gpu: adapter release failed", "err", err)
		}
	}
	if c.instance != nil {
		c.instance.Release()
	}

	c.device = nil
	c.queue = nil
	c.adapter = nil
	c.instance = nil
	c.adapterRequested = false
	c.deviceRequested = false
	c.failed = false
	c.gen++
}

// Ready reports whether the device has been acquired.
func (c *Context) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device != nil
}

// Instance returns the instance handle, or nil before the first Poll.
func (c *Context) Instance() Instance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.instance
}

// Adapter returns the adapter handle, or nil until acquisition completes.
func (c *Context) Adapter() Adapter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter
}

// Device returns the device handle, or nil until acquisition completes.
func (c *Context) Device() Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device
}

// Queue returns the queue handle, or nil until acquisition completes.
func (c *Context) Queue() Queue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue
}
