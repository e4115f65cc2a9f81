// Package gpu drives WebGPU device acquisition for the "wg" canvas backend.
//
// Adapter and device negotiation is inherently asynchronous, so the package
// exposes a polling state machine instead of a blocking call: callers invoke
// Context.Poll repeatedly (typically once per frame) until it reports Ready
// or Failed. Poll never blocks; the negotiation itself runs on background
// goroutines whose completions only ever write shared context state.
//
// Acquisition order is strict: instance, then adapter, then device. A failed
// negotiation is sticky — Poll keeps returning Failed until Term resets the
// context for a fresh acquisition cycle.
//
// Exactly one shared Context exists per process (Shared); it is used by
// every "wg" canvas. Tests construct private contexts with NewContext and a
// fake Negotiator.
package gpu
