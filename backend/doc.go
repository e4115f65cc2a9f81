// Package backend defines the canvas abstraction shared by all rendering
// backends and the registry through which backends are selected by name.
//
// Three backends exist, each in its own subpackage:
//
//   - software ("sw"): CPU rasterizer target with a caller-visible
//     pixel buffer
//   - gl ("gl"): OpenGL context bound to a host drawing surface
//   - wg ("wg"): WebGPU surface targeting the shared GPU device
//
// Backend packages register themselves on import. The gl and wg packages
// can be excluded at build time with the nogl and nowebgpu build tags;
// an excluded backend is simply absent from the registry and canvas
// creation for its name fails with a zero handle.
package backend
