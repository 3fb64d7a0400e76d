// Package gogpu provides the GPU graphics adapter, built on the
// gogpu/gogpu framework.
//
// The adapter owns the WebGPU-style resource chain (instance, adapter,
// device, queue) and uploads the engine's buffers and textures through
// it. gogpu itself supports both a Rust (wgpu-native) and a pure Go GPU
// implementation; select one by importing the matching package:
//
//	import _ "github.com/gogpu/gogpu/gpu/backend/rust"   // Rust (wgpu-native)
//	import _ "github.com/gogpu/gogpu/gpu/backend/native" // Pure Go
//
// Importing this package registers the adapter under the name "gogpu".
package gogpu

import "errors"

// Package errors for the gogpu adapter.
var (
	// ErrNoGPUBackend is returned when no gogpu GPU implementation is
	// linked into the binary or none can start.
	ErrNoGPUBackend = errors.New("gogpu: no GPU backend available")

	// ErrDeviceCreationFailed is returned when the logical GPU device
	// cannot be created.
	ErrDeviceCreationFailed = errors.New("gogpu: device creation failed")
)
