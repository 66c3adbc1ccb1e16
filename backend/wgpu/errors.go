package wgpu

import "errors"

// Device errors.
var (
	// ErrNilDevice is returned when creating a Device without a HAL device.
	ErrNilDevice = errors.New("wgpu: nil HAL device")

	// ErrForeignInterface is returned when CreatePipeline receives an
	// interface this device did not create.
	ErrForeignInterface = errors.New("wgpu: pipeline interface was not created by this device")

	// ErrNoSPIRV is returned when a shader source carries no SPIR-V
	// encoding for the HAL to consume.
	ErrNoSPIRV = errors.New("wgpu: shader source carries no SPIR-V")

	// ErrUnsupportedStage is returned for tessellation and geometry
	// stages, which WebGPU does not have.
	ErrUnsupportedStage = errors.New("wgpu: shader stage not supported by WebGPU")

	// ErrUnsupportedKind is returned for combined image samplers, which
	// WebGPU bind group layouts cannot express.
	ErrUnsupportedKind = errors.New("wgpu: resource kind not supported by WebGPU")

	// ErrBindingArray is returned for array bindings; WebGPU core has no
	// binding arrays.
	ErrBindingArray = errors.New("wgpu: binding arrays not supported by WebGPU")

	// ErrInvalidVertexField is returned when a pipeline's vertex layout
	// contains a field with no supported format.
	ErrInvalidVertexField = errors.New("wgpu: vertex field has no supported format")
)
