package pipeline

import "errors"

// Pipeline construction errors.
var (
	// ErrNilDevice is returned when creating storage without a device.
	ErrNilDevice = errors.New("pipeline: nil device")

	// ErrNilRegistry is returned when creating storage without a
	// renderpass registry.
	ErrNilRegistry = errors.New("pipeline: nil renderpass registry")

	// ErrNilCreateInfo signals a build request without a create info.
	ErrNilCreateInfo = errors.New("pipeline: nil create info")

	// ErrUnnamedPipeline signals a create info without a name. Names key
	// the storage cache, so an unnamed pipeline cannot be stored.
	ErrUnnamedPipeline = errors.New("pipeline: create info has no name")

	// ErrMissingVertexShader signals a create info without the mandatory
	// vertex stage.
	ErrMissingVertexShader = errors.New("pipeline: missing vertex shader")
)
