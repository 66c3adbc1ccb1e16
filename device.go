package pipeline

import (
	"github.com/gogpu/gputypes"
)

// AttachmentInfo describes one render target attachment of a render pass.
type AttachmentInfo struct {
	// Name identifies the attachment in the engine's texture registry.
	Name string

	// Format is the attachment's pixel format.
	Format gputypes.TextureFormat

	// Clear requests clearing the attachment at the start of the pass.
	Clear bool
}

// RenderpassMetadata is the attachment layout of one named render pass.
type RenderpassMetadata struct {
	// ColorAttachments are the pass's color outputs, in attachment order.
	ColorAttachments []AttachmentInfo

	// DepthAttachment is the optional depth output.
	DepthAttachment *AttachmentInfo
}

// RenderpassRegistry resolves render pass names to attachment metadata.
// The engine that owns the render graph implements it; StaticRegistry is
// a ready-made implementation for fixed pass sets and tests.
type RenderpassRegistry interface {
	// RenderpassMetadata returns the metadata registered under name.
	RenderpassMetadata(name string) (*RenderpassMetadata, bool)
}

// StaticRegistry is a fixed name-to-metadata mapping.
type StaticRegistry map[string]*RenderpassMetadata

// RenderpassMetadata implements RenderpassRegistry.
func (r StaticRegistry) RenderpassMetadata(name string) (*RenderpassMetadata, bool) {
	meta, ok := r[name]
	return meta, ok
}

// PipelineInterface is the backend object describing a pipeline's complete
// resource binding and vertex input layout, independent of its shader and
// fixed-function configuration.
//
// Backends create the object in Device.CreatePipelineInterface; this
// package only attaches the derived vertex field sequence before handing
// the interface back to the caller.
type PipelineInterface interface {
	// VertexFields returns the attached vertex input layout.
	VertexFields() []VertexField

	// SetVertexFields attaches the vertex input layout. The order matches
	// the vertex shader's input declaration order.
	SetVertexFields([]VertexField)
}

// PipelineHandle is an opaque backend pipeline object.
type PipelineHandle interface {
	// Destroy releases the backend resources of the pipeline.
	Destroy()
}

// Device abstracts the GPU backend that allocates pipeline objects.
//
// Both methods may fail for backend reasons (resource limits, layouts the
// API cannot express); such failures are terminal for the build attempt
// that triggered them.
type Device interface {
	// CreatePipelineInterface allocates the backend layout objects for
	// the given binding table and attachment set.
	CreatePipelineInterface(bindings *BindingTable, colorAttachments []AttachmentInfo, depthAttachment *AttachmentInfo) (PipelineInterface, error)

	// CreatePipeline allocates the backend pipeline object from a
	// previously created interface and the full create info.
	CreatePipeline(iface PipelineInterface, info *PipelineCreateInfo) (PipelineHandle, error)
}
