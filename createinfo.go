package pipeline

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/pipeline/shader"
)

// PipelineCreateInfo is the immutable description of one graphics pipeline.
//
// The caller owns the create info; this package only reads it. The vertex
// shader is mandatory, the remaining stages optional.
type PipelineCreateInfo struct {
	// Name keys the pipeline in storage and appears in every diagnostic.
	Name string

	// Pass names the render pass the pipeline targets. It is resolved
	// through the RenderpassRegistry at build time.
	Pass string

	// VertexShader is the mandatory vertex stage.
	VertexShader *shader.Source

	// TessellationControlShader is the optional tessellation control stage.
	TessellationControlShader *shader.Source

	// TessellationEvaluationShader is the optional tessellation evaluation
	// stage.
	TessellationEvaluationShader *shader.Source

	// GeometryShader is the optional geometry stage.
	GeometryShader *shader.Source

	// FragmentShader is the optional fragment stage.
	FragmentShader *shader.Source

	// State is the fixed-function configuration.
	State PipelineState
}

// PipelineState is the fixed-function state of a graphics pipeline.
type PipelineState struct {
	// Topology is the primitive type (triangles, lines, points).
	Topology gputypes.PrimitiveTopology

	// FrontFace defines which face is considered front-facing.
	FrontFace gputypes.FrontFace

	// CullMode defines which faces to cull.
	CullMode gputypes.CullMode

	// DepthWriteEnabled enables depth buffer writes.
	DepthWriteEnabled bool

	// DepthCompare is the depth comparison function.
	DepthCompare gputypes.CompareFunction

	// Blend is the color blending configuration (optional).
	// Nil means no blending (source replaces destination).
	Blend *BlendState

	// SampleCount is the number of samples per pixel (1 for non-MSAA).
	SampleCount uint32
}

// BlendState describes the color blending configuration.
type BlendState struct {
	// Color is the color channel blending configuration.
	Color BlendComponent

	// Alpha is the alpha channel blending configuration.
	Alpha BlendComponent
}

// BlendComponent describes one blend component (color or alpha).
type BlendComponent struct {
	// SrcFactor is the source blend factor.
	SrcFactor gputypes.BlendFactor

	// DstFactor is the destination blend factor.
	DstFactor gputypes.BlendFactor

	// Operation is the blend operation.
	Operation gputypes.BlendOperation
}

// stageSource pairs an optional stage with its stage flag, in pipeline
// order. Used by the interface builder to walk the stages uniformly.
type stageSource struct {
	source *shader.Source
	stage  StageFlags
}

// stages lists the create info's present stages in pipeline order,
// starting with the mandatory vertex stage.
func (c *PipelineCreateInfo) stages() []stageSource {
	all := []stageSource{
		{c.VertexShader, StageVertex},
		{c.TessellationControlShader, StageTessellationControl},
		{c.TessellationEvaluationShader, StageTessellationEvaluation},
		{c.GeometryShader, StageGeometry},
		{c.FragmentShader, StageFragment},
	}
	present := all[:0]
	for _, s := range all {
		if s.source != nil {
			present = append(present, s)
		}
	}
	return present
}

// validate checks the invariants Build relies on.
func (c *PipelineCreateInfo) validate() error {
	if c == nil {
		return ErrNilCreateInfo
	}
	if c.Name == "" {
		return ErrUnnamedPipeline
	}
	if err := c.VertexShader.Validate(); err != nil {
		return ErrMissingVertexShader
	}
	return nil
}
