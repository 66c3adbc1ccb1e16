package pipeline

import (
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/pipeline/shader"
)

// Type handles used by the hand-built test shader modules.
const (
	tVec4 ir.TypeHandle = iota
	tVec3
	tVec2
	tSampler
	tImage
	tInput
)

func testTypes() []ir.Type {
	f32 := ir.ScalarType{Kind: ir.ScalarFloat, Width: 4}
	return []ir.Type{
		tVec4:    {Inner: ir.VectorType{Size: ir.Vec4, Scalar: f32}},
		tVec3:    {Inner: ir.VectorType{Size: ir.Vec3, Scalar: f32}},
		tVec2:    {Inner: ir.VectorType{Size: ir.Vec2, Scalar: f32}},
		tSampler: {Name: "sampler", Inner: ir.SamplerType{}},
		tImage:   {Inner: ir.ImageType{Dim: ir.Dim2D, Class: ir.ImageClassSampled}},
		tInput: {Name: "VertexInput", Inner: ir.StructType{
			Members: []ir.StructMember{
				{Name: "position", Type: tVec4, Binding: locBinding(0)},
				{Name: "normal", Type: tVec3, Binding: locBinding(1)},
				{Name: "uv", Type: tVec2, Binding: locBinding(2)},
			},
		}},
	}
}

func locBinding(loc uint32) *ir.Binding {
	var b ir.Binding = ir.LocationBinding{Location: loc}
	return &b
}

// testVertexSource builds a vertex stage with a struct input (position,
// normal, uv) and one uniform binding named "camera".
func testVertexSource() *shader.Source {
	return &shader.Source{
		Name: "test_vs",
		Module: &ir.Module{
			Types: testTypes(),
			GlobalVariables: []ir.GlobalVariable{
				{
					Name:    "camera",
					Space:   ir.SpaceUniform,
					Binding: &ir.ResourceBinding{Group: 0, Binding: 0},
					Type:    tVec4,
				},
			},
			EntryPoints: []ir.EntryPoint{
				{
					Name:  "vs_main",
					Stage: ir.StageVertex,
					Function: ir.Function{
						Name: "vs_main",
						Arguments: []ir.FunctionArgument{
							{Name: "in", Type: tInput},
						},
					},
				},
			},
		},
	}
}

// testFragmentSource builds a fragment stage sharing the "camera" uniform
// and adding a sampled texture with its sampler.
func testFragmentSource() *shader.Source {
	return &shader.Source{
		Name: "test_fs",
		Module: &ir.Module{
			Types: testTypes(),
			GlobalVariables: []ir.GlobalVariable{
				{
					Name:    "camera",
					Space:   ir.SpaceUniform,
					Binding: &ir.ResourceBinding{Group: 0, Binding: 0},
					Type:    tVec4,
				},
				{
					Name:    "color_tex",
					Space:   ir.SpaceHandle,
					Binding: &ir.ResourceBinding{Group: 1, Binding: 0},
					Type:    tImage,
				},
				{
					Name:    "color_samp",
					Space:   ir.SpaceHandle,
					Binding: &ir.ResourceBinding{Group: 1, Binding: 1},
					Type:    tSampler,
				},
			},
			EntryPoints: []ir.EntryPoint{
				{
					Name:     "fs_main",
					Stage:    ir.StageFragment,
					Function: ir.Function{Name: "fs_main"},
				},
			},
		},
	}
}

// testCreateInfo builds a minimal valid create info targeting pass.
func testCreateInfo(name, pass string) *PipelineCreateInfo {
	return &PipelineCreateInfo{
		Name:           name,
		Pass:           pass,
		VertexShader:   testVertexSource(),
		FragmentShader: testFragmentSource(),
	}
}

// testRegistry returns a registry with a single "forward" pass.
func testRegistry() StaticRegistry {
	return StaticRegistry{
		"forward": &RenderpassMetadata{
			ColorAttachments: []AttachmentInfo{
				{Name: "backbuffer"},
			},
		},
	}
}
