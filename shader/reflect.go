package shader

import (
	"github.com/gogpu/naga/ir"
)

// ResourceKind classifies an externally visible shader resource.
type ResourceKind uint8

const (
	// ResourceTexture is a separately bound image (sampled, depth, or
	// storage texture).
	ResourceTexture ResourceKind = iota

	// ResourceSampler is a separately bound sampler.
	ResourceSampler

	// ResourceCombinedImageSampler is an image and sampler bound as one
	// resource. WGSL cannot declare these, so the naga reflection pass
	// never produces this kind; it exists for modules lowered from GLSL-
	// style frontends and flows through merging and layout creation like
	// any other kind.
	ResourceCombinedImageSampler

	// ResourceUniformBuffer is a uniform (constant) buffer.
	ResourceUniformBuffer

	// ResourceStorageBuffer is a read/write storage buffer.
	ResourceStorageBuffer
)

// String returns a human-readable kind name for diagnostics.
func (k ResourceKind) String() string {
	switch k {
	case ResourceTexture:
		return "texture"
	case ResourceSampler:
		return "sampler"
	case ResourceCombinedImageSampler:
		return "combined image sampler"
	case ResourceUniformBuffer:
		return "uniform buffer"
	case ResourceStorageBuffer:
		return "storage buffer"
	default:
		return "unknown"
	}
}

// Resource is one reflected resource binding declaration.
type Resource struct {
	// Name is the resource's declared name, the merge key across stages.
	Name string

	// Kind is the resource classification.
	Kind ResourceKind

	// Group is the descriptor set index (WGSL @group).
	Group uint32

	// Binding is the slot within the group (WGSL @binding).
	Binding uint32

	// Count is the first-dimension array size. 1 for non-array resources,
	// 0 for runtime-sized arrays.
	Count uint32

	// Unbounded is set for every array-typed resource. Reflection cannot
	// currently tell bounded binding arrays from unbounded ones, so all
	// arrays are reported unbounded.
	Unbounded bool
}

// Resources enumerates the module's bound resources in declaration order.
//
// One pass over the global variables covers every category the binding
// model knows: images and samplers (handle space), uniform buffers, and
// storage buffers. Globals without a @group/@binding pair (private,
// workgroup, push-constant style data) are not resources and are skipped.
func Resources(m *ir.Module) []Resource {
	if m == nil {
		return nil
	}

	resources := make([]Resource, 0, len(m.GlobalVariables))
	for _, g := range m.GlobalVariables {
		if g.Binding == nil {
			continue
		}

		inner := typeInner(m, g.Type)

		count := uint32(1)
		unbounded := false
		if arr, ok := inner.(ir.ArrayType); ok {
			if arr.Size.Constant != nil {
				count = *arr.Size.Constant
			} else {
				count = 0
			}
			// All arrays are unbounded until reflection can detect
			// true boundedness.
			unbounded = true
			inner = typeInner(m, arr.Base)
		}

		var kind ResourceKind
		switch inner.(type) {
		case ir.SamplerType:
			kind = ResourceSampler
		case ir.ImageType:
			kind = ResourceTexture
		default:
			switch g.Space {
			case ir.SpaceUniform:
				kind = ResourceUniformBuffer
			case ir.SpaceStorage:
				kind = ResourceStorageBuffer
			default:
				// Bound global in an address space the binding model
				// does not cover.
				continue
			}
		}

		resources = append(resources, Resource{
			Name:      g.Name,
			Kind:      kind,
			Group:     g.Binding.Group,
			Binding:   g.Binding.Binding,
			Count:     count,
			Unbounded: unbounded,
		})
	}
	return resources
}

// Input is one location-bound entry point input.
type Input struct {
	// Name is the declared parameter or struct member name.
	Name string

	// Location is the input's @location index.
	Location uint32

	// Type is the input's resolved IR type.
	Type ir.TypeInner
}

// StageInputs returns the location-bound inputs of the module's entry point
// for the given stage, in declaration order. Struct-typed arguments are
// expanded member by member; builtin-bound inputs (vertex index, instance
// index) are not part of the vertex buffer layout and are skipped.
//
// Returns nil if the module has no entry point for the stage.
func StageInputs(m *ir.Module, stage ir.ShaderStage) []Input {
	if m == nil {
		return nil
	}

	fn := entryFunction(m, stage)
	if fn == nil {
		return nil
	}

	var inputs []Input
	for _, arg := range fn.Arguments {
		if arg.Binding != nil {
			if loc, ok := (*arg.Binding).(ir.LocationBinding); ok {
				inputs = append(inputs, Input{
					Name:     arg.Name,
					Location: loc.Location,
					Type:     typeInner(m, arg.Type),
				})
			}
			continue
		}

		if st, ok := typeInner(m, arg.Type).(ir.StructType); ok {
			for _, member := range st.Members {
				if member.Binding == nil {
					continue
				}
				if loc, ok := (*member.Binding).(ir.LocationBinding); ok {
					inputs = append(inputs, Input{
						Name:     member.Name,
						Location: loc.Location,
						Type:     typeInner(m, member.Type),
					})
				}
			}
		}
	}
	return inputs
}

// entryFunction returns the function of the first entry point with the
// given stage, or nil. Entry point functions live inline on the entry
// point, not in the module's Functions arena.
func entryFunction(m *ir.Module, stage ir.ShaderStage) *ir.Function {
	for i := range m.EntryPoints {
		if m.EntryPoints[i].Stage == stage {
			return &m.EntryPoints[i].Function
		}
	}
	return nil
}

// typeInner resolves a type handle to its inner representation, or nil for
// an out-of-range handle.
func typeInner(m *ir.Module, h ir.TypeHandle) ir.TypeInner {
	if int(h) >= len(m.Types) {
		return nil
	}
	return m.Types[h].Inner
}
