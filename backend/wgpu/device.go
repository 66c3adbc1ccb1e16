package wgpu

import (
	"fmt"
	"sort"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pipeline"
	"github.com/gogpu/pipeline/shader"
)

// Device implements [pipeline.Device] on a HAL device.
type Device struct {
	hal hal.Device
}

// NewDevice wraps a HAL device.
func NewDevice(d hal.Device) (*Device, error) {
	if d == nil {
		return nil, ErrNilDevice
	}
	return &Device{hal: d}, nil
}

// CreatePipelineInterface builds one bind group layout per descriptor set
// from the binding table, then a pipeline layout over them. The returned
// interface also records the attachment formats for pipeline creation.
func (d *Device) CreatePipelineInterface(table *pipeline.BindingTable, colorAttachments []pipeline.AttachmentInfo, depthAttachment *pipeline.AttachmentInfo) (pipeline.PipelineInterface, error) {
	sets, err := layoutEntries(table)
	if err != nil {
		return nil, err
	}

	layouts := make([]hal.BindGroupLayout, len(sets))
	for set, entries := range sets {
		layout, err := d.hal.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("pipeline_set%d", set),
			Entries: entries,
		})
		if err != nil {
			destroyLayouts(d.hal, layouts[:set])
			return nil, fmt.Errorf("wgpu: create bind group layout for set %d: %w", set, err)
		}
		layouts[set] = layout
	}

	pipelineLayout, err := d.hal.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "pipeline_layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		destroyLayouts(d.hal, layouts)
		return nil, fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}

	return newInterface(d.hal, layouts, pipelineLayout, colorAttachments, depthAttachment), nil
}

// layoutEntries converts the binding table into per-set layout entry
// lists, contiguous from set 0 and sorted by binding slot within each set.
func layoutEntries(table *pipeline.BindingTable) ([][]gputypes.BindGroupLayoutEntry, error) {
	bySet := make(map[uint32][]gputypes.BindGroupLayoutEntry)
	maxSet := -1

	for _, name := range table.Names() {
		desc, _ := table.Get(name)
		entry, err := layoutEntry(name, desc)
		if err != nil {
			return nil, err
		}
		bySet[desc.Set] = append(bySet[desc.Set], entry)
		if int(desc.Set) > maxSet {
			maxSet = int(desc.Set)
		}
	}

	// WebGPU pipeline layouts are dense: a gap between used sets still
	// needs an empty layout.
	sets := make([][]gputypes.BindGroupLayoutEntry, maxSet+1)
	for set := range sets {
		entries := bySet[uint32(set)]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		sets[set] = entries
	}
	return sets, nil
}

// layoutEntry maps one binding descriptor to a WebGPU layout entry.
func layoutEntry(name string, desc pipeline.ResourceBindingDescriptor) (gputypes.BindGroupLayoutEntry, error) {
	if desc.Unbounded || desc.Count != 1 {
		return gputypes.BindGroupLayoutEntry{}, fmt.Errorf("%w: resource %q", ErrBindingArray, name)
	}

	visibility, err := stageVisibility(desc.Stages)
	if err != nil {
		return gputypes.BindGroupLayoutEntry{}, fmt.Errorf("%w: resource %q needs stages %s", err, name, desc.Stages)
	}

	entry := gputypes.BindGroupLayoutEntry{
		Binding:    desc.Binding,
		Visibility: visibility,
	}

	switch desc.Kind {
	case shader.ResourceTexture:
		entry.Texture = &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		}
	case shader.ResourceSampler:
		entry.Sampler = &gputypes.SamplerBindingLayout{
			Type: gputypes.SamplerBindingTypeFiltering,
		}
	case shader.ResourceUniformBuffer:
		entry.Buffer = &gputypes.BufferBindingLayout{
			Type: gputypes.BufferBindingTypeUniform,
		}
	case shader.ResourceStorageBuffer:
		entry.Buffer = &gputypes.BufferBindingLayout{
			Type: gputypes.BufferBindingTypeStorage,
		}
	default:
		return gputypes.BindGroupLayoutEntry{}, fmt.Errorf("%w: resource %q is a %s", ErrUnsupportedKind, name, desc.Kind)
	}
	return entry, nil
}

// stageVisibility converts a pipeline stage mask to WebGPU shader stage
// visibility. Tessellation and geometry stages have no WebGPU equivalent.
func stageVisibility(stages pipeline.StageFlags) (gputypes.ShaderStage, error) {
	unsupported := pipeline.StageTessellationControl |
		pipeline.StageTessellationEvaluation |
		pipeline.StageGeometry
	if stages&unsupported != 0 {
		return 0, ErrUnsupportedStage
	}

	var visibility gputypes.ShaderStage
	if stages&pipeline.StageVertex != 0 {
		visibility |= gputypes.ShaderStageVertex
	}
	if stages&pipeline.StageFragment != 0 {
		visibility |= gputypes.ShaderStageFragment
	}
	return visibility, nil
}

// destroyLayouts releases already created bind group layouts after a
// partial failure.
func destroyLayouts(device hal.Device, layouts []hal.BindGroupLayout) {
	for _, l := range layouts {
		if l != nil {
			device.DestroyBindGroupLayout(l)
		}
	}
}
