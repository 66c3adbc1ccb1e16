package wgpu

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pipeline"
	"github.com/gogpu/pipeline/shader"
)

var pipelineIDCounter atomic.Uint64

func nextPipelineID() uint64 {
	return pipelineIDCounter.Add(1)
}

// RenderPipeline is the handle returned by [Device.CreatePipeline].
//
// The HAL does not expose render pipeline objects yet, so the handle
// owns the compiled shader modules and a hash of the full descriptor.
// The hash lets callers detect descriptor changes across rebuilds
// without comparing descriptors field by field.
type RenderPipeline struct {
	id    uint64
	label string
	hash  uint64

	device  hal.Device
	modules []hal.ShaderModule
}

// ID returns the process-unique pipeline id.
func (p *RenderPipeline) ID() uint64 { return p.id }

// Label returns the pipeline name.
func (p *RenderPipeline) Label() string { return p.label }

// DescriptorHash returns the FNV-1a hash of the pipeline descriptor.
func (p *RenderPipeline) DescriptorHash() uint64 { return p.hash }

// Destroy releases the shader modules owned by the pipeline.
func (p *RenderPipeline) Destroy() {
	for _, m := range p.modules {
		if m != nil {
			p.device.DestroyShaderModule(m)
		}
	}
	p.modules = nil
}

// CreatePipeline compiles the shader stages into HAL shader modules and
// builds a pipeline handle against the given interface. The interface
// must come from this backend's CreatePipelineInterface.
func (d *Device) CreatePipeline(iface pipeline.PipelineInterface, info *pipeline.PipelineCreateInfo) (pipeline.PipelineHandle, error) {
	in, ok := iface.(*Interface)
	if !ok {
		return nil, ErrForeignInterface
	}
	if info.TessellationControlShader != nil ||
		info.TessellationEvaluationShader != nil ||
		info.GeometryShader != nil {
		return nil, fmt.Errorf("%w: pipeline %q", ErrUnsupportedStage, info.Name)
	}

	layout, err := buildVertexLayout(in.fields)
	if err != nil {
		return nil, fmt.Errorf("wgpu: pipeline %q: %w", info.Name, err)
	}

	var modules []hal.ShaderModule
	fail := func(err error) (pipeline.PipelineHandle, error) {
		for _, m := range modules {
			d.hal.DestroyShaderModule(m)
		}
		return nil, err
	}

	vertex, err := d.createModule(info.Name+"_vs", info.VertexShader)
	if err != nil {
		return fail(fmt.Errorf("wgpu: pipeline %q: vertex stage: %w", info.Name, err))
	}
	modules = append(modules, vertex)

	if info.FragmentShader != nil {
		fragment, err := d.createModule(info.Name+"_fs", info.FragmentShader)
		if err != nil {
			return fail(fmt.Errorf("wgpu: pipeline %q: fragment stage: %w", info.Name, err))
		}
		modules = append(modules, fragment)
	}

	return &RenderPipeline{
		id:      nextPipelineID(),
		label:   info.Name,
		hash:    hashDescriptor(info, in, layout),
		device:  d.hal,
		modules: modules,
	}, nil
}

func (d *Device) createModule(label string, src *shader.Source) (hal.ShaderModule, error) {
	if len(src.SPIRV) == 0 {
		return nil, fmt.Errorf("%w: shader %q", ErrNoSPIRV, src.Name)
	}
	module, err := d.hal.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: src.SPIRV},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", err)
	}
	return module, nil
}

// vertexAttribute is one attribute within an interleaved vertex buffer.
type vertexAttribute struct {
	Format         gputypes.VertexFormat
	Offset         uint64
	ShaderLocation uint32
}

// vertexLayout describes a single interleaved vertex buffer.
type vertexLayout struct {
	ArrayStride uint64
	Attributes  []vertexAttribute
}

// buildVertexLayout packs the reflected vertex fields into one
// interleaved buffer, in field order, with natural offsets.
func buildVertexLayout(fields []pipeline.VertexField) (vertexLayout, error) {
	var layout vertexLayout
	for i, f := range fields {
		format, ok := f.Format.GPUFormat()
		if !ok {
			return vertexLayout{}, fmt.Errorf("%w: field %q", ErrInvalidVertexField, f.Name)
		}
		layout.Attributes = append(layout.Attributes, vertexAttribute{
			Format:         format,
			Offset:         layout.ArrayStride,
			ShaderLocation: uint32(i), //nolint:gosec // field count is tiny
		})
		layout.ArrayStride += f.Format.Size()
	}
	return layout, nil
}

// hashDescriptor computes an FNV-1a hash over everything that defines
// the pipeline: shader words, vertex layout, fixed-function state, and
// the attachment formats recorded on the interface.
func hashDescriptor(info *pipeline.PipelineCreateInfo, iface *Interface, layout vertexLayout) uint64 {
	h := fnv.New64a()

	hashString(h, info.Name)
	hashWords(h, info.VertexShader.SPIRV)
	if info.FragmentShader != nil {
		hashWords(h, info.FragmentShader.SPIRV)
	}

	hashUint64(h, layout.ArrayStride)
	for _, attr := range layout.Attributes {
		hashUint32(h, uint32(attr.Format))
		hashUint64(h, attr.Offset)
		hashUint32(h, attr.ShaderLocation)
	}

	state := info.State
	hashUint32(h, uint32(state.Topology))
	hashUint32(h, uint32(state.FrontFace))
	hashUint32(h, uint32(state.CullMode))
	hashBool(h, state.DepthWriteEnabled)
	hashUint32(h, uint32(state.DepthCompare))
	if state.Blend != nil {
		hashUint32(h, uint32(state.Blend.Color.SrcFactor))
		hashUint32(h, uint32(state.Blend.Color.DstFactor))
		hashUint32(h, uint32(state.Blend.Color.Operation))
		hashUint32(h, uint32(state.Blend.Alpha.SrcFactor))
		hashUint32(h, uint32(state.Blend.Alpha.DstFactor))
		hashUint32(h, uint32(state.Blend.Alpha.Operation))
	}
	hashUint32(h, state.SampleCount)

	for _, format := range iface.colorFormats {
		hashUint32(h, uint32(format))
	}
	hashUint32(h, uint32(iface.depthFormat))

	return h.Sum64()
}

func hashString(h hash.Hash64, s string) {
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
}

func hashWords(h hash.Hash64, words []uint32) {
	for _, w := range words {
		hashUint32(h, w)
	}
}

func hashUint32(h hash.Hash64, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, _ = h.Write(buf[:])
}

func hashUint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

func hashBool(h hash.Hash64, v bool) {
	var b byte
	if v {
		b = 1
	}
	_, _ = h.Write([]byte{b})
}
