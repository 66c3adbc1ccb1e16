package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pipeline"
)

// Interface holds the HAL layout objects and attachment formats shared
// by every pipeline built against the same binding table.
type Interface struct {
	device           hal.Device
	bindGroupLayouts []hal.BindGroupLayout
	pipelineLayout   hal.PipelineLayout

	colorFormats []gputypes.TextureFormat
	depthFormat  gputypes.TextureFormat

	fields []pipeline.VertexField
}

func newInterface(device hal.Device, layouts []hal.BindGroupLayout, pipelineLayout hal.PipelineLayout, colorAttachments []pipeline.AttachmentInfo, depthAttachment *pipeline.AttachmentInfo) *Interface {
	iface := &Interface{
		device:           device,
		bindGroupLayouts: layouts,
		pipelineLayout:   pipelineLayout,
		colorFormats:     make([]gputypes.TextureFormat, len(colorAttachments)),
		depthFormat:      gputypes.TextureFormatUndefined,
	}
	for i, att := range colorAttachments {
		iface.colorFormats[i] = att.Format
	}
	if depthAttachment != nil {
		iface.depthFormat = depthAttachment.Format
	}
	return iface
}

// VertexFields returns the vertex input fields reflected from the
// vertex shader, in location order.
func (i *Interface) VertexFields() []pipeline.VertexField {
	return i.fields
}

// SetVertexFields records the reflected vertex input fields.
func (i *Interface) SetVertexFields(fields []pipeline.VertexField) {
	i.fields = fields
}

// BindGroupLayouts returns the per-set HAL layouts, dense from set 0.
func (i *Interface) BindGroupLayouts() []hal.BindGroupLayout {
	return i.bindGroupLayouts
}

// Destroy releases the HAL layout objects.
func (i *Interface) Destroy() {
	if i.pipelineLayout != nil {
		i.device.DestroyPipelineLayout(i.pipelineLayout)
		i.pipelineLayout = nil
	}
	destroyLayouts(i.device, i.bindGroupLayouts)
	i.bindGroupLayouts = nil
}
