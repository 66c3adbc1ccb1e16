package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/naga/ir"

	"github.com/gogpu/pipeline/shader"
)

// collectStageBindings reflects one stage's module and inserts every
// declared resource into the table with the stage's flag as its initial
// stage mask. Insertion merges with resources already discovered in
// earlier stages.
func collectStageBindings(table *BindingTable, src *shader.Source, stage StageFlags) {
	for _, res := range shader.Resources(src.Module) {
		Logger().Debug("found shader resource",
			slog.String("shader", src.Name),
			slog.String("resource", res.Name),
			slog.String("kind", res.Kind.String()),
			slog.Int("set", int(res.Group)),
			slog.Int("binding", int(res.Binding)))

		table.Insert(res.Name, ResourceBindingDescriptor{
			Set:       res.Group,
			Binding:   res.Binding,
			Kind:      res.Kind,
			Count:     res.Count,
			Unbounded: res.Unbounded,
			Stages:    stage,
		})
	}
}

// vertexFields derives the ordered vertex input layout from the vertex
// stage's module. Fields whose type has no supported format are kept with
// an invalid format so the list stays aligned with the shader's declared
// inputs; downstream consumers rely on name presence.
func vertexFields(src *shader.Source) []VertexField {
	inputs := shader.StageInputs(src.Module, ir.StageVertex)

	fields := make([]VertexField, 0, len(inputs))
	for _, in := range inputs {
		fields = append(fields, VertexField{
			Name:   in.Name,
			Format: vertexFormatOf(in.Type),
		})
	}
	return fields
}

// createPipelineInterface accumulates bindings across all present stages,
// delegates backend layout creation to the device, and attaches the
// derived vertex fields to the returned interface.
func (s *PipelineStorage) createPipelineInterface(info *PipelineCreateInfo, colorAttachments []AttachmentInfo, depthAttachment *AttachmentInfo) (PipelineInterface, error) {
	table := NewBindingTable()
	for _, st := range info.stages() {
		collectStageBindings(table, st.source, st.stage)
	}

	iface, err := s.device.CreatePipelineInterface(table, colorAttachments, depthAttachment)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: create interface: %w", info.Name, err)
	}

	iface.SetVertexFields(vertexFields(info.VertexShader))
	return iface, nil
}
