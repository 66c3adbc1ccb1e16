// Package pipeline builds graphics pipeline objects for a rendering engine.
//
// Given a declarative [PipelineCreateInfo] (per-stage shader modules plus the
// name of the render pass the pipeline targets), the package reflects over the
// compiled shader IR of every stage, derives the complete resource binding
// interface and vertex input layout, validates consistency across stages, and
// delegates allocation of the actual GPU objects to a [Device] implementation.
//
// # Architecture
//
//	              +------------------+
//	              | PipelineStorage  |  name -> Pipeline cache
//	              +--------+---------+
//	                       |
//	              +--------v---------+
//	              | interface builder|  per-stage reflection,
//	              |  (binding table) |  binding merge, vertex fields
//	              +--------+---------+
//	                       |
//	         +-------------+-------------+
//	         |                           |
//	+--------v--------+         +--------v--------+
//	|  shader package |         |     Device      |
//	| (naga IR walk)  |         | (backend/wgpu)  |
//	+-----------------+         +-----------------+
//
// [PipelineStorage] is the entry point: [PipelineStorage.Build] resolves the
// render pass metadata through a [RenderpassRegistry], constructs the pipeline
// interface, asks the [Device] for the backend pipeline object, and caches the
// result under the pipeline's name. [PipelineStorage.Lookup] returns cached
// pipelines.
//
// # Binding reflection
//
// Each shader stage contributes the resources it declares (textures, samplers,
// uniform and storage buffers) to a single name-keyed [BindingTable]. A
// resource declared identically in several stages is merged into one
// descriptor whose stage mask covers all of them. Two resources that share a
// name but differ in shape are a binding conflict: the conflict is logged, the
// first-seen descriptor is retained, and the table records the collision for
// callers that want to treat it as fatal.
//
// Reflection cannot currently distinguish bounded from unbounded arrays, so
// every array-typed resource is reported unbounded. This is a known
// limitation of the reflection contract, not something this package infers
// around.
//
// # Logging
//
// The package is silent by default. Call [SetLogger] to receive diagnostics:
// binding conflicts and unsupported vertex types at error level, per-resource
// discovery during reflection at debug level.
package pipeline
