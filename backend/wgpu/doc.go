// Package wgpu implements the pipeline device abstraction on top of the
// gogpu/wgpu hardware abstraction layer.
//
// [Device] translates a pipeline binding table into per-set WebGPU bind
// group layouts plus one pipeline layout (the pipeline interface), and
// allocates the pipeline object from an interface and a create info.
//
// WebGPU's binding model is narrower than the pipeline package's: it has
// no combined image samplers, no binding arrays, and no tessellation or
// geometry stages. The device rejects pipelines that need any of these;
// the rejection propagates as an interface-construction or
// pipeline-allocation failure with the offending resource named.
package wgpu
