// Package shader is the reflection layer of the pipeline builder.
//
// It operates on compiled shader modules in naga intermediate representation
// ([ir.Module]) and recovers the information the pipeline builder needs
// without re-parsing source text: the set of externally visible resource
// bindings ([Resources]) and the ordered stage inputs of an entry point
// ([StageInputs]).
//
// The package performs a single generic pass over the module's global
// variables and classifies each bound resource into a small closed set of
// kinds ([ResourceKind]). It does no merging and holds no state; callers own
// any accumulation across stages.
//
// [Source] bundles a module with its name and optional SPIR-V encoding.
// [CompileWGSL] is a loading convenience for engines that start from WGSL
// text; the pipeline builder itself only ever reads already-compiled modules.
package shader
