package pipeline

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/gogpu/pipeline/shader"
)

// StageFlags is a bitmask of the shader stages that reference a binding.
type StageFlags uint8

const (
	// StageVertex is the vertex stage.
	StageVertex StageFlags = 1 << iota

	// StageTessellationControl is the tessellation control (hull) stage.
	StageTessellationControl

	// StageTessellationEvaluation is the tessellation evaluation (domain)
	// stage.
	StageTessellationEvaluation

	// StageGeometry is the geometry stage.
	StageGeometry

	// StageFragment is the fragment stage.
	StageFragment
)

// stageNames lists the flag names in bit order for String.
var stageNames = [...]string{
	"vertex",
	"tessellation-control",
	"tessellation-evaluation",
	"geometry",
	"fragment",
}

// String returns the set stages as a "|"-joined list, or "none".
func (s StageFlags) String() string {
	if s == 0 {
		return "none"
	}
	var names []string
	for i, name := range stageNames {
		if s&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// ResourceBindingDescriptor describes where and how one named shader
// resource is bound.
type ResourceBindingDescriptor struct {
	// Set is the descriptor set index.
	Set uint32

	// Binding is the slot within the set.
	Binding uint32

	// Kind is the resource classification.
	Kind shader.ResourceKind

	// Count is the number of array elements, 1 for non-arrays and 0 for
	// runtime-sized arrays.
	Count uint32

	// Unbounded marks array bindings. Reflection reports every array as
	// unbounded; see the package documentation.
	Unbounded bool

	// Stages is the set of stages that reference the binding. It widens
	// as the same resource is discovered in more stages.
	Stages StageFlags
}

// EquivalentTo reports structural equality: everything except the stage
// mask, which merging is allowed to widen.
func (d ResourceBindingDescriptor) EquivalentTo(o ResourceBindingDescriptor) bool {
	return d.Set == o.Set &&
		d.Binding == o.Binding &&
		d.Kind == o.Kind &&
		d.Count == o.Count &&
		d.Unbounded == o.Unbounded
}

// BindingConflict records two structurally different bindings declared
// under the same resource name in different stages.
type BindingConflict struct {
	// Name is the colliding resource name.
	Name string

	// Existing is the descriptor that was retained.
	Existing ResourceBindingDescriptor

	// Incoming is the descriptor that was rejected.
	Incoming ResourceBindingDescriptor
}

// BindingTable accumulates resource binding descriptors across the stages
// of one pipeline, keyed by resource name.
//
// A table is built fresh for every pipeline build and is owned exclusively
// by that build; it is not safe for concurrent use and does not need to be.
type BindingTable struct {
	entries   map[string]ResourceBindingDescriptor
	conflicts []BindingConflict
}

// NewBindingTable returns an empty table.
func NewBindingTable() *BindingTable {
	return &BindingTable{
		entries: make(map[string]ResourceBindingDescriptor),
	}
}

// Insert adds a descriptor under the given resource name, merging with an
// existing entry when both describe the same binding.
//
// Three outcomes are possible:
//   - No entry exists for the name: the descriptor is inserted.
//   - An entry exists and is structurally equivalent: the entry's stage
//     mask is widened to include the new descriptor's stages. This is the
//     expected case for a resource declared identically in several stages.
//   - An entry exists and differs structurally: the same name denotes two
//     incompatible bindings. The conflict is logged and recorded, and the
//     first-seen descriptor is retained.
func (t *BindingTable) Insert(name string, desc ResourceBindingDescriptor) {
	existing, ok := t.entries[name]
	if !ok {
		t.entries[name] = desc
		return
	}

	if existing.EquivalentTo(desc) {
		// Same binding, discovered in another stage.
		existing.Stages |= desc.Stages
		t.entries[name] = existing
		return
	}

	Logger().Error("two different bindings share one resource name across shader stages; use unique names",
		slog.String("resource", name),
		slog.Group("existing",
			slog.Int("set", int(existing.Set)),
			slog.Int("binding", int(existing.Binding)),
			slog.String("kind", existing.Kind.String()),
			slog.String("stages", existing.Stages.String())),
		slog.Group("incoming",
			slog.Int("set", int(desc.Set)),
			slog.Int("binding", int(desc.Binding)),
			slog.String("kind", desc.Kind.String()),
			slog.String("stages", desc.Stages.String())))
	t.conflicts = append(t.conflicts, BindingConflict{
		Name:     name,
		Existing: existing,
		Incoming: desc,
	})
}

// Get returns the descriptor stored under name.
func (t *BindingTable) Get(name string) (ResourceBindingDescriptor, bool) {
	desc, ok := t.entries[name]
	return desc, ok
}

// Len returns the number of distinct resource names in the table.
func (t *BindingTable) Len() int {
	return len(t.entries)
}

// Names returns the resource names in sorted order so that backends
// produce deterministic layouts from the unordered table.
func (t *BindingTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Conflicts returns the naming conflicts recorded during accumulation.
// Conflicts do not abort a build by default; callers with a stricter
// policy can check this after interface construction and reject.
func (t *BindingTable) Conflicts() []BindingConflict {
	return t.conflicts
}
