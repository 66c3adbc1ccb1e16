package pipeline

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/gogpu/pipeline/shader"
)

func TestStageFlagsString(t *testing.T) {
	tests := []struct {
		flags StageFlags
		want  string
	}{
		{0, "none"},
		{StageVertex, "vertex"},
		{StageFragment, "fragment"},
		{StageVertex | StageFragment, "vertex|fragment"},
		{StageTessellationControl | StageTessellationEvaluation, "tessellation-control|tessellation-evaluation"},
		{StageVertex | StageGeometry | StageFragment, "vertex|geometry|fragment"},
	}
	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("StageFlags(%#b).String() = %q, want %q", tt.flags, got, tt.want)
		}
	}
}

func TestBindingTableInsert(t *testing.T) {
	table := NewBindingTable()
	desc := ResourceBindingDescriptor{
		Set: 0, Binding: 1,
		Kind:   shader.ResourceUniformBuffer,
		Count:  1,
		Stages: StageVertex,
	}
	table.Insert("camera", desc)

	got, ok := table.Get("camera")
	if !ok {
		t.Fatal("inserted binding not found")
	}
	if got != desc {
		t.Errorf("Get = %+v, want %+v", got, desc)
	}
	if table.Len() != 1 {
		t.Errorf("Len = %d, want 1", table.Len())
	}
}

func TestBindingTableMergeWidensStages(t *testing.T) {
	table := NewBindingTable()
	base := ResourceBindingDescriptor{
		Set: 0, Binding: 1,
		Kind:  shader.ResourceUniformBuffer,
		Count: 1,
	}

	vs := base
	vs.Stages = StageVertex
	table.Insert("camera", vs)

	fs := base
	fs.Stages = StageFragment
	table.Insert("camera", fs)

	got, _ := table.Get("camera")
	if got.Stages != StageVertex|StageFragment {
		t.Errorf("Stages = %s, want vertex|fragment", got.Stages)
	}
	if table.Len() != 1 {
		t.Errorf("Len = %d, want 1 after merge", table.Len())
	}
	if len(table.Conflicts()) != 0 {
		t.Errorf("equivalent merge recorded %d conflicts", len(table.Conflicts()))
	}
}

func TestBindingTableConflictRetainsFirst(t *testing.T) {
	table := NewBindingTable()
	first := ResourceBindingDescriptor{
		Set: 0, Binding: 1,
		Kind:   shader.ResourceUniformBuffer,
		Count:  1,
		Stages: StageVertex,
	}
	table.Insert("data", first)

	// Same name, different slot: a conflict, not a merge.
	second := first
	second.Binding = 2
	second.Stages = StageFragment
	table.Insert("data", second)

	got, _ := table.Get("data")
	if got.Binding != 1 {
		t.Errorf("conflict replaced the first-seen binding: slot %d", got.Binding)
	}
	if got.Stages != StageVertex {
		t.Errorf("conflict widened the stage mask: %s", got.Stages)
	}

	conflicts := table.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("conflict count = %d, want 1", len(conflicts))
	}
	c := conflicts[0]
	if c.Name != "data" || c.Existing.Binding != 1 || c.Incoming.Binding != 2 {
		t.Errorf("recorded conflict = %+v", c)
	}
}

func TestBindingConflictDiagnosticNamesShapes(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	table := NewBindingTable()
	table.Insert("data", ResourceBindingDescriptor{
		Set: 0, Binding: 1,
		Kind: shader.ResourceUniformBuffer, Count: 1,
		Stages: StageVertex,
	})
	table.Insert("data", ResourceBindingDescriptor{
		Set: 2, Binding: 3,
		Kind: shader.ResourceStorageBuffer, Count: 1,
		Stages: StageFragment,
	})

	out := buf.String()
	// The diagnostic must identify both conflicting shapes, not just the
	// stage masks.
	for _, want := range []string{
		"resource=data",
		"existing.set=0", "existing.binding=1", "existing.kind=\"uniform buffer\"",
		"incoming.set=2", "incoming.binding=3", "incoming.kind=\"storage buffer\"",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("conflict diagnostic missing %q:\n%s", want, out)
		}
	}
}

func TestBindingTableKindMismatchIsConflict(t *testing.T) {
	table := NewBindingTable()
	table.Insert("res", ResourceBindingDescriptor{
		Set: 0, Binding: 0,
		Kind: shader.ResourceTexture, Count: 1,
		Stages: StageVertex,
	})
	table.Insert("res", ResourceBindingDescriptor{
		Set: 0, Binding: 0,
		Kind: shader.ResourceSampler, Count: 1,
		Stages: StageFragment,
	})

	if len(table.Conflicts()) != 1 {
		t.Fatalf("conflict count = %d, want 1", len(table.Conflicts()))
	}
	got, _ := table.Get("res")
	if got.Kind != shader.ResourceTexture {
		t.Errorf("Kind = %v, want the first-seen texture kind", got.Kind)
	}
}

func TestBindingTableNamesSorted(t *testing.T) {
	table := NewBindingTable()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		table.Insert(name, ResourceBindingDescriptor{
			Kind: shader.ResourceUniformBuffer, Count: 1, Stages: StageVertex,
		})
	}

	want := []string{"alpha", "mid", "zeta"}
	if got := table.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}

func TestEquivalentToIgnoresStages(t *testing.T) {
	a := ResourceBindingDescriptor{
		Set: 1, Binding: 2,
		Kind: shader.ResourceStorageBuffer, Count: 1,
		Stages: StageVertex,
	}
	b := a
	b.Stages = StageFragment
	if !a.EquivalentTo(b) {
		t.Error("descriptors differing only in stages should be equivalent")
	}

	c := a
	c.Unbounded = true
	if a.EquivalentTo(c) {
		t.Error("descriptors differing in boundedness should not be equivalent")
	}
}
