package shader

import (
	"errors"
	"testing"

	"github.com/gogpu/naga/ir"
)

func TestSourceValidate(t *testing.T) {
	var nilSrc *Source
	if err := nilSrc.Validate(); !errors.Is(err, ErrNilModule) {
		t.Errorf("nil source error = %v, want ErrNilModule", err)
	}

	empty := &Source{Name: "empty"}
	if err := empty.Validate(); !errors.Is(err, ErrNilModule) {
		t.Errorf("module-less source error = %v, want ErrNilModule", err)
	}

	ok := &Source{Name: "ok", Module: &ir.Module{}}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestCompileWGSLEmpty(t *testing.T) {
	if _, err := CompileWGSL("empty", ""); !errors.Is(err, ErrEmptySource) {
		t.Errorf("CompileWGSL(\"\") error = %v, want ErrEmptySource", err)
	}
}

const roundTripWGSL = `
@group(0) @binding(0) var<uniform> tint: vec4<f32>;

struct VertexInput {
    @location(0) position: vec4<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return in.position + tint;
}
`

func TestCompileWGSLRoundTrip(t *testing.T) {
	src, err := CompileWGSL("round_trip", roundTripWGSL)
	if err != nil {
		t.Fatalf("CompileWGSL: %v", err)
	}
	if err := src.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	resources := Resources(src.Module)
	if len(resources) != 1 {
		t.Fatalf("resource count = %d, want 1", len(resources))
	}
	tint := resources[0]
	if tint.Name != "tint" || tint.Kind != ResourceUniformBuffer || tint.Group != 0 || tint.Binding != 0 {
		t.Errorf("uniform resource = %+v", tint)
	}

	inputs := StageInputs(src.Module, ir.StageVertex)
	if len(inputs) != 3 {
		t.Fatalf("vertex input count = %d, want 3", len(inputs))
	}
	wantNames := []string{"position", "normal", "uv"}
	for i, in := range inputs {
		if in.Name != wantNames[i] || in.Location != uint32(i) {
			t.Errorf("input %d = %q@%d, want %q@%d", i, in.Name, in.Location, wantNames[i], i)
		}
	}

	if len(src.SPIRV) == 0 || src.SPIRV[0] != 0x07230203 {
		t.Errorf("SPIR-V encoding missing or lacks magic word: %#x", src.SPIRV[:min(1, len(src.SPIRV))])
	}
}

func TestSpirvWords(t *testing.T) {
	// SPIR-V magic number in little-endian byte order.
	b := []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x01, 0x00, 0x00}
	words := spirvWords(b)
	if len(words) != 2 {
		t.Fatalf("word count = %d, want 2", len(words))
	}
	if words[0] != 0x07230203 {
		t.Errorf("words[0] = %#x, want SPIR-V magic 0x07230203", words[0])
	}
	if words[1] != 0x00000100 {
		t.Errorf("words[1] = %#x", words[1])
	}
}

func TestSpirvWordsTruncated(t *testing.T) {
	// Trailing bytes that do not fill a word are dropped.
	words := spirvWords([]byte{0x01, 0x00, 0x00, 0x00, 0xFF, 0xFF})
	if len(words) != 1 || words[0] != 1 {
		t.Errorf("words = %v, want [1]", words)
	}
}
