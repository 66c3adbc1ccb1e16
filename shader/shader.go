package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/wgsl"
)

// Shader source errors.
var (
	// ErrNilModule is returned when a Source carries no compiled module.
	ErrNilModule = errors.New("shader: nil IR module")

	// ErrEmptySource is returned when compiling an empty source string.
	ErrEmptySource = errors.New("shader: empty source")
)

// Source is one shader stage's compiled code.
//
// Module is the lowered naga IR the reflection pass operates on. SPIRV is
// the same shader encoded as SPIR-V words for backends that consume SPIR-V
// directly; it may be nil when the engine feeds the backend some other way.
type Source struct {
	// Name identifies the shader in diagnostics (typically the file name).
	Name string

	// Module is the compiled intermediate representation.
	Module *ir.Module

	// SPIRV is the SPIR-V encoding of the module, little-endian words.
	SPIRV []uint32
}

// Validate reports whether the source is usable for reflection.
func (s *Source) Validate() error {
	if s == nil || s.Module == nil {
		return ErrNilModule
	}
	return nil
}

// CompileWGSL parses and lowers WGSL text into a Source, including the
// SPIR-V encoding. It is a loading convenience; the pipeline builder never
// compiles source itself and accepts any Source with a populated Module.
func CompileWGSL(name, source string) (*Source, error) {
	if source == "" {
		return nil, ErrEmptySource
	}

	tokens, err := wgsl.NewLexer(source).Tokenize()
	if err != nil {
		return nil, fmt.Errorf("shader %s: tokenize: %w", name, err)
	}

	ast, err := wgsl.NewParser(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("shader %s: parse: %w", name, err)
	}

	module, err := wgsl.Lower(ast)
	if err != nil {
		return nil, fmt.Errorf("shader %s: lower: %w", name, err)
	}

	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: compile to SPIR-V: %w", name, err)
	}

	return &Source{
		Name:   name,
		Module: module,
		SPIRV:  spirvWords(spirvBytes),
	}, nil
}

// spirvWords converts SPIR-V bytes to the uint32 word stream the device
// layer consumes. SPIR-V is little-endian 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
