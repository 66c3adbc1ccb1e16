package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/ir"
)

// VertexFieldFormat is the closed set of vertex attribute formats the
// engine supports.
type VertexFieldFormat uint8

const (
	// VertexFieldInvalid marks a field whose reflected type has no
	// supported format. Invalid fields are kept in the field list so the
	// layout stays positionally aligned with the shader.
	VertexFieldInvalid VertexFieldFormat = iota

	// VertexFieldUint is a single unsigned 32-bit integer.
	VertexFieldUint

	// VertexFieldFloat2 is a two-component 32-bit float vector.
	VertexFieldFloat2

	// VertexFieldFloat3 is a three-component 32-bit float vector.
	VertexFieldFloat3

	// VertexFieldFloat4 is a four-component 32-bit float vector.
	VertexFieldFloat4
)

// String returns the format name.
func (f VertexFieldFormat) String() string {
	switch f {
	case VertexFieldUint:
		return "uint"
	case VertexFieldFloat2:
		return "float2"
	case VertexFieldFloat3:
		return "float3"
	case VertexFieldFloat4:
		return "float4"
	default:
		return "invalid"
	}
}

// GPUFormat returns the matching gputypes vertex format for backends.
// The second result is false for VertexFieldInvalid.
func (f VertexFieldFormat) GPUFormat() (gputypes.VertexFormat, bool) {
	switch f {
	case VertexFieldUint:
		return gputypes.VertexFormatUint32, true
	case VertexFieldFloat2:
		return gputypes.VertexFormatFloat32x2, true
	case VertexFieldFloat3:
		return gputypes.VertexFormatFloat32x3, true
	case VertexFieldFloat4:
		return gputypes.VertexFormatFloat32x4, true
	default:
		return 0, false
	}
}

// Size returns the field's byte size in a packed vertex, 0 for invalid.
func (f VertexFieldFormat) Size() uint64 {
	switch f {
	case VertexFieldUint:
		return 4
	case VertexFieldFloat2:
		return 8
	case VertexFieldFloat3:
		return 12
	case VertexFieldFloat4:
		return 16
	default:
		return 0
	}
}

// VertexField is one vertex input attribute: its shader name and format.
type VertexField struct {
	Name   string
	Format VertexFieldFormat
}

// vertexFormatOf maps a reflected input type to a vertex field format.
//
// The mapping is total: unsigned 32-bit scalars map to uint, 32-bit float
// vectors of width 2/3/4 map to the matching floatN, and everything else
// maps to invalid with a diagnostic naming the unsupported type. Invalid
// is a reported outcome, not a failure.
func vertexFormatOf(t ir.TypeInner) VertexFieldFormat {
	switch tt := t.(type) {
	case ir.ScalarType:
		if tt.Kind == ir.ScalarUint && tt.Width == 4 {
			return VertexFieldUint
		}

	case ir.VectorType:
		if tt.Scalar.Kind == ir.ScalarFloat && tt.Scalar.Width == 4 {
			switch tt.Size {
			case ir.Vec2:
				return VertexFieldFloat2
			case ir.Vec3:
				return VertexFieldFloat3
			case ir.Vec4:
				return VertexFieldFloat4
			default:
				Logger().Error("unsupported float vector width for vertex field",
					slog.Int("width", int(tt.Size)))
				return VertexFieldInvalid
			}
		}
	}

	Logger().Error("unsupported vertex field type",
		slog.String("type", irTypeName(t)))
	return VertexFieldInvalid
}

// irTypeName names an IR type for diagnostics.
func irTypeName(t ir.TypeInner) string {
	switch tt := t.(type) {
	case ir.ScalarType:
		return fmt.Sprintf("%s scalar (width %d)", scalarKindName(tt.Kind), tt.Width)
	case ir.VectorType:
		return fmt.Sprintf("vec%d<%s>", tt.Size, scalarKindName(tt.Scalar.Kind))
	case ir.MatrixType:
		return "matrix"
	case ir.ArrayType:
		return "array"
	case ir.StructType:
		return "struct"
	case ir.ImageType:
		return "image"
	case ir.SamplerType:
		return "sampler"
	case ir.PointerType:
		return "pointer"
	case nil:
		return "unknown"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// scalarKindName names a scalar kind for diagnostics.
func scalarKindName(k ir.ScalarKind) string {
	switch k {
	case ir.ScalarFloat:
		return "float"
	case ir.ScalarSint:
		return "sint"
	case ir.ScalarUint:
		return "uint"
	case ir.ScalarBool:
		return "bool"
	default:
		return "unknown"
	}
}
