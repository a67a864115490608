// Copyright 2026 go-wide Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package wide provides portable vector values whose storage strategy is
// resolved from the element type, the lane count and the target's SIMD
// capabilities.
//
// A Wide[T] is backed by one of four ABIs: a single native register, an
// emulated element array, an aggregate of two half-width values, or a plain
// scalar. Operations are function objects (Unary, Binary, Predicate) carrying a
// scalar kernel and optionally a register kernel. The dispatch resolver picks
// the implementation for every call:
//
//   - emulated operands map the scalar kernel over their lanes,
//   - aggregated operands recurse into both halves and recombine,
//   - native operands use the register kernel when one exists,
//   - mismatched shapes are coerced (broadcast or re-shaped) and retried.
//
// Policies (Saturated, Upward, Downward, If, IfNot, Derivative) decorate an
// operation and go through the same resolver, so they work for every ABI.
//
// Basic usage:
//
//	a := wide.Load([]int32{1, 2, 3, 4}, wide.WithCardinal(4))
//	b := wide.Broadcast[int32](math.MaxInt32, wide.WithCardinal(4))
//	sum := wide.SaturatedAdd(a, b)
//	fmt.Println(sum) // (2147483647, 2147483647, 2147483647, 2147483647)
package wide

import (
	"fmt"
	"unsafe"
)

// Floats is a constraint for floating-point lane types.
type Floats interface {
	float32 | float64
}

// SignedInts is a constraint for signed integer lane types.
type SignedInts interface {
	int8 | int16 | int32 | int64
}

// UnsignedInts is a constraint for unsigned integer lane types.
type UnsignedInts interface {
	uint8 | uint16 | uint32 | uint64
}

// Integers is a constraint for all integer lane types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in vector lanes.
type Lanes interface {
	Floats | Integers
}

// Kind is the arithmetic category of an element type.
type Kind uint8

const (
	// KindSigned is a two's-complement signed integer.
	KindSigned Kind = iota
	// KindUnsigned is an unsigned integer.
	KindUnsigned
	// KindFloat is an IEEE-754 binary floating-point number.
	KindFloat
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindSigned:
		return "signed"
	case KindUnsigned:
		return "unsigned"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// ElementType describes a lane type structurally: two element types are the
// same when their kind and width agree.
type ElementType struct {
	Kind Kind
	// Width is the size of one lane in bytes (1, 2, 4 or 8).
	Width int
}

// Bits returns the lane width in bits.
func (e ElementType) Bits() int {
	return e.Width * 8
}

// String returns the Go spelling of the element type ("int32", "float64", ...).
func (e ElementType) String() string {
	switch e.Kind {
	case KindSigned:
		return fmt.Sprintf("int%d", e.Bits())
	case KindUnsigned:
		return fmt.Sprintf("uint%d", e.Bits())
	case KindFloat:
		return fmt.Sprintf("float%d", e.Bits())
	default:
		return "invalid"
	}
}

// ParseElementType parses the Go spelling of a lane type.
func ParseElementType(s string) (ElementType, error) {
	switch s {
	case "int8":
		return ElementType{KindSigned, 1}, nil
	case "int16":
		return ElementType{KindSigned, 2}, nil
	case "int32":
		return ElementType{KindSigned, 4}, nil
	case "int64":
		return ElementType{KindSigned, 8}, nil
	case "uint8":
		return ElementType{KindUnsigned, 1}, nil
	case "uint16":
		return ElementType{KindUnsigned, 2}, nil
	case "uint32":
		return ElementType{KindUnsigned, 4}, nil
	case "uint64":
		return ElementType{KindUnsigned, 8}, nil
	case "float32":
		return ElementType{KindFloat, 4}, nil
	case "float64":
		return ElementType{KindFloat, 8}, nil
	}
	return ElementType{}, fmt.Errorf("unknown element type %q", s)
}

// ElementTypeOf returns the element type descriptor for T.
func ElementTypeOf[T Lanes]() ElementType {
	var zero T
	width := int(unsafe.Sizeof(zero))
	switch any(zero).(type) {
	case float32, float64:
		return ElementType{Kind: KindFloat, Width: width}
	case int8, int16, int32, int64:
		return ElementType{Kind: KindSigned, Width: width}
	default:
		return ElementType{Kind: KindUnsigned, Width: width}
	}
}

// IsFloating reports whether T is a floating-point type.
func IsFloating[T Lanes]() bool {
	return ElementTypeOf[T]().Kind == KindFloat
}

// IsSigned reports whether T is a signed integer type.
func IsSigned[T Lanes]() bool {
	return ElementTypeOf[T]().Kind == KindSigned
}

// IsUnsigned reports whether T is an unsigned integer type.
func IsUnsigned[T Lanes]() bool {
	return ElementTypeOf[T]().Kind == KindUnsigned
}

// IsIntegral reports whether T is an integer type.
func IsIntegral[T Lanes]() bool {
	return ElementTypeOf[T]().Kind != KindFloat
}

// Class is the classification of an operand: scalar or vector, numeric or
// logical, its element type and lane count.
type Class struct {
	Vector   bool
	Logical  bool
	Element  ElementType
	Cardinal int
	ABI      ABI
}

// Scalar reports whether the operand is a plain scalar.
func (c Class) Scalar() bool {
	return !c.Vector
}

// classifier is implemented by Wide and Logical.
type classifier interface {
	class() Class
}

// Classify reports the classification of v. It returns false when v is not a
// lane scalar, a bool, a Wide or a Logical.
func Classify(v any) (Class, bool) {
	if c, ok := v.(classifier); ok {
		return c.class(), true
	}
	switch v.(type) {
	case int8:
		return scalarClass[int8](), true
	case int16:
		return scalarClass[int16](), true
	case int32:
		return scalarClass[int32](), true
	case int64:
		return scalarClass[int64](), true
	case uint8:
		return scalarClass[uint8](), true
	case uint16:
		return scalarClass[uint16](), true
	case uint32:
		return scalarClass[uint32](), true
	case uint64:
		return scalarClass[uint64](), true
	case float32:
		return scalarClass[float32](), true
	case float64:
		return scalarClass[float64](), true
	case bool:
		return Class{Logical: true, Cardinal: 1, ABI: ABIScalar}, true
	}
	return Class{}, false
}

func scalarClass[T Lanes]() Class {
	return Class{Element: ElementTypeOf[T](), Cardinal: 1, ABI: ABIScalar}
}
