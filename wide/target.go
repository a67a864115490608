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

package wide

import (
	"fmt"
	"slices"
	"strings"
)

// DispatchLevel identifies the instruction set family of a target.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD registers, pure Go implementation.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline, 128-bit).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON

	// DispatchVMX indicates PowerPC AltiVec/VMX instructions (128-bit SIMD
	// without 64-bit lanes).
	DispatchVMX
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	case DispatchVMX:
		return "vmx"
	default:
		return "unknown"
	}
}

// widthSet is a bit set of lane widths in bytes: bit w is set when lanes of
// w bytes are held natively.
type widthSet uint16

func widths(ws ...int) widthSet {
	var s widthSet
	for _, w := range ws {
		s |= 1 << w
	}
	return s
}

func (s widthSet) has(w int) bool {
	return s&(1<<w) != 0
}

// Target describes the capabilities of an instruction set: the width of its
// vector registers, which element types those registers hold, and whether the
// platform honours IEEE infinities and NaNs.
//
// Targets are immutable once built; the package-level targets must not be
// modified.
type Target struct {
	// Name identifies the target ("avx2", "neon", ...).
	Name string

	// Level is the instruction set family.
	Level DispatchLevel

	// Width is the register width in bytes; 0 means no vector registers.
	Width int

	intWidths   widthSet
	floatWidths widthSet

	// SupportsInfinites reports whether kernels may rely on IEEE infinities.
	SupportsInfinites bool

	// SupportsInvalids reports whether kernels may rely on NaN propagation.
	SupportsInvalids bool
}

// Built-in targets.
var (
	// TargetScalar has no vector registers: every vector is emulated.
	TargetScalar = &Target{
		Name: "scalar", Level: DispatchScalar,
		SupportsInfinites: true, SupportsInvalids: true,
	}

	// TargetSSE2 is the x86-64 baseline: 128-bit registers.
	TargetSSE2 = &Target{
		Name: "sse2", Level: DispatchSSE2, Width: 16,
		intWidths: widths(1, 2, 4, 8), floatWidths: widths(4, 8),
		SupportsInfinites: true, SupportsInvalids: true,
	}

	// TargetAVX2 has 256-bit registers.
	TargetAVX2 = &Target{
		Name: "avx2", Level: DispatchAVX2, Width: 32,
		intWidths: widths(1, 2, 4, 8), floatWidths: widths(4, 8),
		SupportsInfinites: true, SupportsInvalids: true,
	}

	// TargetAVX512 has 512-bit registers.
	TargetAVX512 = &Target{
		Name: "avx512", Level: DispatchAVX512, Width: 64,
		intWidths: widths(1, 2, 4, 8), floatWidths: widths(4, 8),
		SupportsInfinites: true, SupportsInvalids: true,
	}

	// TargetNEON is AArch64 Advanced SIMD: 128-bit registers.
	TargetNEON = &Target{
		Name: "neon", Level: DispatchNEON, Width: 16,
		intWidths: widths(1, 2, 4, 8), floatWidths: widths(4, 8),
		SupportsInfinites: true, SupportsInvalids: true,
	}

	// TargetVMX is PowerPC AltiVec: 128-bit registers without 64-bit lanes,
	// so int64, uint64 and float64 vectors are emulated.
	TargetVMX = &Target{
		Name: "vmx", Level: DispatchVMX, Width: 16,
		intWidths: widths(1, 2, 4), floatWidths: widths(4),
		SupportsInfinites: true, SupportsInvalids: true,
	}

	// TargetAVX2FastMath is AVX2 for code compiled without IEEE special values.
	TargetAVX2FastMath = &Target{
		Name: "avx2-fastmath", Level: DispatchAVX2, Width: 32,
		intWidths: widths(1, 2, 4, 8), floatWidths: widths(4, 8),
	}
)

var builtinTargets = []*Target{
	TargetScalar, TargetSSE2, TargetAVX2, TargetAVX512, TargetNEON, TargetVMX, TargetAVX2FastMath,
}

// Targets returns the built-in targets.
func Targets() []*Target {
	return slices.Clone(builtinTargets)
}

// LookupTarget returns the built-in target with the given name.
func LookupTarget(name string) (*Target, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range builtinTargets {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
}

// Supports reports whether the target's registers hold lanes of type e.
func (t *Target) Supports(e ElementType) bool {
	if t.Width == 0 {
		return false
	}
	if e.Kind == KindFloat {
		return t.floatWidths.has(e.Width)
	}
	return t.intWidths.has(e.Width)
}

// MaxLanes returns the number of lanes of type e in one register, or 0 when
// the target cannot hold e natively.
func (t *Target) MaxLanes(e ElementType) int {
	if !t.Supports(e) {
		return 0
	}
	return t.Width / e.Width
}

// WithoutSpecialValues returns a copy of t with the given IEEE special value
// support cleared.
func (t *Target) WithoutSpecialValues(infinities, nans bool) *Target {
	c := *t
	if infinities {
		c.SupportsInfinites = false
	}
	if nans {
		c.SupportsInvalids = false
	}
	if c != *t {
		c.Name = t.Name + "-nofinite"
	}
	return &c
}

// String returns the target name.
func (t *Target) String() string {
	return t.Name
}

// ExpectedCardinal returns the natural lane count for T on t: one register's
// worth of lanes. Targets without a register for T use 16 bytes, so vectors
// keep the same lane count as on 128-bit hardware.
//
// For example, with AVX2 (32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
//   - int8: 32/1 = 32 lanes
func ExpectedCardinal[T Lanes](t *Target) int {
	e := ElementTypeOf[T]()
	if n := t.MaxLanes(e); n > 0 {
		return n
	}
	return 16 / e.Width
}

// MaxLanes returns the expected cardinal of T on the current target.
func MaxLanes[T Lanes]() int {
	return ExpectedCardinal[T](CurrentTarget())
}
