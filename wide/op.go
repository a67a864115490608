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

// Operation is implemented by every operation value.
type Operation interface {
	// Name returns the operation name, decorated with the policies applied
	// to it, e.g. "if(saturated(add))".
	Name() string
	// Arity returns the number of vector operands.
	Arity() int
}

// condition restricts an operation to the lanes selected by a mask.
type condition[T Lanes] struct {
	kind     string
	mask     Logical[T]
	negate   bool
	fallback *Wide[T]
}

// blend picks r in the selected lanes and the fallback (or a) elsewhere.
func (c *condition[T]) blend(r, a Wide[T]) Wide[T] {
	alt := a
	if c.fallback != nil {
		alt = *c.fallback
	}
	if c.negate {
		return IfThenElse(c.mask, alt, r)
	}
	return IfThenElse(c.mask, r, alt)
}

func decorate(kind, name string) string {
	return kind + "(" + name + ")"
}

// Unary is a lane-wise operation of one operand.
//
// A Unary always has a scalar kernel. It may also carry a register kernel,
// used when the operand is a native value, and the variants selected by the
// policy decorators.
type Unary[T Lanes] struct {
	name     string
	scalar   func(T) T
	native   native1
	vector   func(Wide[T]) Wide[T]
	residual func(x, r T) int
	sat      *Unary[T]
	deriv    *Unary[T]
	conds    []*condition[T]
}

// UnaryOption configures a Unary built with NewUnary.
type UnaryOption[T Lanes] func(*Unary[T])

// NewUnary returns an operation applying scalar to every lane.
func NewUnary[T Lanes](name string, scalar func(T) T, opts ...UnaryOption[T]) Unary[T] {
	op := Unary[T]{name: name, scalar: scalar}
	for _, opt := range opts {
		opt(&op)
	}
	return op
}

// WithVectorKernel sets a kernel that works on whole native values. Emulated
// values still use the scalar kernel, and aggregated values are split until
// they reach native halves.
func WithVectorKernel[T Lanes](f func(Wide[T]) Wide[T]) UnaryOption[T] {
	return func(op *Unary[T]) {
		op.vector = f
	}
}

// WithUnaryResidual sets the function returning the sign of the rounding
// error of r = op(x), that is the sign of (exact - r). It enables Upward and
// Downward.
func WithUnaryResidual[T Lanes](f func(x, r T) int) UnaryOption[T] {
	return func(op *Unary[T]) {
		op.residual = f
	}
}

// WithDerivative registers d as the first derivative of the operation.
func WithDerivative[T Lanes](d Unary[T]) UnaryOption[T] {
	return func(op *Unary[T]) {
		op.deriv = &d
	}
}

// WithSaturatedUnary registers s as the overflow-clamping variant.
func WithSaturatedUnary[T Lanes](s Unary[T]) UnaryOption[T] {
	return func(op *Unary[T]) {
		v := s
		v.sat = &v
		op.sat = &v
	}
}

// Name implements Operation.
func (op Unary[T]) Name() string {
	name := op.name
	for _, c := range op.conds {
		name = decorate(c.kind, name)
	}
	return name
}

// Arity implements Operation.
func (op Unary[T]) Arity() int { return 1 }

// HasNative reports whether native operands run a register or vector kernel.
func (op Unary[T]) HasNative() bool {
	return op.native != nil || op.vector != nil
}

func (op Unary[T]) kernel() unaryKernel[T] {
	return unaryKernel[T]{name: op.Name(), scalar: op.scalar, native: op.native, vector: op.vector}
}

// Apply runs the operation on every lane of a.
func (op Unary[T]) Apply(a Wide[T]) Wide[T] {
	r := op.kernel().apply(a)
	for _, c := range op.conds {
		r = c.blend(r, a)
	}
	return r
}

// Scalar runs the operation on a single value.
func (op Unary[T]) Scalar(x T) T {
	if len(op.conds) == 0 {
		return op.scalar(x)
	}
	return op.Apply(Broadcast(x, WithCardinal(1))).Get(0)
}

// Binary is a lane-wise operation of two operands. Either operand may be a
// single-lane value, which is broadcast to the other's shape.
type Binary[T Lanes] struct {
	name     string
	scalar   func(a, b T) T
	native   native2
	residual func(a, b, r T) int
	sat      *Binary[T]
	conds    []*condition[T]

	// divides marks integer division: lanes left out by the conditions
	// divide by one.
	divides bool
}

// BinaryOption configures a Binary built with NewBinary.
type BinaryOption[T Lanes] func(*Binary[T])

// NewBinary returns an operation applying scalar to every pair of lanes.
func NewBinary[T Lanes](name string, scalar func(a, b T) T, opts ...BinaryOption[T]) Binary[T] {
	op := Binary[T]{name: name, scalar: scalar}
	for _, opt := range opts {
		opt(&op)
	}
	return op
}

// WithBinaryResidual sets the function returning the sign of (exact - r)
// for r = op(a, b). It enables Upward and Downward.
func WithBinaryResidual[T Lanes](f func(a, b, r T) int) BinaryOption[T] {
	return func(op *Binary[T]) {
		op.residual = f
	}
}

// WithSaturatedBinary registers s as the overflow-clamping variant.
func WithSaturatedBinary[T Lanes](s Binary[T]) BinaryOption[T] {
	return func(op *Binary[T]) {
		v := s
		v.sat = &v
		op.sat = &v
	}
}

// Name implements Operation.
func (op Binary[T]) Name() string {
	name := op.name
	for _, c := range op.conds {
		name = decorate(c.kind, name)
	}
	return name
}

// Arity implements Operation.
func (op Binary[T]) Arity() int { return 2 }

// HasNative reports whether native operands run a register kernel.
func (op Binary[T]) HasNative() bool {
	return op.native != nil
}

func (op Binary[T]) kernel() binaryKernel[T] {
	return binaryKernel[T]{name: op.Name(), scalar: op.scalar, native: op.native}
}

// Apply runs the operation on every pair of lanes of a and b.
func (op Binary[T]) Apply(a, b Wide[T]) Wide[T] {
	if op.divides && len(op.conds) > 0 {
		b = op.idleDivisors(a, b)
	}
	r := op.kernel().apply(a, b)
	for _, c := range op.conds {
		r = c.blend(r, a)
	}
	return r
}

// idleDivisors replaces b by one in the lanes the conditions do not select.
func (op Binary[T]) idleDivisors(a, b Wide[T]) Wide[T] {
	if b.n == 1 && a.n > 1 {
		b = reshape(b, a.target, a.n)
	}
	one := b.Splat(1)
	for _, c := range op.conds {
		if c.negate {
			b = IfThenElse(c.mask, one, b)
		} else {
			b = IfThenElse(c.mask, b, one)
		}
	}
	return b
}

// Scalar runs the operation on a single pair of values.
func (op Binary[T]) Scalar(a, b T) T {
	if len(op.conds) == 0 {
		return op.scalar(a, b)
	}
	one := WithCardinal(1)
	return op.Apply(Broadcast(a, one), Broadcast(b, one)).Get(0)
}

// Predicate is a lane-wise comparison producing a mask.
type Predicate[T Lanes] struct {
	name   string
	test   func(a, b T) bool
	native native2
}

// NewPredicate returns a comparison applying test to every pair of lanes.
func NewPredicate[T Lanes](name string, test func(a, b T) bool) Predicate[T] {
	return Predicate[T]{name: name, test: test}
}

// Name implements Operation.
func (p Predicate[T]) Name() string { return p.name }

// Arity implements Operation.
func (p Predicate[T]) Arity() int { return 2 }

// Apply compares every pair of lanes of a and b.
func (p Predicate[T]) Apply(a, b Wide[T]) Logical[T] {
	test := p.test
	k := binaryKernel[T]{
		name:   p.name,
		scalar: func(x, y T) T { return maskOf[T](test(x, y)) },
		native: p.native,
	}
	return Logical[T]{m: k.apply(a, b)}
}

// Scalar compares a single pair of values.
func (p Predicate[T]) Scalar(a, b T) bool {
	return p.test(a, b)
}

// Map applies f to every lane of v, whatever its ABI.
func Map[T Lanes](v Wide[T], f func(T) T) Wide[T] {
	get := v.laneFunc()
	return build("map", v.target, v.n, func(i int) T { return f(get(i)) })
}
