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

import "strings"

// Logical is a lane mask shaped like a Wide[T]. Each lane is stored as all
// bits set (true) or all bits clear (false) of the element width, so a mask
// has the same ABI as the values it selects from.
type Logical[T Lanes] struct {
	m Wide[T]
}

// maskOf returns the lane pattern for b.
func maskOf[T Lanes](b bool) T {
	if b {
		return fromBits[T](laneMask(ElementTypeOf[T]().Width))
	}
	var zero T
	return zero
}

func isSet[T Lanes](x T) bool {
	return toBits(x) != 0
}

// True returns a mask with every lane set.
func True[T Lanes](opts ...Option) Logical[T] {
	return Logical[T]{m: Broadcast(maskOf[T](true), opts...)}
}

// False returns a mask with every lane clear.
func False[T Lanes](opts ...Option) Logical[T] {
	return Logical[T]{m: Broadcast(maskOf[T](false), opts...)}
}

// LogicalOf returns a mask on the current target whose lanes are vals.
// A single value gives a scalar mask that is broadcast where it is used.
func LogicalOf[T Lanes](vals ...bool) Logical[T] {
	return Logical[T]{m: build("logical", CurrentTarget(), len(vals), func(i int) T {
		return maskOf[T](vals[i])
	})}
}

// LogicalGenerate returns a mask whose lane i is g(i, n).
func LogicalGenerate[T Lanes](g func(i, n int) bool, opts ...Option) Logical[T] {
	o := resolveOptions[T](opts)
	return Logical[T]{m: build("logical", o.target, o.cardinal, func(i int) T {
		return maskOf[T](g(i, o.cardinal))
	})}
}

// Cardinal returns the number of lanes.
func (l Logical[T]) Cardinal() int {
	return l.m.n
}

// ABI returns the storage strategy backing l.
func (l Logical[T]) ABI() ABI {
	return l.m.abi
}

// Shape returns the shape of l.
func (l Logical[T]) Shape() Shape {
	return l.m.Shape()
}

func (l Logical[T]) class() Class {
	c := l.m.class()
	c.Logical = true
	return c
}

// Get reports whether lane i is set.
func (l Logical[T]) Get(i int) bool {
	return isSet(l.m.Get(i))
}

// Bools returns the lanes as a new slice.
func (l Logical[T]) Bools() []bool {
	out := make([]bool, l.m.n)
	for i, x := range l.m.Lanes() {
		out[i] = isSet(x)
	}
	return out
}

// Mask returns the raw lane patterns as a vector.
func (l Logical[T]) Mask() Wide[T] {
	return l.m
}

// CountTrue returns the number of set lanes.
func (l Logical[T]) CountTrue() int {
	if l.m.abi == ABIAggregated {
		return Logical[T]{l.m.agg[0]}.CountTrue() + Logical[T]{l.m.agg[1]}.CountTrue()
	}
	n := 0
	for i := range l.m.n {
		if l.Get(i) {
			n++
		}
	}
	return n
}

// AllTrue reports whether every lane is set.
func (l Logical[T]) AllTrue() bool {
	return l.CountTrue() == l.m.n
}

// AnyTrue reports whether at least one lane is set.
func (l Logical[T]) AnyTrue() bool {
	return l.CountTrue() > 0
}

// And returns the lane-wise conjunction of l and o.
func (l Logical[T]) And(o Logical[T]) Logical[T] {
	return Logical[T]{m: andKernel[T]().apply(l.m, o.m)}
}

// Or returns the lane-wise disjunction of l and o.
func (l Logical[T]) Or(o Logical[T]) Logical[T] {
	return Logical[T]{m: orKernel[T]().apply(l.m, o.m)}
}

// Xor returns the lanes set in exactly one of l and o.
func (l Logical[T]) Xor(o Logical[T]) Logical[T] {
	return Logical[T]{m: xorKernel[T]().apply(l.m, o.m)}
}

// AndNot returns the lanes set in o but not in l.
func (l Logical[T]) AndNot(o Logical[T]) Logical[T] {
	return Logical[T]{m: andNotKernel[T]().apply(l.m, o.m)}
}

// Not returns the complement of l.
func (l Logical[T]) Not() Logical[T] {
	return Logical[T]{m: notKernel[T]().apply(l.m)}
}

// String formats l as "(true, false, ...)".
func (l Logical[T]) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i := range l.m.n {
		if i > 0 {
			b.WriteString(", ")
		}
		if l.Get(i) {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	}
	b.WriteByte(')')
	return b.String()
}
