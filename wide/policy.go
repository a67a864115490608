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
	"math"
	"slices"
	"strings"
)

// PolicyKind names a decorator that changes how an operation computes.
type PolicyKind uint8

const (
	PolicyNone PolicyKind = iota
	PolicySaturated
	PolicyUpward
	PolicyDownward
	PolicyMasked
	PolicyDerivative
)

var policyNames = [...]string{"none", "saturated", "upward", "downward", "masked", "derivative"}

func (p PolicyKind) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return "unknown"
}

// ParsePolicy returns the policy with the given name. The empty string is
// PolicyNone.
func ParsePolicy(s string) (PolicyKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PolicyNone, nil
	}
	if i := slices.Index(policyNames[:], s); i >= 0 {
		return PolicyKind(i), nil
	}
	return PolicyNone, fmt.Errorf("unknown policy %q", s)
}

// Decorable is satisfied by the operation types that accept the saturation
// and rounding policies.
type Decorable[O any] interface {
	Operation
	saturated() O
	rounded(dir int) O
}

// Maskable is satisfied by the operation types that accept masks of T.
type Maskable[T Lanes, O any] interface {
	Operation
	masked(c *condition[T]) O
}

// Saturated returns the variant of op whose integer results clamp to the
// range of the element type instead of wrapping. Floating-point operations
// are returned unchanged. It panics with ErrNoPolicyVariant when an integer
// operation has no such variant.
func Saturated[O Decorable[O]](op O) O {
	return op.saturated()
}

// Upward returns the variant of op rounding its result toward +Inf: the
// result is the smallest representable value not below the exact one.
func Upward[O Decorable[O]](op O) O {
	return op.rounded(+1)
}

// Downward returns the variant of op rounding its result toward -Inf.
func Downward[O Decorable[O]](op O) O {
	return op.rounded(-1)
}

// If returns op restricted to the lanes set in m. The other lanes of the
// result hold the first operand.
func If[T Lanes, O Maskable[T, O]](m Logical[T], op O) O {
	return op.masked(&condition[T]{kind: "if", mask: m})
}

// IfNot returns op restricted to the lanes clear in m.
func IfNot[T Lanes, O Maskable[T, O]](m Logical[T], op O) O {
	return op.masked(&condition[T]{kind: "if_not", mask: m, negate: true})
}

// IfElse returns op restricted to the lanes set in m. The other lanes of the
// result hold fallback.
func IfElse[T Lanes, O Maskable[T, O]](m Logical[T], op O, fallback Wide[T]) O {
	return op.masked(&condition[T]{kind: "if_else", mask: m, fallback: &fallback})
}

// IfBool applies op to every lane when b is true and to none otherwise.
func IfBool[T Lanes, O Maskable[T, O]](b bool, op O) O {
	return op.masked(&condition[T]{kind: "if", mask: LogicalOf[T](b)})
}

// Derivative returns the registered first derivative of op. It panics with
// ErrNoPolicyVariant when op has none.
func Derivative[T Lanes](op Unary[T]) Unary[T] {
	if op.deriv == nil {
		panic(resolutionError(decorate("derivative", op.Name()), ErrNoPolicyVariant,
			"%s has no derivative", op.name))
	}
	d := *op.deriv
	d.conds = op.conds
	return d
}

func (op Unary[T]) saturated() Unary[T] {
	if op.sat == nil {
		if IsFloating[T]() {
			return op
		}
		panic(resolutionError(decorate("saturated", op.Name()), ErrNoPolicyVariant,
			"%s has no saturated variant for %s", op.name, ElementTypeOf[T]()))
	}
	s := *op.sat
	s.conds = op.conds
	return s
}

func (op Binary[T]) saturated() Binary[T] {
	if op.sat == nil {
		if IsFloating[T]() {
			return op
		}
		panic(resolutionError(decorate("saturated", op.Name()), ErrNoPolicyVariant,
			"%s has no saturated variant for %s", op.name, ElementTypeOf[T]()))
	}
	s := *op.sat
	s.conds = op.conds
	return s
}

func (op Unary[T]) masked(c *condition[T]) Unary[T] {
	op.conds = append(slices.Clip(op.conds), c)
	return op
}

func (op Binary[T]) masked(c *condition[T]) Binary[T] {
	op.conds = append(slices.Clip(op.conds), c)
	return op
}

func roundingName(dir int) string {
	if dir > 0 {
		return "upward"
	}
	return "downward"
}

// nudge moves r one representable step in direction dir when the exact
// result lies on that side of r, i.e. when the residual sign s equals dir.
func nudge[T Lanes](r T, s, dir int) T {
	if s == 0 || s != dir {
		return r
	}
	switch x := any(r).(type) {
	case float32:
		return any(math.Nextafter32(x, float32(math.Inf(dir)))).(T)
	case float64:
		return any(math.Nextafter(x, math.Inf(dir))).(T)
	}
	return r + T(dir)
}

// rounded keeps the saturated variant and the derivative of op, so the
// policies compose in either order.
func (op Unary[T]) rounded(dir int) Unary[T] {
	if op.residual == nil {
		panic(resolutionError(decorate(roundingName(dir), op.Name()), ErrNoPolicyVariant,
			"%s has no rounding residual", op.name))
	}
	out := op.roundedWith(dir, op.residual)
	if op.sat != nil {
		res := op.sat.residual
		if res == nil {
			res = op.residual
		}
		s := op.sat.roundedWith(dir, res)
		s.sat = &s
		out.sat = &s
	}
	out.deriv = op.deriv
	return out
}

func (op Unary[T]) roundedWith(dir int, res func(x, r T) int) Unary[T] {
	scalar := op.scalar
	out := Unary[T]{name: decorate(roundingName(dir), op.name), residual: res, conds: op.conds}
	out.scalar = func(x T) T {
		r := scalar(x)
		return nudge(r, res(x, r), dir)
	}
	if nat := op.native; nat != nil {
		w := ElementTypeOf[T]().Width
		out.native = func(a register, n int) register {
			r := nat(a, n)
			for i := range n {
				x, y := fromBits[T](a.get(i, w)), fromBits[T](r.get(i, w))
				r.set(i, w, toBits(nudge(y, res(x, y), dir)))
			}
			return r
		}
	}
	if vec := op.vector; vec != nil {
		out.vector = func(a Wide[T]) Wide[T] {
			return zip(out.name, a, vec(a), func(x, y T) T { return nudge(y, res(x, y), dir) })
		}
	}
	return out
}

func (op Binary[T]) rounded(dir int) Binary[T] {
	if op.residual == nil {
		panic(resolutionError(decorate(roundingName(dir), op.Name()), ErrNoPolicyVariant,
			"%s has no rounding residual", op.name))
	}
	out := op.roundedWith(dir, op.residual)
	if op.sat != nil {
		res := op.sat.residual
		if res == nil {
			res = op.residual
		}
		s := op.sat.roundedWith(dir, res)
		s.sat = &s
		out.sat = &s
	}
	return out
}

func (op Binary[T]) roundedWith(dir int, res func(a, b, r T) int) Binary[T] {
	scalar := op.scalar
	out := Binary[T]{name: decorate(roundingName(dir), op.name), residual: res, conds: op.conds, divides: op.divides}
	out.scalar = func(a, b T) T {
		r := scalar(a, b)
		return nudge(r, res(a, b, r), dir)
	}
	if nat := op.native; nat != nil {
		w := ElementTypeOf[T]().Width
		out.native = func(a, b register, n int) register {
			r := nat(a, b, n)
			for i := range n {
				x, y := fromBits[T](a.get(i, w)), fromBits[T](b.get(i, w))
				z := fromBits[T](r.get(i, w))
				r.set(i, w, toBits(nudge(z, res(x, y, z), dir)))
			}
			return r
		}
	}
	return out
}

// zip combines the lanes of two values of the same shape.
func zip[T Lanes](name string, a, b Wide[T], f func(x, y T) T) Wide[T] {
	return binaryKernel[T]{name: name, scalar: f}.apply(a, b)
}
