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

import "fmt"

// Strategy is the way an operation is carried out for a given pair of
// operand shapes.
type Strategy uint8

const (
	// StrategyNative runs a register kernel on whole native values.
	StrategyNative Strategy = iota

	// StrategyMap applies the scalar kernel lane by lane.
	StrategyMap

	// StrategyAggregate splits aggregated operands into halves and recurses.
	StrategyAggregate

	// StrategyCoerce broadcasts or re-shapes one operand to match the
	// other and resolves again.
	StrategyCoerce
)

func (s Strategy) String() string {
	switch s {
	case StrategyNative:
		return "native"
	case StrategyMap:
		return "map"
	case StrategyAggregate:
		return "aggregate"
	case StrategyCoerce:
		return "coerce"
	default:
		return "unknown"
	}
}

// Shape is everything the resolver looks at in an operand.
type Shape struct {
	Target   *Target
	Element  ElementType
	Cardinal int
	ABI      ABI
}

// NewShape resolves the ABI of cardinal lanes of e on t.
func NewShape(e ElementType, cardinal int, t *Target) (Shape, error) {
	abi, err := ResolveABI(e, cardinal, t)
	if err != nil {
		return Shape{}, err
	}
	return Shape{Target: t, Element: e, Cardinal: cardinal, ABI: abi}, nil
}

func (s Shape) String() string {
	return fmt.Sprintf("%sx%d@%s(%s)", s.Element, s.Cardinal, s.Target, s.ABI)
}

// Shape returns the shape of v.
func (v Wide[T]) Shape() Shape {
	return Shape{Target: v.target, Element: ElementTypeOf[T](), Cardinal: v.n, ABI: v.abi}
}

// resolve picks the strategy for op on operands a and b. Unary operations
// pass the same shape twice. hasNative reports whether op has a register
// kernel for the element type.
//
// The order of the checks is significant: emulation wins over aggregation,
// which wins over native execution.
func resolve(op string, a, b Shape, hasNative bool) (Strategy, error) {
	if a.Cardinal != b.Cardinal && a.Cardinal != 1 && b.Cardinal != 1 {
		return 0, resolutionError(op, ErrShapeMismatch, "%s and %s", a, b)
	}
	switch {
	case a.ABI == ABIEmulated || b.ABI == ABIEmulated:
		return StrategyMap, nil
	case a.ABI == ABIAggregated || b.ABI == ABIAggregated:
		return StrategyAggregate, nil
	case a.Cardinal == b.Cardinal && a.Target == b.Target:
		if hasNative {
			return StrategyNative, nil
		}
		return StrategyMap, nil
	}
	return StrategyCoerce, nil
}

// coerce brings a and b to a common target and cardinal. The operand with a
// single lane is broadcast; otherwise b is re-shaped onto a's target.
func coerce[T Lanes](op string, a, b Wide[T]) (Wide[T], Wide[T]) {
	if a.n == b.n && a.target == b.target {
		return a, b
	}
	if a.n != b.n && a.n != 1 && b.n != 1 {
		panic(resolutionError(op, ErrShapeMismatch, "%s and %s", a.Shape(), b.Shape()))
	}
	if a.n == 1 && b.n > 1 {
		a = reshape(a, b.target, b.n)
	} else {
		b = reshape(b, a.target, a.n)
	}
	Logger().Debug("operands coerced", "op", op, "shape", a.Shape().String())
	return a, b
}

// conform re-shapes v like like, broadcasting a single lane.
func conform[T Lanes](op string, v, like Wide[T]) Wide[T] {
	if v.n == like.n && v.target == like.target {
		return v
	}
	if v.n != like.n && v.n != 1 {
		panic(resolutionError(op, ErrShapeMismatch, "%s and %s", v.Shape(), like.Shape()))
	}
	return reshape(v, like.target, like.n)
}

// unaryKernel is the executable form of a one-operand operation.
type unaryKernel[T Lanes] struct {
	name   string
	scalar func(T) T
	native func(a register, n int) register
	vector func(Wide[T]) Wide[T]
}

func (k unaryKernel[T]) apply(a Wide[T]) Wide[T] {
	s, err := resolve(k.name, a.Shape(), a.Shape(), k.native != nil || k.vector != nil)
	if err != nil {
		panic(err)
	}
	switch s {
	case StrategyNative:
		if k.native == nil {
			return k.vector(a)
		}
		r := k.native(a.reg, a.n)
		r.trim(a.n, ElementTypeOf[T]().Width)
		return Wide[T]{target: a.target, abi: a.abi, n: a.n, reg: r}
	case StrategyAggregate:
		return combine(k.apply(a.agg[0]), k.apply(a.agg[1]))
	default:
		get := a.laneFunc()
		return build(k.name, a.target, a.n, func(i int) T { return k.scalar(get(i)) })
	}
}

// binaryKernel is the executable form of a two-operand operation.
type binaryKernel[T Lanes] struct {
	name   string
	scalar func(a, b T) T
	native func(a, b register, n int) register
}

func (k binaryKernel[T]) apply(a, b Wide[T]) Wide[T] {
	s, err := resolve(k.name, a.Shape(), b.Shape(), k.native != nil)
	if err != nil {
		panic(err)
	}
	switch s {
	case StrategyNative:
		r := k.native(a.reg, b.reg, a.n)
		r.trim(a.n, ElementTypeOf[T]().Width)
		return Wide[T]{target: a.target, abi: a.abi, n: a.n, reg: r}
	case StrategyAggregate:
		like := a
		if a.abi != ABIAggregated {
			like = b
		}
		alo, ahi := split(a, like)
		blo, bhi := split(b, like)
		return combine(k.apply(alo, blo), k.apply(ahi, bhi))
	case StrategyCoerce:
		a, b = coerce(k.name, a, b)
		return k.apply(a, b)
	default:
		lead := a
		if a.n == 1 {
			lead = b
		}
		ga, gb := a.laneFunc(), b.laneFunc()
		return build(k.name, lead.target, lead.n, func(i int) T { return k.scalar(ga(i), gb(i)) })
	}
}
