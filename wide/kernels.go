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

import "math"

// The functions below decide which element types and policies get a
// register kernel. The registry descriptors and the operation constructors
// both consult them, so a plan always matches what Apply does.

func nativeAlways(ElementType, PolicyKind) bool { return true }

func nativeNever(ElementType, PolicyKind) bool { return false }

func nativeFloats(e ElementType, _ PolicyKind) bool { return e.Kind == KindFloat }

// nativeAddSub: integers use SWAR adds, floats run inside the register.
// Saturated signed lanes narrower than 32 bits use the widening scalar
// kernel.
func nativeAddSub(e ElementType, p PolicyKind) bool {
	if p == PolicySaturated && e.Kind == KindSigned {
		return e.Width >= 4
	}
	return p != PolicyDerivative
}

func nativeNegAbs(_ ElementType, p PolicyKind) bool {
	return p != PolicyDerivative
}

func nativeFloatArith(e ElementType, p PolicyKind) bool {
	return e.Kind == KindFloat && p != PolicyDerivative
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func sgn[T Lanes](x T) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// addResidual uses TwoSum in float64. For float32 the float64 sum is
// usually exact, so its difference to r decides; otherwise the TwoSum error
// term does.
func addResidual[T Lanes](a, b, r T) int {
	if !IsFloating[T]() {
		return 0
	}
	x, y, z := float64(a), float64(b), float64(r)
	if math.IsInf(z, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		// The exact sum of finite operands is finite: r overflowed.
		return -sign(z)
	}
	s := x + y
	bb := s - x
	e := (x - (s - bb)) + (y - bb)
	if d := s - z; d != 0 {
		return sign(d)
	}
	return sign(e)
}

func subResidual[T Lanes](a, b, r T) int {
	return addResidual(a, -b, r)
}

func mulResidual[T Lanes](a, b, r T) int {
	if !IsFloating[T]() {
		return 0
	}
	return sign(math.FMA(float64(a), float64(b), -float64(r)))
}

// divResidual returns the sign of a/b - r: the sign of the remainder
// a - r*b, flipped for negative divisors.
func divResidual[T Lanes](a, b, r T) int {
	if IsFloating[T]() {
		return sign(math.FMA(-float64(r), float64(b), float64(a))) * sign(float64(b))
	}
	return sgn(a-r*b) * sgn(b)
}

func sqrtResidual[T Floats](x, r T) int {
	return sign(math.FMA(-float64(r), float64(r), float64(x)))
}

func width[T Lanes]() int {
	return ElementTypeOf[T]().Width
}

// AddOp returns the addition operation. Integer addition wraps; the
// saturated variant clamps.
func AddOp[T Lanes]() Binary[T] {
	e := ElementTypeOf[T]()
	op := NewBinary("add", func(a, b T) T { return a + b }, WithBinaryResidual(addResidual[T]))
	if e.Kind == KindFloat {
		op.native = lanewise2(op.scalar)
		return op
	}
	op.native = nativeAdd(e.Width)
	sat := NewBinary("saturated(add)", saturatedAdd[T], WithBinaryResidual(addResidual[T]))
	if nativeAddSub(e, PolicySaturated) {
		if e.Kind == KindSigned {
			sat.native = nativeSaturatedAddSigned(e.Width)
		} else {
			sat.native = nativeSaturatedAddUnsigned(e.Width)
		}
	}
	return withSaturated(op, sat)
}

// SubOp returns the subtraction operation.
func SubOp[T Lanes]() Binary[T] {
	e := ElementTypeOf[T]()
	op := NewBinary("sub", func(a, b T) T { return a - b }, WithBinaryResidual(subResidual[T]))
	if e.Kind == KindFloat {
		op.native = lanewise2(op.scalar)
		return op
	}
	op.native = nativeSub(e.Width)
	sat := NewBinary("saturated(sub)", saturatedSub[T], WithBinaryResidual(subResidual[T]))
	if nativeAddSub(e, PolicySaturated) {
		if e.Kind == KindSigned {
			sat.native = nativeSaturatedSubSigned(e.Width)
		} else {
			sat.native = nativeSaturatedSubUnsigned(e.Width)
		}
	}
	return withSaturated(op, sat)
}

func withSaturated[T Lanes](op, sat Binary[T]) Binary[T] {
	WithSaturatedBinary(sat)(&op)
	return op
}

// MulOp returns the multiplication operation. Integer products wrap.
func MulOp[T Lanes]() Binary[T] {
	op := NewBinary("mul", func(a, b T) T { return a * b }, WithBinaryResidual(mulResidual[T]))
	if nativeFloatArith(ElementTypeOf[T](), PolicyNone) {
		op.native = lanewise2(op.scalar)
	}
	return op
}

// DivOp returns the division operation. Integer division truncates toward
// zero and requires non-zero divisors in the lanes it computes; under If,
// IfNot and IfElse the lanes left out may hold zero divisors.
func DivOp[T Lanes]() Binary[T] {
	op := NewBinary("div", func(a, b T) T { return a / b }, WithBinaryResidual(divResidual[T]))
	if nativeFloatArith(ElementTypeOf[T](), PolicyNone) {
		op.native = lanewise2(op.scalar)
	}
	op.divides = IsIntegral[T]()
	return op
}

// MinOp returns the lane-wise minimum. A NaN in either operand gives NaN.
func MinOp[T Lanes]() Binary[T] {
	op := NewBinary("min", func(a, b T) T { return min(a, b) })
	op.native = lanewise2(op.scalar)
	return op
}

// MaxOp returns the lane-wise maximum. A NaN in either operand gives NaN.
func MaxOp[T Lanes]() Binary[T] {
	op := NewBinary("max", func(a, b T) T { return max(a, b) })
	op.native = lanewise2(op.scalar)
	return op
}

// AbsDiffOp returns |a - b|, computed without overflow for unsigned types.
func AbsDiffOp[T Lanes]() Binary[T] {
	return NewBinary("abs_diff", absDiff[T])
}

// AvgOp returns the rounded average (a + b + 1) >> 1, computed without
// overflow.
func AvgOp[T Integers]() Binary[T] {
	return NewBinary("avg", roundedAvg[T])
}

// MulHighOp returns the upper half of the double-width product.
func MulHighOp[T Integers]() Binary[T] {
	return NewBinary("mul_high", mulHigh[T])
}

func bitwise[T Lanes](name string, f func(a, b uint64) uint64, k native2) Binary[T] {
	op := NewBinary(name, func(a, b T) T { return fromBits[T](f(toBits(a), toBits(b))) })
	op.native = k
	return op
}

// AndOp returns the bitwise conjunction. Floats are combined bit by bit.
func AndOp[T Lanes]() Binary[T] {
	return bitwise[T]("and", func(a, b uint64) uint64 { return a & b }, nativeAnd(width[T]()))
}

// OrOp returns the bitwise disjunction.
func OrOp[T Lanes]() Binary[T] {
	return bitwise[T]("or", func(a, b uint64) uint64 { return a | b }, nativeOr(width[T]()))
}

// XorOp returns the bitwise exclusive or.
func XorOp[T Lanes]() Binary[T] {
	return bitwise[T]("xor", func(a, b uint64) uint64 { return a ^ b }, nativeXor(width[T]()))
}

// AndNotOp returns ^a & b.
func AndNotOp[T Lanes]() Binary[T] {
	return bitwise[T]("and_not", func(a, b uint64) uint64 { return b &^ a }, nativeAndNot(width[T]()))
}

// NotOp returns the bitwise complement.
func NotOp[T Lanes]() Unary[T] {
	op := NewUnary("not", func(a T) T { return fromBits[T](^toBits(a)) })
	op.native = nativeNot(width[T]())
	return op
}

func andKernel[T Lanes]() binaryKernel[T]    { return AndOp[T]().kernel() }
func orKernel[T Lanes]() binaryKernel[T]     { return OrOp[T]().kernel() }
func xorKernel[T Lanes]() binaryKernel[T]    { return XorOp[T]().kernel() }
func andNotKernel[T Lanes]() binaryKernel[T] { return AndNotOp[T]().kernel() }
func notKernel[T Lanes]() unaryKernel[T]     { return NotOp[T]().kernel() }

// NegOp returns the negation. Floats flip the sign bit; integers wrap, so
// the most negative value maps to itself unless saturated.
func NegOp[T Lanes]() Unary[T] {
	e := ElementTypeOf[T]()
	op := NewUnary("neg", negate[T],
		WithDerivative(NewUnary("derivative(neg)", func(T) T { return negate[T](1) })))
	if e.Kind == KindFloat {
		op.native = nativeNegFloat(e.Width)
		return op
	}
	op.native = nativeNegInt(e.Width)
	sat := NewUnary("saturated(neg)", saturatedNeg[T])
	if e.Kind == KindSigned {
		h := highBits(e.Width)
		sat.native = wordwise1(e.Width, func(a uint64) uint64 {
			r := swarSub(0, a, e.Width)
			m := expand(a&r&h, e.Width)
			return r&^m | ^h&m
		})
	} else {
		sat.native = func(register, int) register { return register{} }
	}
	WithSaturatedUnary(sat)(&op)
	return op
}

// AbsOp returns the absolute value. Floats clear the sign bit and unsigned
// integers are unchanged. For signed integers Abs(MinInt) is MinInt, while
// Saturated(AbsOp) gives MaxInt.
func AbsOp[T Lanes]() Unary[T] {
	e := ElementTypeOf[T]()
	op := NewUnary("abs", abs[T], WithDerivative(NewUnary("derivative(abs)", func(x T) T { return T(sgn(x)) })))
	switch e.Kind {
	case KindFloat:
		op.native = nativeAbsFloat(e.Width)
		return op
	case KindUnsigned:
		op.native = nativeIdentity
	default:
		op.native = nativeAbsSigned(e.Width)
	}
	sat := NewUnary("saturated(abs)", saturatedAbs[T])
	if e.Kind == KindSigned {
		sat.native = nativeAbsSignedSaturated(e.Width)
	} else {
		sat.native = nativeIdentity
	}
	WithSaturatedUnary(sat)(&op)
	return op
}

// SqrtOp returns the square root. Its derivative is 1/(2*sqrt(x)).
func SqrtOp[T Floats]() Unary[T] {
	scalar := func(x T) T { return T(math.Sqrt(float64(x))) }
	deriv := NewUnary("derivative(sqrt)", func(x T) T { return T(0.5 / math.Sqrt(float64(x))) })
	op := NewUnary("sqrt", scalar, WithUnaryResidual(sqrtResidual[T]), WithDerivative(deriv))
	op.native = lanewise1(scalar)
	return op
}

func comparison[T Lanes](name string, test func(a, b T) bool) Predicate[T] {
	p := NewPredicate(name, test)
	p.native = lanewise2(func(a, b T) T { return maskOf[T](test(a, b)) })
	return p
}

// EqualOp compares lanes for equality. NaN is not equal to anything.
func EqualOp[T Lanes]() Predicate[T] {
	return comparison("equal", func(a, b T) bool { return a == b })
}

// NotEqualOp is the complement of EqualOp.
func NotEqualOp[T Lanes]() Predicate[T] {
	return comparison("not_equal", func(a, b T) bool { return a != b })
}

// LessOp returns a < b.
func LessOp[T Lanes]() Predicate[T] {
	return comparison("less", func(a, b T) bool { return a < b })
}

// LessEqualOp returns a <= b.
func LessEqualOp[T Lanes]() Predicate[T] {
	return comparison("less_equal", func(a, b T) bool { return a <= b })
}

// GreaterOp returns a > b.
func GreaterOp[T Lanes]() Predicate[T] {
	return comparison("greater", func(a, b T) bool { return a > b })
}

// GreaterEqualOp returns a >= b.
func GreaterEqualOp[T Lanes]() Predicate[T] {
	return comparison("greater_equal", func(a, b T) bool { return a >= b })
}

func Add[T Lanes](a, b Wide[T]) Wide[T] { return AddOp[T]().Apply(a, b) }
func Sub[T Lanes](a, b Wide[T]) Wide[T] { return SubOp[T]().Apply(a, b) }
func Mul[T Lanes](a, b Wide[T]) Wide[T] { return MulOp[T]().Apply(a, b) }
func Div[T Lanes](a, b Wide[T]) Wide[T] { return DivOp[T]().Apply(a, b) }
func Min[T Lanes](a, b Wide[T]) Wide[T] { return MinOp[T]().Apply(a, b) }
func Max[T Lanes](a, b Wide[T]) Wide[T] { return MaxOp[T]().Apply(a, b) }

func AbsDiff[T Lanes](a, b Wide[T]) Wide[T]    { return AbsDiffOp[T]().Apply(a, b) }
func Avg[T Integers](a, b Wide[T]) Wide[T]     { return AvgOp[T]().Apply(a, b) }
func MulHigh[T Integers](a, b Wide[T]) Wide[T] { return MulHighOp[T]().Apply(a, b) }

// SaturatedAdd adds lanes, clamping integer results to the range of T.
// For example, uint8: 250 + 10 = 255 (not 4).
func SaturatedAdd[T Lanes](a, b Wide[T]) Wide[T] { return Saturated(AddOp[T]()).Apply(a, b) }

// SaturatedSub subtracts lanes, clamping integer results to the range of T.
// For example, uint8: 10 - 20 = 0 (not 246).
func SaturatedSub[T Lanes](a, b Wide[T]) Wide[T] { return Saturated(SubOp[T]()).Apply(a, b) }

func And[T Lanes](a, b Wide[T]) Wide[T]    { return AndOp[T]().Apply(a, b) }
func Or[T Lanes](a, b Wide[T]) Wide[T]     { return OrOp[T]().Apply(a, b) }
func Xor[T Lanes](a, b Wide[T]) Wide[T]    { return XorOp[T]().Apply(a, b) }
func AndNot[T Lanes](a, b Wide[T]) Wide[T] { return AndNotOp[T]().Apply(a, b) }
func Not[T Lanes](a Wide[T]) Wide[T]       { return NotOp[T]().Apply(a) }

func Neg[T Lanes](a Wide[T]) Wide[T]   { return NegOp[T]().Apply(a) }
func Abs[T Lanes](a Wide[T]) Wide[T]   { return AbsOp[T]().Apply(a) }
func Sqrt[T Floats](a Wide[T]) Wide[T] { return SqrtOp[T]().Apply(a) }

func Equal[T Lanes](a, b Wide[T]) Logical[T]        { return EqualOp[T]().Apply(a, b) }
func NotEqual[T Lanes](a, b Wide[T]) Logical[T]     { return NotEqualOp[T]().Apply(a, b) }
func Less[T Lanes](a, b Wide[T]) Logical[T]         { return LessOp[T]().Apply(a, b) }
func LessEqual[T Lanes](a, b Wide[T]) Logical[T]    { return LessEqualOp[T]().Apply(a, b) }
func Greater[T Lanes](a, b Wide[T]) Logical[T]      { return GreaterOp[T]().Apply(a, b) }
func GreaterEqual[T Lanes](a, b Wide[T]) Logical[T] { return GreaterEqualOp[T]().Apply(a, b) }

// IsNaN reports the lanes holding NaN.
func IsNaN[T Lanes](v Wide[T]) Logical[T] {
	return NotEqual(v, v)
}

// IsInf reports the lanes holding an infinity of either sign.
func IsInf[T Floats](v Wide[T]) Logical[T] {
	return Equal(Abs(v), v.Splat(T(math.Inf(1))))
}

// IsFinite reports the lanes that are neither infinite nor NaN.
func IsFinite[T Floats](v Wide[T]) Logical[T] {
	return Less(Abs(v), v.Splat(T(math.Inf(1))))
}

// IfThenElse returns the lanes of a where m is set and of b elsewhere.
// Single-lane operands and masks are broadcast.
func IfThenElse[T Lanes](m Logical[T], a, b Wide[T]) Wide[T] {
	const name = "if_then_else"
	a, b = coerce(name, a, b)
	mask := conform(name, m.m, a)
	return selectLanes(mask, a, b)
}

func selectLanes[T Lanes](m, a, b Wide[T]) Wide[T] {
	switch a.abi {
	case ABIAggregated:
		return combine(
			selectLanes(m.agg[0], a.agg[0], b.agg[0]),
			selectLanes(m.agg[1], a.agg[1], b.agg[1]))
	case ABIEmulated:
		return build("if_then_else", a.target, a.n, func(i int) T {
			if isSet(m.emu[i]) {
				return a.emu[i]
			}
			return b.emu[i]
		})
	}
	w := width[T]()
	return Wide[T]{target: a.target, abi: a.abi, n: a.n, reg: bitselect(m.reg, a.reg, b.reg, words(a.n, w))}
}

// ReduceSum returns the sum of all lanes. Aggregated values are summed per
// half, so float sums associate as a balanced tree over the registers.
func ReduceSum[T Lanes](v Wide[T]) T {
	if v.abi == ABIAggregated {
		return ReduceSum(v.agg[0]) + ReduceSum(v.agg[1])
	}
	var sum T
	for i := range v.n {
		sum += v.Get(i)
	}
	return sum
}

// ReduceMin returns the smallest lane.
func ReduceMin[T Lanes](v Wide[T]) T {
	r := v.Get(0)
	for i := 1; i < v.n; i++ {
		r = min(r, v.Get(i))
	}
	return r
}

// ReduceMax returns the largest lane.
func ReduceMax[T Lanes](v Wide[T]) T {
	r := v.Get(0)
	for i := 1; i < v.n; i++ {
		r = max(r, v.Get(i))
	}
	return r
}
