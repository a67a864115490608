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

// This file provides the scalar kernels of saturated arithmetic and the
// integer helpers around it. Saturated operations clamp results to the
// type's valid range instead of wrapping.

// MaxValue returns the largest value of an integer type. For floating-point
// types it returns the largest finite value.
func MaxValue[T Lanes]() T {
	e := ElementTypeOf[T]()
	switch e.Kind {
	case KindSigned:
		return fromBits[T](laneMask(e.Width) >> 1)
	case KindUnsigned:
		return fromBits[T](laneMask(e.Width))
	}
	if e.Width == 4 {
		return fromBits[T](0x7f7fffff)
	}
	return fromBits[T](0x7fefffffffffffff)
}

// MinValue returns the smallest value of an integer type. For floating-point
// types it returns the most negative finite value.
func MinValue[T Lanes]() T {
	e := ElementTypeOf[T]()
	switch e.Kind {
	case KindSigned:
		return fromBits[T](1 << (e.Bits() - 1))
	case KindUnsigned:
		var zero T
		return zero
	}
	return -MaxValue[T]()
}

// limitOf returns the bound a saturated signed result clamps to when the
// operation overflows in the direction of a's sign.
func limitOf[T Lanes](a T) T {
	if a < 0 {
		return MinValue[T]()
	}
	return MaxValue[T]()
}

// clampWiden converts a result computed in 64 bits back to a narrower T.
func clampWiden[T Lanes](x int64) T {
	lo, hi := int64(MinValue[T]()), int64(MaxValue[T]())
	if x > hi {
		return T(hi)
	}
	if x < lo {
		return T(lo)
	}
	return T(x)
}

func saturatedAdd[T Lanes](a, b T) T {
	e := ElementTypeOf[T]()
	switch {
	case e.Kind == KindFloat:
		return a + b
	case e.Width < 8:
		// Narrow lanes widen exactly into int64.
		return clampWiden[T](int64(a) + int64(b))
	case e.Kind == KindSigned:
		r := a + b
		if (a < 0) == (b < 0) && (r < 0) != (a < 0) {
			return limitOf(a)
		}
		return r
	default:
		r := a + b
		if r < a {
			return MaxValue[T]()
		}
		return r
	}
}

func saturatedSub[T Lanes](a, b T) T {
	e := ElementTypeOf[T]()
	switch {
	case e.Kind == KindFloat:
		return a - b
	case e.Width < 8:
		return clampWiden[T](int64(a) - int64(b))
	case e.Kind == KindSigned:
		r := a - b
		if (a < 0) != (b < 0) && (r < 0) != (a < 0) {
			return limitOf(a)
		}
		return r
	default:
		if b > a {
			var zero T
			return zero
		}
		return a - b
	}
}

func negate[T Lanes](a T) T {
	return -a
}

func saturatedNeg[T Lanes](a T) T {
	switch ElementTypeOf[T]().Kind {
	case KindSigned:
		if a == MinValue[T]() {
			return MaxValue[T]()
		}
	case KindUnsigned:
		var zero T
		return zero
	}
	return -a
}

// abs clears the sign bit of floats, negates negative signed integers and
// returns unsigned integers unchanged. The most negative signed integer has
// no positive counterpart and is returned as is.
func abs[T Lanes](a T) T {
	e := ElementTypeOf[T]()
	switch e.Kind {
	case KindFloat:
		return fromBits[T](toBits(a) &^ (1 << (e.Bits() - 1)))
	case KindSigned:
		if a < 0 {
			return -a
		}
	}
	return a
}

func saturatedAbs[T Lanes](a T) T {
	if IsSigned[T]() && a == MinValue[T]() {
		return MaxValue[T]()
	}
	return abs(a)
}

func absDiff[T Lanes](a, b T) T {
	if a > b {
		return a - b
	}
	if IsFloating[T]() && a != a {
		return a
	}
	return b - a
}

// roundedAvg computes (a + b + 1) >> 1 without overflow.
func roundedAvg[T Integers](a, b T) T {
	return (a | b) - (a^b)>>1
}

// mulHigh returns the upper half of the double-width product a * b.
func mulHigh[T Integers](a, b T) T {
	e := ElementTypeOf[T]()
	if e.Width < 8 {
		if e.Kind == KindSigned {
			return T((int64(a) * int64(b)) >> e.Bits())
		}
		return T((uint64(a) * uint64(b)) >> e.Bits())
	}
	ua, ub := uint64(a), uint64(b)
	hi := Uint128From64(ua).Mul(Uint128From64(ub)).High()
	if e.Kind == KindSigned {
		// Two's-complement correction of the unsigned product.
		if a < 0 {
			hi -= ub
		}
		if b < 0 {
			hi -= ua
		}
	}
	return T(hi)
}
