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

// This file holds the register kernels. They work on whole 64-bit words
// holding several lanes (SWAR), so lanes never need to be unpacked. Bits
// above the last lane may be garbage on return; callers trim them.

type (
	native1 = func(a register, n int) register
	native2 = func(a, b register, n int) register
)

func wordwise1(w int, f func(a uint64) uint64) native1 {
	return func(a register, n int) register {
		var r register
		for i := range words(n, w) {
			r[i] = f(a[i])
		}
		return r
	}
}

func wordwise2(w int, f func(a, b uint64) uint64) native2 {
	return func(a, b register, n int) register {
		var r register
		for i := range words(n, w) {
			r[i] = f(a[i], b[i])
		}
		return r
	}
}

// lanewise1 runs a scalar kernel over the lanes of a register without
// leaving it.
func lanewise1[T Lanes](f func(T) T) native1 {
	w := ElementTypeOf[T]().Width
	return func(a register, n int) register {
		var r register
		for i := range n {
			r.set(i, w, toBits(f(fromBits[T](a.get(i, w)))))
		}
		return r
	}
}

func lanewise2[T Lanes](f func(a, b T) T) native2 {
	w := ElementTypeOf[T]().Width
	return func(a, b register, n int) register {
		var r register
		for i := range n {
			r.set(i, w, toBits(f(fromBits[T](a.get(i, w)), fromBits[T](b.get(i, w)))))
		}
		return r
	}
}

func nativeAnd(w int) native2 {
	return wordwise2(w, func(a, b uint64) uint64 { return a & b })
}

func nativeOr(w int) native2 {
	return wordwise2(w, func(a, b uint64) uint64 { return a | b })
}

func nativeXor(w int) native2 {
	return wordwise2(w, func(a, b uint64) uint64 { return a ^ b })
}

// nativeAndNot computes ^a & b.
func nativeAndNot(w int) native2 {
	return wordwise2(w, func(a, b uint64) uint64 { return b &^ a })
}

func nativeNot(w int) native1 {
	return wordwise1(w, func(a uint64) uint64 { return ^a })
}

func nativeAdd(w int) native2 {
	return wordwise2(w, func(a, b uint64) uint64 { return swarAdd(a, b, w) })
}

func nativeSub(w int) native2 {
	return wordwise2(w, func(a, b uint64) uint64 { return swarSub(a, b, w) })
}

// nativeSaturatedAddUnsigned ORs an all-ones lane into every lane that
// carried out of its top bit.
func nativeSaturatedAddUnsigned(w int) native2 {
	h := highBits(w)
	return wordwise2(w, func(a, b uint64) uint64 {
		r := swarAdd(a, b, w)
		carry := ((a & b) | ((a | b) &^ r)) & h
		return r | expand(carry, w)
	})
}

// nativeSaturatedSubUnsigned clears every lane that borrowed.
func nativeSaturatedSubUnsigned(w int) native2 {
	h := highBits(w)
	return wordwise2(w, func(a, b uint64) uint64 {
		r := swarSub(a, b, w)
		borrow := ((^a & b) | (^(a ^ b) & r)) & h
		return r &^ expand(borrow, w)
	})
}

// signedLimit returns, per lane, MaxInt when the lane of a is non-negative
// and MinInt when it is negative.
func signedLimit(a uint64, w int) uint64 {
	h := highBits(w)
	return ^h + (a&h)>>(8*w-1)
}

// nativeSaturatedAddSigned replaces lanes that overflowed with the limit of
// the sign of a. Overflow happens when the operands share a sign that the
// wrapped sum does not.
func nativeSaturatedAddSigned(w int) native2 {
	h := highBits(w)
	return wordwise2(w, func(a, b uint64) uint64 {
		r := swarAdd(a, b, w)
		m := expand(^(a^b)&(a^r)&h, w)
		return r&^m | signedLimit(a, w)&m
	})
}

// nativeSaturatedSubSigned overflows when the operands differ in sign and
// the result's sign differs from a's.
func nativeSaturatedSubSigned(w int) native2 {
	h := highBits(w)
	return wordwise2(w, func(a, b uint64) uint64 {
		r := swarSub(a, b, w)
		m := expand((a^b)&(a^r)&h, w)
		return r&^m | signedLimit(a, w)&m
	})
}

func nativeNegFloat(w int) native1 {
	h := highBits(w)
	return wordwise1(w, func(a uint64) uint64 { return a ^ h })
}

func nativeAbsFloat(w int) native1 {
	h := highBits(w)
	return wordwise1(w, func(a uint64) uint64 { return a &^ h })
}

func nativeNegInt(w int) native1 {
	return wordwise1(w, func(a uint64) uint64 { return swarSub(0, a, w) })
}

// nativeAbsSigned negates the lanes with the sign bit set. MinInt stays
// MinInt.
func nativeAbsSigned(w int) native1 {
	h := highBits(w)
	return wordwise1(w, func(a uint64) uint64 {
		m := expand(a&h, w)
		return swarSub(0, a, w)&m | a&^m
	})
}

// nativeAbsSignedSaturated is nativeAbsSigned with MinInt mapped to MaxInt.
func nativeAbsSignedSaturated(w int) native1 {
	h := highBits(w)
	return wordwise1(w, func(a uint64) uint64 {
		m := expand(a&h, w)
		r := swarSub(0, a, w)&m | a&^m
		still := expand(r&h, w)
		return r&^still | ^h&still
	})
}

func nativeIdentity(a register, _ int) register {
	return a
}

// bitselect takes the bits of a where m is set and of b elsewhere.
func bitselect(m, a, b register, nw int) register {
	var r register
	for i := range nw {
		r[i] = a[i]&m[i] | b[i]&^m[i]
	}
	return r
}
