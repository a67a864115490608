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

// registerWords is the number of 64-bit words in the widest register (512 bits).
const registerWords = 8

// register models one hardware vector register as raw little-endian bits.
// Lane i of width w bytes occupies bits [8*w*i, 8*w*(i+1)). Lanes never
// straddle a word because widths divide 8 bytes. Bits above the last lane are
// kept clear.
type register [registerWords]uint64

// laneMask returns a mask of the low 8*w bits.
func laneMask(w int) uint64 {
	if w == 8 {
		return math.MaxUint64
	}
	return 1<<(8*w) - 1
}

// get returns the raw bits of lane i for w-byte lanes.
func (r *register) get(i, w int) uint64 {
	bit := i * w * 8
	return (r[bit/64] >> (bit % 64)) & laneMask(w)
}

// set stores the low 8*w bits of b into lane i.
func (r *register) set(i, w int, b uint64) {
	bit := i * w * 8
	m := laneMask(w)
	shift := bit % 64
	r[bit/64] = r[bit/64]&^(m<<shift) | (b&m)<<shift
}

// words returns how many words hold n lanes of w bytes.
func words(n, w int) int {
	return (n*w + 7) / 8
}

// trim clears every bit above n lanes of w bytes.
func (r *register) trim(n, w int) {
	used := n * w * 8
	for i := range r {
		lo := i * 64
		switch {
		case used <= lo:
			r[i] = 0
		case used < lo+64:
			r[i] &= 1<<(used-lo) - 1
		}
	}
}

// highBits returns a word with the top bit of every w-byte lane set.
func highBits(w int) uint64 {
	var h uint64
	for bit := 8*w - 1; bit < 64; bit += 8 * w {
		h |= 1 << bit
	}
	return h
}

// expand turns a word whose set bits are lane top bits into a word where
// those lanes are all ones.
func expand(top uint64, w int) uint64 {
	if w == 8 {
		return -(top >> 63)
	}
	low := top >> (8*w - 1)
	// Each lane holds 0 or 1, so the product never carries into the next lane.
	return low * laneMask(w)
}

// swarAdd adds the w-byte lanes of a and b without carries between lanes.
func swarAdd(a, b uint64, w int) uint64 {
	if w == 8 {
		return a + b
	}
	h := highBits(w)
	return ((a &^ h) + (b &^ h)) ^ ((a ^ b) & h)
}

// swarSub subtracts the w-byte lanes of b from a without borrows between lanes.
func swarSub(a, b uint64, w int) uint64 {
	if w == 8 {
		return a - b
	}
	h := highBits(w)
	return ((a | h) - (b &^ h)) ^ ((a ^ ^b) & h)
}

// toBits returns the bit pattern of v, zero-extended to 64 bits.
func toBits[T Lanes](v T) uint64 {
	switch x := any(v).(type) {
	case float32:
		return uint64(math.Float32bits(x))
	case float64:
		return math.Float64bits(x)
	case int8:
		return uint64(uint8(x))
	case int16:
		return uint64(uint16(x))
	case int32:
		return uint64(uint32(x))
	case int64:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	default:
		return 0
	}
}

// fromBits reinterprets the low bits of b as a T.
func fromBits[T Lanes](b uint64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(math.Float32frombits(uint32(b))).(T)
	case float64:
		return any(math.Float64frombits(b)).(T)
	case int8:
		return any(int8(b)).(T)
	case int16:
		return any(int16(b)).(T)
	case int32:
		return any(int32(b)).(T)
	case int64:
		return any(int64(b)).(T)
	case uint8:
		return any(uint8(b)).(T)
	case uint16:
		return any(uint16(b)).(T)
	case uint32:
		return any(uint32(b)).(T)
	case uint64:
		return any(b).(T)
	default:
		return zero
	}
}
