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
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Uint128 is an unsigned 128-bit integer. Arithmetic wraps modulo 2^128.
// The zero value is 0.
type Uint128 struct {
	hi, lo uint64
}

// MaxUint128 is 2^128 - 1.
var MaxUint128 = Uint128{hi: ^uint64(0), lo: ^uint64(0)}

// NewUint128 returns hi*2^64 + lo.
func NewUint128(hi, lo uint64) Uint128 {
	return Uint128{hi: hi, lo: lo}
}

// Uint128From64 widens v.
func Uint128From64(v uint64) Uint128 {
	return Uint128{lo: v}
}

// High returns the upper 64 bits.
func (u Uint128) High() uint64 { return u.hi }

// Low returns the lower 64 bits.
func (u Uint128) Low() uint64 { return u.lo }

// IsZero reports whether u == 0.
func (u Uint128) IsZero() bool { return u.hi == 0 && u.lo == 0 }

// Equal reports whether u == v.
func (u Uint128) Equal(v Uint128) bool { return u == v }

// Cmp returns -1, 0 or +1 as u is less than, equal to or greater than v.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.hi < v.hi:
		return -1
	case u.hi > v.hi:
		return 1
	case u.lo < v.lo:
		return -1
	case u.lo > v.lo:
		return 1
	}
	return 0
}

func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.lo, v.lo, 0)
	hi, _ := bits.Add64(u.hi, v.hi, carry)
	return Uint128{hi: hi, lo: lo}
}

func (u Uint128) Sub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.lo, v.lo, 0)
	hi, _ := bits.Sub64(u.hi, v.hi, borrow)
	return Uint128{hi: hi, lo: lo}
}

// Mul returns the low 128 bits of u * v.
func (u Uint128) Mul(v Uint128) Uint128 {
	hi, lo := bits.Mul64(u.lo, v.lo)
	hi += u.hi*v.lo + u.lo*v.hi
	return Uint128{hi: hi, lo: lo}
}

// QuoRem returns u / v and u % v. It panics if v is zero.
func (u Uint128) QuoRem(v Uint128) (q, r Uint128) {
	if v.IsZero() {
		panic("wide: Uint128 division by zero")
	}
	if v.hi == 0 && u.hi < v.lo {
		// The quotient fits in 64 bits: one hardware division.
		q.lo, r.lo = bits.Div64(u.hi, u.lo, v.lo)
		return q, r
	}
	if u.Cmp(v) < 0 {
		return Uint128{}, u
	}
	// Shift-subtract long division, one quotient bit per step, starting at
	// the highest bit where v still fits under u.
	shift := v.LeadingZeros() - u.LeadingZeros()
	d := v.Lsh(uint(shift))
	r = u
	for i := shift; i >= 0; i-- {
		q = q.Lsh(1)
		if r.Cmp(d) >= 0 {
			r = r.Sub(d)
			q.lo |= 1
		}
		d = d.Rsh(1)
	}
	return q, r
}

// Quo returns u / v. It panics if v is zero.
func (u Uint128) Quo(v Uint128) Uint128 {
	q, _ := u.QuoRem(v)
	return q
}

// Rem returns u % v. It panics if v is zero.
func (u Uint128) Rem(v Uint128) Uint128 {
	_, r := u.QuoRem(v)
	return r
}

// Lsh returns u << n.
func (u Uint128) Lsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{hi: u.lo << (n - 64)}
	case n == 0:
		return u
	}
	return Uint128{hi: u.hi<<n | u.lo>>(64-n), lo: u.lo << n}
}

// Rsh returns u >> n.
func (u Uint128) Rsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{lo: u.hi >> (n - 64)}
	case n == 0:
		return u
	}
	return Uint128{hi: u.hi >> n, lo: u.lo>>n | u.hi<<(64-n)}
}

func (u Uint128) And(v Uint128) Uint128 { return Uint128{hi: u.hi & v.hi, lo: u.lo & v.lo} }
func (u Uint128) Or(v Uint128) Uint128  { return Uint128{hi: u.hi | v.hi, lo: u.lo | v.lo} }
func (u Uint128) Xor(v Uint128) Uint128 { return Uint128{hi: u.hi ^ v.hi, lo: u.lo ^ v.lo} }
func (u Uint128) Not() Uint128          { return Uint128{hi: ^u.hi, lo: ^u.lo} }

// Neg returns -u modulo 2^128.
func (u Uint128) Neg() Uint128 {
	return Uint128{}.Sub(u)
}

// LeadingZeros returns the number of leading zero bits; 128 for zero.
func (u Uint128) LeadingZeros() int {
	if u.hi != 0 {
		return bits.LeadingZeros64(u.hi)
	}
	return 64 + bits.LeadingZeros64(u.lo)
}

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// Text returns the representation of u in the given base, 2 <= base <= 36.
func (u Uint128) Text(base int) string {
	if base < 2 || base > len(digits) {
		panic(fmt.Sprintf("wide: invalid base %d", base))
	}
	if u.IsZero() {
		return "0"
	}
	var buf [128]byte
	i := len(buf)
	b := Uint128From64(uint64(base))
	for !u.IsZero() {
		var r Uint128
		u, r = u.QuoRem(b)
		i--
		buf[i] = digits[r.lo]
	}
	return string(buf[i:])
}

// String returns the decimal representation of u.
func (u Uint128) String() string {
	return u.Text(10)
}

var (
	errSyntax = errors.New("invalid syntax")
	errRange  = errors.New("value out of range")
)

// ParseUint128 parses a decimal, hexadecimal ("0x"), binary ("0b") or octal
// ("0" or "0o") literal. Underscores between digits are accepted.
func ParseUint128(s string) (Uint128, error) {
	base, body := 10, s
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "0x"):
		base, body = 16, s[2:]
	case strings.HasPrefix(lower, "0b"):
		base, body = 2, s[2:]
	case strings.HasPrefix(lower, "0o"):
		base, body = 8, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, body = 8, s[1:]
	}
	body = strings.ReplaceAll(body, "_", "")
	if body == "" {
		return Uint128{}, fmt.Errorf("ParseUint128 %q: %w", s, errSyntax)
	}
	b := Uint128From64(uint64(base))
	limit := MaxUint128.Quo(b)
	var u Uint128
	for _, c := range strings.ToLower(body) {
		d := strings.IndexRune(digits, c)
		if d < 0 || d >= base {
			return Uint128{}, fmt.Errorf("ParseUint128 %q: %w", s, errSyntax)
		}
		if u.Cmp(limit) > 0 {
			return Uint128{}, fmt.Errorf("ParseUint128 %q: %w", s, errRange)
		}
		next := u.Mul(b).Add(Uint128From64(uint64(d)))
		if next.Cmp(u.Mul(b)) < 0 {
			return Uint128{}, fmt.Errorf("ParseUint128 %q: %w", s, errRange)
		}
		u = next
	}
	return u, nil
}
