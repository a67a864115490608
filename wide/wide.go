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
	"strings"
)

// Wide is a vector of lanes of type T.
//
// Its storage is selected by ResolveABI when the value is built: a native
// register, an emulated array, two aggregated halves, or a scalar. Wide values
// are immutable; copying a Wide duplicates it as far as any observer can tell,
// and methods that change lanes return a new value.
//
// The zero Wide is not usable; build values with Load, Broadcast, Of,
// Generate or FromBits.
type Wide[T Lanes] struct {
	target *Target
	abi    ABI
	n      int
	reg    register    // ABINative, ABIScalar
	emu    []T         // ABIEmulated, never shared with callers
	agg    *[2]Wide[T] // ABIAggregated
}

type options struct {
	target   *Target
	cardinal int
}

// Option configures the shape of a vector value.
type Option func(*options)

// WithTarget builds the value for target t instead of the current target.
// A nil target is ignored.
func WithTarget(t *Target) Option {
	return func(o *options) {
		if t != nil {
			o.target = t
		}
	}
}

// WithCardinal sets the lane count. It must be a power of two; the default is
// the expected cardinal of the element type on the target.
func WithCardinal(n int) Option {
	return func(o *options) {
		o.cardinal = n
	}
}

func resolveOptions[T Lanes](opts []Option) options {
	o := options{target: CurrentTarget()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cardinal == 0 {
		o.cardinal = ExpectedCardinal[T](o.target)
	}
	return o
}

// build creates a value of n lanes on t, reading lane i from get.
func build[T Lanes](op string, t *Target, n int, get func(i int) T) Wide[T] {
	e := ElementTypeOf[T]()
	abi, err := ResolveABI(e, n, t)
	if err != nil {
		if re, ok := err.(*ResolutionError); ok {
			re.Op = op
		}
		panic(err)
	}
	v := Wide[T]{target: t, abi: abi, n: n}
	switch abi {
	case ABIScalar, ABINative:
		for i := range n {
			v.reg.set(i, e.Width, toBits(get(i)))
		}
	case ABIEmulated:
		v.emu = make([]T, n)
		for i := range n {
			v.emu[i] = get(i)
		}
	case ABIAggregated:
		h := n / 2
		lo := build(op, t, h, get)
		hi := build(op, t, h, func(i int) T { return get(i + h) })
		v.agg = &[2]Wide[T]{lo, hi}
	}
	return v
}

// Load creates a vector from the first lanes of src. Lanes past the end of
// src are zero.
func Load[T Lanes](src []T, opts ...Option) Wide[T] {
	o := resolveOptions[T](opts)
	return build("load", o.target, o.cardinal, func(i int) T {
		if i < len(src) {
			return src[i]
		}
		var zero T
		return zero
	})
}

// Of creates a vector on the current target whose lanes are vals.
// len(vals) must be a power of two.
func Of[T Lanes](vals ...T) Wide[T] {
	return Load(vals, WithCardinal(len(vals)))
}

// Broadcast creates a vector with every lane set to value.
func Broadcast[T Lanes](value T, opts ...Option) Wide[T] {
	o := resolveOptions[T](opts)
	return build("broadcast", o.target, o.cardinal, func(int) T { return value })
}

// Zero creates a vector with every lane set to zero.
func Zero[T Lanes](opts ...Option) Wide[T] {
	var zero T
	return Broadcast(zero, opts...)
}

// Generate creates a vector whose lane i is g(i, n), where n is the cardinal.
func Generate[T Lanes](g func(i, n int) T, opts ...Option) Wide[T] {
	o := resolveOptions[T](opts)
	return build("generate", o.target, o.cardinal, func(i int) T { return g(i, o.cardinal) })
}

// Iota creates a vector whose lane i is start+i.
func Iota[T Lanes](start T, opts ...Option) Wide[T] {
	return Generate(func(i, _ int) T { return start + T(i) }, opts...)
}

// FromBits creates a vector from raw little-endian storage: lane i is read
// from the packed bits of raw as if raw were a register. Lanes past the end
// of raw are zero.
func FromBits[T Lanes](raw []uint64, opts ...Option) Wide[T] {
	o := resolveOptions[T](opts)
	w := ElementTypeOf[T]().Width
	return build("frombits", o.target, o.cardinal, func(i int) T {
		bit := i * w * 8
		if bit/64 >= len(raw) {
			var zero T
			return zero
		}
		return fromBits[T]((raw[bit/64] >> (bit % 64)) & laneMask(w))
	})
}

// Splat returns a vector shaped like v with every lane set to value.
func (v Wide[T]) Splat(value T) Wide[T] {
	return build("splat", v.target, v.n, func(int) T { return value })
}

// reshape returns the lanes of v laid out like shape. A single-lane v is
// broadcast.
func reshape[T Lanes](v Wide[T], t *Target, n int) Wide[T] {
	return build("cast", t, n, v.laneFunc())
}

// laneFunc returns a reader for the lanes of v that broadcasts scalars.
func (v Wide[T]) laneFunc() func(i int) T {
	if v.n == 1 {
		x := v.Get(0)
		return func(int) T { return x }
	}
	if v.abi == ABIEmulated {
		return func(i int) T { return v.emu[i] }
	}
	return v.Get
}

// split returns the two halves of v laid out like the halves of like,
// which must be aggregated.
func split[T Lanes](v, like Wide[T]) (Wide[T], Wide[T]) {
	if v.abi == ABIAggregated && v.n == like.n && v.target == like.target {
		return v.agg[0], v.agg[1]
	}
	lo, hi := like.agg[0], like.agg[1]
	get := v.laneFunc()
	h := lo.n
	return build("split", lo.target, h, get),
		build("split", hi.target, h, func(i int) T { return get(i + h) })
}

// combine builds an aggregated value from two halves.
func combine[T Lanes](lo, hi Wide[T]) Wide[T] {
	return Wide[T]{target: lo.target, abi: ABIAggregated, n: lo.n + hi.n, agg: &[2]Wide[T]{lo, hi}}
}

// Cardinal returns the number of lanes.
func (v Wide[T]) Cardinal() int {
	return v.n
}

// NumLanes returns the number of lanes. It is an alias for Cardinal.
func (v Wide[T]) NumLanes() int {
	return v.n
}

// ABI returns the storage strategy backing v.
func (v Wide[T]) ABI() ABI {
	return v.abi
}

// Target returns the target v was built for.
func (v Wide[T]) Target() *Target {
	return v.target
}

// Layout returns the storage tree of v.
func (v Wide[T]) Layout() Layout {
	l := Layout{ABI: v.abi, Element: ElementTypeOf[T](), Cardinal: v.n}
	if v.abi == ABIAggregated {
		l.Halves = []Layout{v.agg[0].Layout(), v.agg[1].Layout()}
	}
	return l
}

// Halves returns the two sub-values of an aggregated vector. ok is false for
// other ABIs.
func (v Wide[T]) Halves() (lo, hi Wide[T], ok bool) {
	if v.abi != ABIAggregated {
		return lo, hi, false
	}
	return v.agg[0], v.agg[1], true
}

func (v Wide[T]) class() Class {
	return Class{Vector: v.n > 1, Element: ElementTypeOf[T](), Cardinal: v.n, ABI: v.abi}
}

// Get returns lane i. It panics if i is out of range.
func (v Wide[T]) Get(i int) T {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("wide: lane index %d out of range [0:%d]", i, v.n))
	}
	switch v.abi {
	case ABIEmulated:
		return v.emu[i]
	case ABIAggregated:
		h := v.agg[0].n
		if i < h {
			return v.agg[0].Get(i)
		}
		return v.agg[1].Get(i - h)
	default:
		return fromBits[T](v.reg.get(i, ElementTypeOf[T]().Width))
	}
}

// With returns a copy of v with lane i set to x.
func (v Wide[T]) With(i int, x T) Wide[T] {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("wide: lane index %d out of range [0:%d]", i, v.n))
	}
	switch v.abi {
	case ABIEmulated:
		emu := make([]T, v.n)
		copy(emu, v.emu)
		emu[i] = x
		v.emu = emu
	case ABIAggregated:
		lo, hi := v.agg[0], v.agg[1]
		if h := lo.n; i < h {
			lo = lo.With(i, x)
		} else {
			hi = hi.With(i-h, x)
		}
		v.agg = &[2]Wide[T]{lo, hi}
	default:
		v.reg.set(i, ElementTypeOf[T]().Width, toBits(x))
	}
	return v
}

// Lanes returns a new slice holding the lanes of v.
func (v Wide[T]) Lanes() []T {
	out := make([]T, v.n)
	v.Store(out)
	return out
}

// Store writes the lanes of v to dst, stopping at the shorter of the two.
func (v Wide[T]) Store(dst []T) {
	n := min(len(dst), v.n)
	switch v.abi {
	case ABIEmulated:
		copy(dst[:n], v.emu)
	case ABIAggregated:
		v.agg[0].Store(dst[:n])
		if h := v.agg[0].n; n > h {
			v.agg[1].Store(dst[h:n])
		}
	default:
		w := ElementTypeOf[T]().Width
		for i := range n {
			dst[i] = fromBits[T](v.reg.get(i, w))
		}
	}
}

// Store writes the lanes of v to dst. It is the function form of Wide.Store.
func Store[T Lanes](v Wide[T], dst []T) {
	v.Store(dst)
}

// Bits returns the packed little-endian bit pattern of all lanes, as a
// register of v.Cardinal() lanes would hold them.
func (v Wide[T]) Bits() []uint64 {
	w := ElementTypeOf[T]().Width
	out := make([]uint64, words(v.n, w))
	for i := range v.n {
		bit := i * w * 8
		out[bit/64] |= toBits(v.Get(i)) << (bit % 64)
	}
	return out
}

// String formats v as "(l0, l1, ...)".
func (v Wide[T]) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i := range v.n {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, v.Get(i))
	}
	b.WriteByte(')')
	return b.String()
}
