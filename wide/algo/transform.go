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

package algo

import (
	"slices"

	"github.com/ajroetker/go-wide/wide"
)

// vectorShape returns the cardinal selected by opts and a copy of opts that
// pins it.
func vectorShape[T wide.Lanes](opts []wide.Option) (int, []wide.Option) {
	n := Cardinal[T](opts...)
	return n, append(slices.Clip(opts), wide.WithCardinal(n))
}

// Transform stores op(src[i]) in dst[i] for every i below
// min(len(dst), len(src)). opts select the target and cardinal of the
// vectors used.
func Transform[T wide.Lanes](dst, src []T, op wide.Unary[T], opts ...wide.Option) {
	size := min(len(dst), len(src))
	n, opts := vectorShape[T](opts)
	ProcessWithTail(size, n,
		func(off int) {
			op.Apply(wide.Load(src[off:off+n], opts...)).Store(dst[off : off+n])
		},
		func(off, count int) {
			op.Apply(loadTail(src[off:off+count], opts)).Store(dst[off : off+count])
		})
}

// TransformBinary stores op(a[i], b[i]) in dst[i] for every i below the
// shortest length.
func TransformBinary[T wide.Lanes](dst, a, b []T, op wide.Binary[T], opts ...wide.Option) {
	size := min(len(dst), len(a), len(b))
	n, opts := vectorShape[T](opts)
	ProcessWithTail(size, n,
		func(off int) {
			x := wide.Load(a[off:off+n], opts...)
			y := wide.Load(b[off:off+n], opts...)
			op.Apply(x, y).Store(dst[off : off+n])
		},
		func(off, count int) {
			x := loadTail(a[off:off+count], opts)
			y := loadTail(b[off:off+count], opts)
			op.Apply(x, y).Store(dst[off : off+count])
		})
}

// Sum returns the sum of src. Full vectors are accumulated lane-wise and
// reduced once; the tail is added element by element.
func Sum[T wide.Lanes](src []T, opts ...wide.Option) T {
	n, opts := vectorShape[T](opts)
	acc := wide.Zero[T](opts...)
	var tail T
	ProcessWithTail(len(src), n,
		func(off int) {
			acc = wide.Add(acc, wide.Load(src[off:off+n], opts...))
		},
		func(off, count int) {
			for _, x := range src[off : off+count] {
				tail += x
			}
		})
	return wide.ReduceSum(acc) + tail
}

// CountIf returns the number of elements for which pred sets the lane.
func CountIf[T wide.Lanes](src []T, pred func(wide.Wide[T]) wide.Logical[T], opts ...wide.Option) int {
	n, opts := vectorShape[T](opts)
	count := 0
	ProcessWithTail(len(src), n,
		func(off int) {
			count += pred(wide.Load(src[off:off+n], opts...)).CountTrue()
		},
		func(off, rem int) {
			m := pred(loadTail(src[off:off+rem], opts))
			for i := range rem {
				if m.Get(i) {
					count++
				}
			}
		})
	return count
}

// FindIf returns the index of the first element for which pred sets the
// lane, or -1.
func FindIf[T wide.Lanes](src []T, pred func(wide.Wide[T]) wide.Logical[T], opts ...wide.Option) int {
	n, opts := vectorShape[T](opts)
	for off := 0; off < len(src); off += n {
		end := min(off+n, len(src))
		var v wide.Wide[T]
		if end-off == n {
			v = wide.Load(src[off:end], opts...)
		} else {
			v = loadTail(src[off:end], opts)
		}
		m := pred(v)
		if !m.AnyTrue() {
			continue
		}
		for i := range end - off {
			if m.Get(i) {
				return off + i
			}
		}
	}
	return -1
}
