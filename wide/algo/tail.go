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

import "github.com/ajroetker/go-wide/wide"

// Cardinal returns the lane count vectors of T built with opts have.
func Cardinal[T wide.Lanes](opts ...wide.Option) int {
	return wide.Zero[T](opts...).Cardinal()
}

// ProcessWithTail calls full(offset) for every complete vector of n lanes in
// size elements, then tail(offset, count) once if size is not a multiple
// of n.
//
// Example:
//
//	algo.ProcessWithTail(len(data), n,
//	    func(offset int) { ... data[offset:offset+n] ... },
//	    func(offset, count int) { ... data[offset:offset+count] ... },
//	)
func ProcessWithTail(size, n int, full func(offset int), tail func(offset, count int)) {
	vectors := size / n
	for i := range vectors {
		full(i * n)
	}
	if rem := size % n; rem > 0 {
		tail(vectors*n, rem)
	}
}

// loadTail loads src, which holds fewer lanes than a vector, repeating its
// last element into the missing lanes.
func loadTail[T wide.Lanes](src []T, opts []wide.Option) wide.Wide[T] {
	last := len(src) - 1
	return wide.Generate(func(i, _ int) T { return src[min(i, last)] }, opts...)
}
