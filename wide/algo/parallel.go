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
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-wide/wide"
)

// ParallelTransform is Transform split across at most workers goroutines.
// Chunks are whole multiples of the vector cardinal, so every chunk but the
// last runs without a tail. workers <= 0 means GOMAXPROCS.
//
// It returns ctx.Err() if the context is cancelled; chunks already running
// complete and dst may be partially written.
func ParallelTransform[T wide.Lanes](ctx context.Context, dst, src []T, op wide.Unary[T], workers int, opts ...wide.Option) error {
	size := min(len(dst), len(src))
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n, opts := vectorShape[T](opts)
	chunk := (size + workers - 1) / workers
	chunk = max(n, (chunk+n-1)/n*n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for off := 0; off < size; off += chunk {
		if gctx.Err() != nil {
			break
		}
		end := min(off+chunk, size)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			Transform(dst[off:end], src[off:end], op, opts...)
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		wide.Logger().Debug("parallel transform stopped", "op", op.Name(), "size", size, "error", err)
	}
	return err
}
