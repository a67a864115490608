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

// Package algo runs wide operations over slices.
//
// Slices are processed one vector at a time. The final partial vector is
// padded by repeating the last element, so operations never see lanes that
// are not in the input (an integer division never divides by a padding
// zero), and only the valid lanes are stored.
//
// Example:
//
//	algo.Transform(out, in, wide.SqrtOp[float32]())
//	algo.TransformBinary(out, a, b, wide.Saturated(wide.AddOp[uint8]()))
//	total := algo.Sum(in)
//
// Transform and TransformBinary work in place when dst is also a source.
// ParallelTransform splits long slices into vector-aligned chunks processed
// concurrently.
package algo
