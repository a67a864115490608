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

// Package special provides special functions built on the wide dispatch
// engine.
//
// # Error functions
//
//   - Erfc(v) - complementary error function, 1 - erf(x)
//   - Erf(v) - error function
//
// Both evaluate in float64 with W. J. Cody's rational approximations, so
// float32 results are correctly rounded float64 results. Erfc has a vector
// kernel: it classifies every lane into one of three argument ranges,
// evaluates only the ranges that occur, and blends the results. Vector and
// scalar evaluation return identical bits for every lane.
//
// The operations are also available as wide.Unary values (ErfcOp, ErfOp), so
// the wide policies apply to them:
//
//	d := wide.Derivative(special.ErfcOp[float64](t)).Apply(v) // -2/sqrt(pi) * exp(-x*x)
//	m := wide.If(mask, special.ErfcOp[float64](t)).Apply(v)
//
// NaN and infinite arguments are handled only when the target supports
// them (wide.Target.SupportsInvalids and SupportsInfinites).
package special
