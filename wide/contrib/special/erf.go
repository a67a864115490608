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

package special

import (
	"math"

	"github.com/ajroetker/go-wide/wide"
)

func init() {
	floats := []wide.Kind{wide.KindFloat}
	wide.Global.MustRegister(wide.Descriptor{
		Name:     "erfc",
		Arity:    1,
		Kinds:    floats,
		Policies: []wide.PolicyKind{wide.PolicyMasked, wide.PolicyDerivative},
		Native: func(_ wide.ElementType, p wide.PolicyKind) bool {
			return p != wide.PolicyDerivative
		},
		Doc: "complementary error function",
	})
	wide.Global.MustRegister(wide.Descriptor{
		Name:     "erf",
		Arity:    1,
		Kinds:    floats,
		Policies: []wide.PolicyKind{wide.PolicyMasked, wide.PolicyDerivative},
		Doc:      "error function",
	})
}

// ErfOp returns the error function as an operation. Its derivative is
// 2/sqrt(pi) * exp(-x*x).
func ErfOp[T wide.Floats](t *wide.Target) wide.Unary[T] {
	if t == nil {
		t = wide.CurrentTarget()
	}
	return wide.NewUnary("erf",
		func(x T) T { return T(erf(float64(x), t)) },
		wide.WithDerivative(wide.NewUnary("derivative(erf)", func(x T) T { return -erfcDerivative(x) })))
}

// Erf returns erf for every lane of v.
func Erf[T wide.Floats](v wide.Wide[T]) wide.Wide[T] {
	return ErfOp[T](v.Target()).Apply(v)
}

// ErfScalar returns erf(x) on the current target.
func ErfScalar[T wide.Floats](x T) T {
	return T(erf(float64(x), wide.CurrentTarget()))
}

// erf uses the direct approximation near zero and 1 - erfc elsewhere.
func erf(x float64, t *wide.Target) float64 {
	if math.Abs(x) <= smallLimit {
		return erfSmall(x)
	}
	return 1 - erfc(x, t)
}
