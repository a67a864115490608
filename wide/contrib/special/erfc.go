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

// Argument ranges of the three approximations.
const (
	// smallLimit is 15/32: below it erf has a direct rational approximation.
	smallLimit = 0.46875
	midLimit   = 4.0
	// bigLimit is where erfc(x) underflows to zero in double precision.
	bigLimit = 26.543
	// halfEps is half the float64 machine epsilon.
	halfEps = 1.1102230246251565e-16
)

// ErfcOp returns the complementary error function as an operation. The
// target t decides whether NaN and infinite arguments get special handling;
// nil means the current target.
func ErfcOp[T wide.Floats](t *wide.Target) wide.Unary[T] {
	if t == nil {
		t = wide.CurrentTarget()
	}
	return wide.NewUnary("erfc",
		func(x T) T { return T(erfc(float64(x), t)) },
		wide.WithVectorKernel(erfcVector[T](t)),
		wide.WithDerivative(wide.NewUnary("derivative(erfc)", erfcDerivative[T])))
}

// Erfc returns erfc for every lane of v, using the platform flags of the
// target v was built for.
func Erfc[T wide.Floats](v wide.Wide[T]) wide.Wide[T] {
	return ErfcOp[T](v.Target()).Apply(v)
}

// ErfcScalar returns erfc(x) on the current target.
func ErfcScalar[T wide.Floats](x T) T {
	return T(erfc(float64(x), wide.CurrentTarget()))
}

// erfc evaluates the complementary error function in double precision.
func erfc(x float64, t *wide.Target) float64 {
	if t.SupportsInvalids && math.IsNaN(x) {
		return x
	}
	if t.SupportsInfinites && math.IsInf(x, 0) {
		if x > 0 {
			return 0
		}
		return 2
	}
	y := math.Abs(x)
	if y <= smallLimit {
		return erfcSmall(x)
	}
	var r float64
	switch {
	case y <= midLimit:
		r = erfcMid(y)
	case y <= bigLimit:
		r = erfcLarge(y)
	}
	if x < 0 {
		r = 2 - r
	}
	return r
}

// erfcDerivative is -2/sqrt(pi) * exp(-x*x).
func erfcDerivative[T wide.Floats](x T) T {
	v := float64(x)
	return T(-2 / math.SqrtPi * math.Exp(-v*v))
}

// Lane kernels of the vector form. Each one reproduces a branch of erfc for
// the lanes in its range, reflecting negative arguments itself so that the
// vector result matches the scalar one bit for bit.

func regimeSmall[T wide.Floats](x T) T {
	return T(erfcSmall(float64(x)))
}

func regimeMid[T wide.Floats](x T) T {
	v := float64(x)
	r := erfcMid(math.Abs(v))
	if v < 0 {
		r = 2 - r
	}
	return T(r)
}

// regimeLarge also covers the arguments beyond bigLimit and, on targets
// without NaN support, NaN, which all give 0 (or 2).
func regimeLarge[T wide.Floats](x T) T {
	v := float64(x)
	y := math.Abs(v)
	var r float64
	if y <= bigLimit {
		r = erfcLarge(y)
	}
	if v < 0 {
		r = 2 - r
	}
	return T(r)
}

// erfcVector classifies the lanes, evaluates only the ranges present and
// blends the results with the lane masks.
func erfcVector[T wide.Floats](t *wide.Target) func(wide.Wide[T]) wide.Wide[T] {
	return func(v wide.Wide[T]) wide.Wide[T] {
		y := wide.Abs(v)
		small := wide.LessEqual(y, v.Splat(smallLimit))
		nb := small.CountTrue()
		var r wide.Wide[T]
		if nb > 0 {
			r = wide.Map(v, regimeSmall[T])
			if nb == v.Cardinal() {
				return r
			}
		} else {
			r = v.Splat(0)
		}
		mid := small.AndNot(wide.LessEqual(y, v.Splat(midLimit)))
		nb1 := mid.CountTrue()
		if nb1 > 0 {
			r = wide.IfThenElse(mid, wide.Map(v, regimeMid[T]), r)
		}
		if nb+nb1 < v.Cardinal() {
			large := small.Or(mid).Not()
			r = wide.IfThenElse(large, wide.Map(v, regimeLarge[T]), r)
		}
		if t.SupportsInvalids {
			r = wide.IfThenElse(wide.IsNaN(v), v, r)
		}
		return r
	}
}
