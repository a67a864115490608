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

import "math"

// Coefficients of W. J. Cody's rational Chebyshev approximations for erf
// and erfc (Math. Comp. 23, 1969), as used by CALERF.
var (
	erfA = [5]float64{
		3.16112374387056560e00, 1.13864154151050156e02,
		3.77485237685302021e02, 3.20937758913846947e03,
		1.85777706184603153e-1,
	}
	erfB = [4]float64{
		2.36012909523441209e01, 2.44024637934444173e02,
		1.28261652607737228e03, 2.84423683343917062e03,
	}
	erfC = [9]float64{
		5.64188496988670089e-1, 8.88314979438837594e00,
		6.61191906371416295e01, 2.98635138197400131e02,
		8.81952221241769090e02, 1.71204761263407058e03,
		2.05107837782607147e03, 1.23033935479799725e03,
		2.15311535474403846e-8,
	}
	erfD = [8]float64{
		1.57449261107098347e01, 1.17693950891312499e02,
		5.37181101862009858e02, 1.62138957456669019e03,
		3.29079923573345963e03, 4.36261909014324716e03,
		3.43936767414372164e03, 1.23033935480374942e03,
	}
	erfP = [6]float64{
		3.05326634961232344e-1, 3.60344899949804439e-1,
		1.25781726111229246e-1, 1.60837851487422766e-2,
		6.58749161529837803e-4, 1.63153871373020978e-2,
	}
	erfQ = [5]float64{
		2.56852019228982242e00, 1.87295284992346725e00,
		5.27905102951428412e-1, 6.05183413124413191e-2,
		2.33520497626869185e-3,
	}
)

// sqrtPiInv is 1/sqrt(pi).
const sqrtPiInv = 5.6418958354775628695e-1

// erfSmall returns erf(x) for |x| <= 0.46875.
func erfSmall(x float64) float64 {
	y := math.Abs(x)
	var ysq float64
	if y > halfEps {
		ysq = y * y
	}
	xnum := erfA[4] * ysq
	xden := ysq
	for i := range 3 {
		xnum = (xnum + erfA[i]) * ysq
		xden = (xden + erfB[i]) * ysq
	}
	return x * (xnum + erfA[3]) / (xden + erfB[3])
}

func erfcSmall(x float64) float64 {
	return 1 - erfSmall(x)
}

// erfcMid returns erfc(y) for 0.46875 < y <= 4.
func erfcMid(y float64) float64 {
	xnum := erfC[8] * y
	xden := y
	for i := range 7 {
		xnum = (xnum + erfC[i]) * y
		xden = (xden + erfD[i]) * y
	}
	return scaleExp(y, (xnum+erfC[7])/(xden+erfD[7]))
}

// erfcLarge returns erfc(y) for 4 < y <= 26.543.
func erfcLarge(y float64) float64 {
	ysq := 1 / (y * y)
	xnum := erfP[5] * ysq
	xden := ysq
	for i := range 4 {
		xnum = (xnum + erfP[i]) * ysq
		xden = (xden + erfQ[i]) * ysq
	}
	r := ysq * (xnum + erfP[4]) / (xden + erfQ[4])
	return scaleExp(y, (sqrtPiInv-r)/y)
}

// scaleExp multiplies r by exp(-y*y), splitting y*y so that no precision is
// lost to the rounding of the square.
func scaleExp(y, r float64) float64 {
	ysq := math.Trunc(y*16) / 16
	del := (y - ysq) * (y + ysq)
	return math.Exp(-ysq*ysq) * math.Exp(-del) * r
}
