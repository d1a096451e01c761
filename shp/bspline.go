// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements the cubic B-spline transfer kernel mapping particle
// influence onto the background grid
package shp

import (
	"math"

	"github.com/JackeryShh/taichi/tsr"
	"github.com/cpmech/gosl/chk"
)

// Rad is the support radius of the kernel; a particle influences the nodes
// within the surrounding 4x4x4 block only
const Rad = 2.0

// W1 computes the 1D piecewise cubic B-spline weight
//  Note: x must satisfy |x| ≤ 2
func W1(x float64) float64 {
	x = math.Abs(x)
	if x > Rad {
		chk.Panic("shp: kernel argument %g is outside [-2,2]", x)
	}
	if x < 1 {
		return 0.5*x*x*x - x*x + 2.0/3.0
	}
	return -1.0/6.0*x*x*x + x*x - 2.0*x + 4.0/3.0
}

// DW1 computes the derivative of the 1D cubic B-spline weight
//  Note: x must satisfy |x| ≤ 2
func DW1(x float64) float64 {
	s := 1.0
	if x < 0 {
		s = -1.0
		x = -x
	}
	if x > Rad {
		chk.Panic("shp: kernel argument %g is outside [-2,2]", x)
	}
	xx := x * x
	var val float64
	if x < 1 {
		val = 1.5*xx - 2.0*x
	} else {
		val = -0.5*xx + 2.0*x - 2.0
	}
	return s * val
}

// W computes the 3D tensor-product weight for offset d
func W(d tsr.Vec) float64 {
	return W1(d[0]) * W1(d[1]) * W1(d[2])
}

// DW computes the gradient of the 3D weight for offset d
func DW(d tsr.Vec) tsr.Vec {
	return tsr.Vec{
		DW1(d[0]) * W1(d[1]) * W1(d[2]),
		W1(d[0]) * DW1(d[1]) * W1(d[2]),
		W1(d[0]) * W1(d[1]) * DW1(d[2]),
	}
}
