// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/JackeryShh/taichi/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_bspline01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bspline01. branch continuity")

	// W1 and DW1 must agree where the piecewise branches meet
	δ := 1e-8
	chk.Float64(tst, "W1(1-) = W1(1+)", 1e-7, W1(1-δ), W1(1+δ))
	chk.Float64(tst, "DW1(1-) = DW1(1+)", 1e-7, DW1(1-δ), DW1(1+δ))
	chk.Float64(tst, "W1(2) = 0", 1e-15, W1(2), 0)
	chk.Float64(tst, "DW1(2) = 0", 1e-15, DW1(2), 0)
	chk.Float64(tst, "W1(-2) = 0", 1e-15, W1(-2), 0)

	// symmetry
	chk.Float64(tst, "W1(x) = W1(-x)", 1e-17, W1(0.7), W1(-0.7))
	chk.Float64(tst, "DW1(x) = -DW1(-x)", 1e-17, DW1(0.7), -DW1(-0.7))
}

func Test_bspline02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bspline02. partition of unity")

	// for any fractional offset the weights over the four supporting
	// integer offsets sum to one
	for _, f := range []float64{0.0, 0.1, 0.25, 0.5, 0.75, 0.99} {
		sumw := 0.0
		sumdw := 0.0
		for _, i := range []float64{-2, -1, 0, 1} {
			sumw += W1(i + f)
			sumdw += DW1(i + f)
		}
		io.Pforan("f=%4.2f  Σw=%v  Σdw=%v\n", f, sumw, sumdw)
		chk.Float64(tst, "Σ w = 1", 1e-14, sumw, 1)
		chk.Float64(tst, "Σ dw = 0", 1e-14, sumdw, 0)
	}
}

func Test_bspline03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bspline03. derivative versus numerical differentiation")

	h := 1e-6
	for _, x := range []float64{-1.9, -1.3, -0.5, 0.2, 0.8, 1.4, 1.9} {
		num := (W1(x+h) - W1(x-h)) / (2 * h)
		chk.Float64(tst, io.Sf("DW1(%g)", x), 1e-8, DW1(x), num)
	}
}

func Test_bspline04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bspline04. 3D products")

	d := tsr.Vec{0.3, -0.7, 1.2}
	chk.Float64(tst, "W", 1e-15, W(d), W1(d[0])*W1(d[1])*W1(d[2]))

	// gradient against numerical differentiation
	h := 1e-6
	g := DW(d)
	for i := 0; i < 3; i++ {
		dp, dm := d, d
		dp[i] += h
		dm[i] -= h
		num := (W(dp) - W(dm)) / (2 * h)
		chk.Float64(tst, io.Sf("DW[%d]", i), 1e-8, g[i], num)
	}

	// partition of unity in 3D: sum over the full 4x4x4 support
	p := tsr.Vec{10.3, 7.6, 4.1}
	sum := 0.0
	gsum := tsr.Vec{}
	for i := int(math.Floor(p[0])) - 1; i <= int(math.Floor(p[0]))+2; i++ {
		for j := int(math.Floor(p[1])) - 1; j <= int(math.Floor(p[1]))+2; j++ {
			for k := int(math.Floor(p[2])) - 1; k <= int(math.Floor(p[2]))+2; k++ {
				dd := tsr.Vec{float64(i) - p[0], float64(j) - p[1], float64(k) - p[2]}
				sum += W(dd)
				gsum = tsr.Add(gsum, DW(dd))
			}
		}
	}
	chk.Float64(tst, "Σ W = 1", 1e-13, sum, 1)
	chk.Array(tst, "Σ DW = 0", 1e-13, gsum[:], []float64{0, 0, 0})
}

func Test_bspline05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bspline05. out-of-range argument is fatal")

	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("W1(2.5) must panic\n")
		}
	}()
	W1(2.5)
}
