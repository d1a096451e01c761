// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lset

import (
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

func sl(v tsr.Vec) []float64 {
	return v[:]
}

func Test_lset01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lset01. half space")

	floor := &HalfSpace{Point: tsr.Vec{0, 2, 0}, Normal: tsr.Vec{0, 1, 0}, Mu: 0.4}
	chk.Float64(tst, "phi above", 1e-15, floor.Distance(tsr.Vec{5, 3.5, 5}, 0), 1.5)
	chk.Float64(tst, "phi below", 1e-15, floor.Distance(tsr.Vec{5, 1.0, 5}, 0), -1.0)
	chk.Array(tst, "n", 1e-17, sl(floor.Gradient(tsr.Vec{5, 3, 5}, 0)), []float64{0, 1, 0})
	chk.Float64(tst, "mu", 1e-17, floor.Friction(), 0.4)

	// moving plane: phi shrinks as the surface advances along the normal
	piston := &HalfSpace{Point: tsr.Vec{0, 0, 0}, Normal: tsr.Vec{0, 1, 0}, Speed: 2}
	chk.Float64(tst, "phi(t=0)", 1e-15, piston.Distance(tsr.Vec{0, 3, 0}, 0), 3)
	chk.Float64(tst, "phi(t=1)", 1e-15, piston.Distance(tsr.Vec{0, 3, 0}, 1), 1)
	chk.Float64(tst, "dphi/dn", 1e-15, piston.TemporalDeriv(tsr.Vec{0, 3, 0}, 1), 2)
}

func Test_lset02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lset02. sphere")

	ball := &Sphere{Center: tsr.Vec{4, 4, 4}, Radius: 2}
	chk.Float64(tst, "phi out", 1e-15, ball.Distance(tsr.Vec{4, 7, 4}, 0), 1)
	chk.Float64(tst, "phi in", 1e-15, ball.Distance(tsr.Vec{4, 5, 4}, 0), -1)
	chk.Array(tst, "n", 1e-15, sl(ball.Gradient(tsr.Vec{4, 7, 4}, 0)), []float64{0, 1, 0})

	bowl := &Sphere{Center: tsr.Vec{4, 4, 4}, Radius: 2, Inside: true}
	chk.Float64(tst, "phi contained", 1e-15, bowl.Distance(tsr.Vec{4, 5, 4}, 0), 1)
	chk.Array(tst, "n inward", 1e-15, sl(bowl.Gradient(tsr.Vec{4, 7, 4}, 0)), []float64{0, -1, 0})
}

func Test_lset03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lset03. union takes the closest surface")

	u := &Union{Surfaces: []Surface{
		&HalfSpace{Point: tsr.Vec{0, 0, 0}, Normal: tsr.Vec{0, 1, 0}},
		&HalfSpace{Point: tsr.Vec{0, 10, 0}, Normal: tsr.Vec{0, -1, 0}},
	}}
	chk.Float64(tst, "phi near floor", 1e-15, u.Distance(tsr.Vec{0, 1, 0}, 0), 1)
	chk.Array(tst, "n near floor", 1e-17, sl(u.Gradient(tsr.Vec{0, 1, 0}, 0)), []float64{0, 1, 0})
	chk.Float64(tst, "phi near lid", 1e-15, u.Distance(tsr.Vec{0, 9, 0}, 0), 1)
	chk.Array(tst, "n near lid", 1e-17, sl(u.Gradient(tsr.Vec{0, 9, 0}, 0)), []float64{0, -1, 0})
}

func Test_lset04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lset04. gradient versus numerical differentiation")

	ball := &Sphere{Center: tsr.Vec{4, 4, 4}, Radius: 2}
	pos := tsr.Vec{5, 5.5, 3.2}
	h := 1e-6
	g := ball.Gradient(pos, 0)
	for i := 0; i < 3; i++ {
		pp, pm := pos, pos
		pp[i] += h
		pm[i] -= h
		num := (ball.Distance(pp, 0) - ball.Distance(pm, 0)) / (2 * h)
		chk.Float64(tst, io.Sf("n[%d]", i), 1e-8, g[i], num)
	}
}
