// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpart

import (
	"math"
	"testing"

	"github.com/JackeryShh/taichi/lset"
	"github.com/JackeryShh/taichi/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_factory01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("factory01. variant allocation")

	for _, name := range []string{"ep", "dp"} {
		mdl, err := New(name)
		if err != nil {
			tst.Errorf("cannot allocate %q: %v\n", name, err)
			return
		}
		if err := mdl.Init(nil); err != nil {
			tst.Errorf("cannot initialise %q: %v\n", name, err)
		}
		if mdl.AllowedDt() <= 0 {
			tst.Errorf("%q: allowed dt must be positive\n", name)
		}
	}

	if _, err := New("rigid"); err == nil {
		tst.Errorf("unknown variant must fail\n")
	}

	mdl, _ := New("ep")
	if err := mdl.Init(utl.Params{&utl.P{N: "cheese", V: 1}}); err == nil {
		tst.Errorf("unknown parameter must fail\n")
	}
}

func Test_ep01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ep01. undeformed particle carries no force")

	mdl, _ := New("ep")
	mdl.Init(nil)
	p := NewParticle(mdl)
	mdl.ComputeForce(p)
	for i := 0; i < 3; i++ {
		chk.Array(tst, io.Sf("force row %d", i), 1e-12, p.TmpForce[i][:], []float64{0, 0, 0})
	}

	// plasticity must not touch an identity gradient
	mdl.ApplyPlasticity(p)
	ident := tsr.Ident()
	for i := 0; i < 3; i++ {
		chk.Array(tst, io.Sf("DgE row %d", i), 1e-12, p.DgE[i][:], ident[i][:])
		chk.Array(tst, io.Sf("DgP row %d", i), 1e-12, p.DgP[i][:], ident[i][:])
	}
}

func Test_ep02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ep02. singular value clamping")

	mdl, _ := New("ep")
	mdl.Init(utl.Params{
		&utl.P{N: "theta_c", V: 0.025},
		&utl.P{N: "theta_s", V: 0.0075},
	})
	p := NewParticle(mdl)

	// over-stretched along x, over-compressed along y
	p.DgE = tsr.Diag(tsr.Vec{1.10, 0.90, 1.0})
	p.DgCache = p.DgE
	mdl.ApplyPlasticity(p)

	_, s, _ := tsr.SVD(p.DgE)
	io.Pforan("s = %v\n", s)
	chk.Float64(tst, "smax", 1e-12, s[0], 1.0075)
	chk.Float64(tst, "smin", 1e-12, s[2], 0.975)

	// combined gradient is preserved
	dg := tsr.MatMul(p.DgE, p.DgP)
	chk.Float64(tst, "dg[0][0]", 1e-12, dg[0][0], 1.10)
	chk.Float64(tst, "dg[1][1]", 1e-12, dg[1][1], 0.90)
}

func Test_ep03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ep03. compression produces a restoring force")

	mdl, _ := New("ep")
	mdl.Init(nil)
	p := NewParticle(mdl)
	p.DgE = tsr.Diag(tsr.Vec{0.99, 0.99, 0.99})
	mdl.ComputeForce(p)
	// isotropic compression: diagonal force tensor with positive entries
	// (expansive stress times -V0 gives a positive diagonal here)
	io.Pforan("TmpForce = %v\n", p.TmpForce)
	if p.TmpForce[0][0] <= 0 {
		tst.Errorf("compressed particle must push outwards; got %g\n", p.TmpForce[0][0])
	}
	chk.Float64(tst, "isotropy xy", 1e-12, p.TmpForce[0][0], p.TmpForce[1][1])
	chk.Float64(tst, "isotropy xz", 1e-12, p.TmpForce[0][0], p.TmpForce[2][2])
	chk.Float64(tst, "offdiag", 1e-12, p.TmpForce[0][1], 0)
}

func Test_dp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dp01. cone projection")

	mdl, _ := New("dp")
	mdl.Init(nil)
	p := NewParticle(mdl)

	// pure expansion returns to the apex
	p.DgE = tsr.Diag(tsr.Vec{1.05, 1.05, 1.05})
	p.DgCache = p.DgE
	mdl.ApplyPlasticity(p)
	ident := tsr.Ident()
	for i := 0; i < 3; i++ {
		chk.Array(tst, io.Sf("DgE row %d", i), 1e-12, p.DgE[i][:], ident[i][:])
	}
	// combined gradient preserved in the plastic part
	dg := tsr.MatMul(p.DgE, p.DgP)
	chk.Float64(tst, "dg[0][0]", 1e-12, dg[0][0], 1.05)

	// undeformed particle: no force, no projection
	q := NewParticle(mdl)
	mdl.ComputeForce(q)
	for i := 0; i < 3; i++ {
		chk.Array(tst, io.Sf("force row %d", i), 1e-9, q.TmpForce[i][:], []float64{0, 0, 0})
	}
	mdl.ApplyPlasticity(q)
	for i := 0; i < 3; i++ {
		chk.Array(tst, io.Sf("q.DgE row %d", i), 1e-12, q.DgE[i][:], ident[i][:])
	}
}

func Test_dp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dp02. shear beyond the cone is scaled back")

	mdl, _ := New("dp")
	mdl.Init(nil)
	dp := mdl.(*DruckerPrager)
	p := NewParticle(mdl)

	// strong shear under slight compression
	p.DgE = tsr.Mat{{1, 0.2, 0}, {0, 0.98, 0}, {0, 0, 0.98}}
	p.DgCache = p.DgE
	mdl.ApplyPlasticity(p)

	// after projection the Hencky strain must satisfy the yield condition
	_, s, _ := tsr.SVD(p.DgE)
	var eps tsr.Vec
	for i := 0; i < 3; i++ {
		eps[i] = math.Log(s[i])
	}
	tre := eps[0] + eps[1] + eps[2]
	var dev tsr.Vec
	for i := 0; i < 3; i++ {
		dev[i] = eps[i] - tre/3.0
	}
	f := tsr.Norm(dev) + dp.alfa*(3.0*dp.lam+2.0*dp.mu)*tre/(2.0*dp.mu)
	io.Pforan("f = %v\n", f)
	if f > 1e-10 {
		tst.Errorf("projected state still above yield: f = %g\n", f)
	}
}

func Test_coll01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("coll01. particle collision resolution")

	floor := &lset.HalfSpace{Point: tsr.Vec{0, 1, 0}, Normal: tsr.Vec{0, 1, 0}}
	mdl, _ := New("ep")
	mdl.Init(nil)

	// penetrating and moving inwards: normal velocity removed, pushed out
	p := NewParticle(mdl)
	p.Pos = tsr.Vec{4, 0.8, 4}
	p.V = tsr.Vec{1, -2, 0}
	mdl.ResolveCollision(p, floor, 0)
	chk.Float64(tst, "vy", 1e-15, p.V[1], 0)
	chk.Float64(tst, "vx kept", 1e-15, p.V[0], 1)
	chk.Float64(tst, "pushed out", 1e-15, p.Pos[1], 1.0)

	// outside the solid: untouched
	q := NewParticle(mdl)
	q.Pos = tsr.Vec{4, 1.5, 4}
	q.V = tsr.Vec{0, -2, 0}
	mdl.ResolveCollision(q, floor, 0)
	chk.Float64(tst, "vy free", 1e-15, q.V[1], -2)

	// sticky surface zeroes the full relative velocity
	glue := &lset.HalfSpace{Point: tsr.Vec{0, 1, 0}, Normal: tsr.Vec{0, 1, 0}, Mu: -1}
	r := NewParticle(mdl)
	r.Pos = tsr.Vec{4, 0.8, 4}
	r.V = tsr.Vec{1, -2, 0}
	mdl.ResolveCollision(r, glue, 0)
	chk.Array(tst, "v sticky", 1e-15, r.V[:], []float64{0, 0, 0})
}
