// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"testing"

	"github.com/JackeryShh/taichi/inp"
	"github.com/JackeryShh/taichi/mpm"
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

func Test_out01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out01. render records and state colors")

	var sim inp.Simulation
	sim.SetDefaults()
	sim.Res = [3]int{16, 16, 16}
	sim.BaseDt = 1e-3
	sim.Gravity = [3]float64{0, 0, 0}

	m := mpm.NewMPM(&sim, nil, nil)
	p := m.NewCenteredParticle()
	p.V = tsr.Vec{1, 0, 0}
	m.AddParticle(p)

	// before any step the particle rests; its record is extrapolated only
	recs := Collect(m)
	chk.IntAssert(len(recs), 1)
	chk.Array(tst, "resting color", 1e-17, recs[0].Color[:], ColorResting[:])
	chk.Array(tst, "centred pos", 1e-14, recs[0].Pos[:], []float64{0, 0, 0})

	m.Substep()
	recs = Collect(m)
	chk.Array(tst, "updating color", 1e-17, recs[0].Color[:], ColorUpdating[:])

	// the record moved with the particle but the centring held
	io.Pforan("pos = %v\n", recs[0].Pos)
	chk.Float64(tst, "moved along x", 1e-9, recs[0].Pos[0], 1e-3)
}
