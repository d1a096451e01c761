// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/JackeryShh/taichi/inp"
	"github.com/JackeryShh/taichi/lset"
	"github.com/JackeryShh/taichi/mpm"
	"github.com/JackeryShh/taichi/out"
	"github.com/JackeryShh/taichi/tex"
	"github.com/JackeryShh/taichi/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "inp/data/snow", ".sim", true)
	verbose := io.ArgToBool(1, true)

	// message
	if verbose {
		io.PfWhite("\nTaichi MPM -- Material Point Method simulation core\n\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// simulation input
	sim := inp.ReadSim(fnamepath)
	if sim == nil {
		chk.Panic("cannot read simulation input data")
	}

	// density texture: a blob in the upper half of the domain
	assets := tex.NewRegistry()
	sim.DensityTex = assets.Register(tex.Sphere{
		Center: tsr.Vec{0.5, 0.65, 0.5},
		Radius: 0.15,
		Val:    4,
	})

	// boundary: frictional floor
	floor := &lset.HalfSpace{
		Point:  tsr.Vec{0, 3, 0},
		Normal: tsr.Vec{0, 1, 0},
		Mu:     0.4,
	}

	// allocate and seed
	m := mpm.NewMPM(sim, assets, floor)
	m.AddParticles()

	// run
	for step := 0; step < sim.Steps; step++ {
		m.Substep()
		if verbose && (step+1)%10 == 0 {
			io.Pf("step %4d  t=%12.6e  increment=%d\n", step+1, m.Time(), m.LastIncrement())
		}
	}

	// hand the final frame to the renderer
	records := out.Collect(m)
	if verbose {
		io.Pf("\nfinal time = %v\n", m.Time())
		io.Pf("render records = %d\n", len(records))
	}
}
