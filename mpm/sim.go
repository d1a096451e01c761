// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mpm implements the material point method simulation core: grid
// transfer, forces, boundary conditions and the asynchronous multi-rate
// time-stepping scheduler
package mpm

import (
	"github.com/JackeryShh/taichi/inp"
	"github.com/JackeryShh/taichi/lset"
	"github.com/JackeryShh/taichi/mpart"
	"github.com/JackeryShh/taichi/tex"
	"github.com/JackeryShh/taichi/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
)

// domain clamp tolerance: positions stay within [0, res-eps]
const eps = 1e-4

// MPM holds all data for a material point method simulation
type MPM struct {
	Sim     *inp.Simulation  // simulation data
	Assets  *tex.Registry    // asset registry resolving the density texture
	Surface lset.Surface     // boundary collaborator; may be nil
	Grid    *Grid            // background fields
	Sched   *Scheduler       // multi-rate time controller
	Gravity tsr.Vec          // gravity vector
	Nproc   int              // number of workers

	particles []*mpart.Particle
	curTInt   int64   // integer time in ticks of base_delta_t
	oldTInt   int64   // tick counter before the current step
	curT      float64 // derived real time
}

// NewMPM returns a new simulation
//  Input:
//   sim     -- simulation input data
//   assets  -- registry resolving the seeding density texture
//   surface -- boundary surface; nil means no boundary
func NewMPM(sim *inp.Simulation, assets *tex.Registry, surface lset.Surface) (o *MPM) {
	if err := sim.Derive(); err != nil {
		chk.Panic("NewMPM: invalid simulation input: %v", err)
	}
	o = new(MPM)
	o.Sim = sim
	o.Assets = assets
	o.Surface = surface
	o.Grid = NewGrid(sim.Res)
	o.Sched = NewScheduler(o.Grid, sim.BaseDt, sim.Cfl, sim.StrengthDtMul, sim.MaximumDt)
	o.Gravity = tsr.Vec(sim.Gravity)
	o.Nproc = sim.Nproc
	rnd.Init(sim.Seed)
	return
}

// AddParticles seeds particles from the density texture: the sampled density
// at each cell centre gives the expected particle count, rounded
// stochastically, with uniform jitter inside the cell
func (o *MPM) AddParticles() {
	texture, err := o.Assets.Get(o.Sim.DensityTex)
	if err != nil {
		chk.Panic("AddParticles: cannot resolve density texture: %v", err)
	}
	res := o.Sim.Res
	for i := 0; i < res[0]; i++ {
		for j := 0; j < res[1]; j++ {
			for k := 0; k < res[2]; k++ {
				coord := tsr.Vec{
					(float64(i) + 0.5) / float64(res[0]),
					(float64(j) + 0.5) / float64(res[1]),
					(float64(k) + 0.5) / float64(res[2]),
				}
				num := texture.Sample(coord)
				n := int(num)
				if rnd.Float64(0, 1) < num-float64(n) {
					n++
				}
				for l := 0; l < n; l++ {
					p := o.newParticle()
					p.Pos = tsr.Vec{
						float64(i) + rnd.Float64(0, 1),
						float64(j) + rnd.Float64(0, 1),
						float64(k) + rnd.Float64(0, 1),
					}
					o.AddParticle(p)
				}
			}
		}
	}
	io.Pf("mpm: seeded %d particles\n", len(o.particles))
}

// newParticle allocates a particle of the configured variant
func (o *MPM) newParticle() *mpart.Particle {
	mdl, err := mpart.New(o.Sim.PType)
	if err != nil {
		chk.Panic("mpm: %v", err)
	}
	if err := mdl.Init(o.Sim.MatPrms); err != nil {
		chk.Panic("mpm: cannot initialise particle model: %v", err)
	}
	p := mpart.NewParticle(mdl)
	p.V = tsr.Vec(o.Sim.InitialV)
	return p
}

// NewCenteredParticle returns a particle of the configured variant placed at
// the grid centre; handy for small scenarios and tests
func (o *MPM) NewCenteredParticle() *mpart.Particle {
	p := o.newParticle()
	p.Pos = tsr.Vec{
		float64(o.Sim.Res[0]) / 2.0,
		float64(o.Sim.Res[1]) / 2.0,
		float64(o.Sim.Res[2]) / 2.0,
	}
	return p
}

// AddParticle registers one particle with the simulation and the scheduler
func (o *MPM) AddParticle(p *mpart.Particle) {
	p.LastUpdate = o.curTInt
	o.particles = append(o.particles, p)
	o.Sched.InsertParticle(p)
}

// Particles returns the particle store in seeding order
func (o *MPM) Particles() []*mpart.Particle { return o.particles }

// TimeInt returns the integer time in ticks
func (o *MPM) TimeInt() int64 { return o.curTInt }

// Time returns the current real time
func (o *MPM) Time() float64 { return o.curT }

// LastIncrement returns the tick increment of the latest step
func (o *MPM) LastIncrement() int64 { return o.curTInt - o.oldTInt }
