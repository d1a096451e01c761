// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"

	"github.com/JackeryShh/taichi/mpart"
	"github.com/JackeryShh/taichi/shp"
	"github.com/JackeryShh/taichi/tsr"
	"github.com/cpmech/gosl/chk"
)

// Substep advances the simulation by one step. The pass order is mandatory:
// regroup, reset states, limit and smoothness reconciliation, time selection
// and activation, rasterize, velocity backup, gravity, internal force,
// boundary conditions, resample, advection and plasticity, particle collision
func (o *MPM) Substep() {
	if len(o.particles) == 0 {
		return
	}

	o.Sched.UpdateGroups()
	o.Sched.ResetStates()
	o.oldTInt = o.curTInt

	var inc int64
	if o.Sim.Async {
		o.Sched.Reset()
		o.Sched.UpdateDtLimits()
		o.Sched.EnforceSmoothness()
		inc = o.Sched.TickIncrement(o.curTInt)
		o.curTInt += inc
		o.curT = float64(o.curTInt) * o.Sim.BaseDt
		if o.curTInt%inc != 0 {
			chk.Panic("mpm: scheduler alignment broken: t_int=%d is not a multiple of increment=%d", o.curTInt, inc)
		}
		o.Sched.SetTime(o.curTInt)
		o.Sched.Expand()
	} else {
		inc = 1
		o.Sched.MarkAllUpdating()
		o.curTInt += inc
		o.curT = float64(o.curTInt) * o.Sim.BaseDt
		o.Sched.SetTime(o.curTInt)
	}
	o.Sched.Update()

	elapsed := float64(inc) * o.Sim.BaseDt
	o.rasterize()
	o.Grid.Backup()
	o.applyExternalForce(o.Gravity, elapsed)
	o.applyDeformationForce(elapsed)
	o.applyBoundaryConditions(o.curT)
	o.resample()
	o.advect()
	o.particleCollision(o.curT)
}

// rasterize scatters particle mass and APIC momentum onto the grid and
// normalizes momentum into velocity
func (o *MPM) rasterize() {
	o.Grid.Reset()
	act := o.Sched.ActiveParticles()
	parallelFor(len(act), o.Nproc, func(n int) {
		p := act[n]
		lo, hi := o.Grid.SupportRange(p.Pos)
		for i := lo[0]; i <= hi[0]; i++ {
			for j := lo[1]; j <= hi[1]; j++ {
				for k := lo[2]; k <= hi[2]; k++ {
					dpos := tsr.Vec{float64(i) - p.Pos[0], float64(j) - p.Pos[1], float64(k) - p.Pos[2]}
					weight := shp.W(dpos)
					mom := tsr.Scale(weight*p.Mass, tsr.Add(p.V, tsr.Scale(3.0, tsr.MatVec(p.ApicB, dpos))))
					idx := o.Grid.Idx(i, j, k)
					o.Grid.Lock(idx)
					o.Grid.Mass[idx] += weight * p.Mass
					o.Grid.Vel[idx] = tsr.Add(o.Grid.Vel[idx], mom)
					o.Grid.Unlock(idx)
				}
			}
		}
	})
	o.Grid.Normalize()
}

// applyExternalForce adds gravity directly to grid velocity where mass exists
func (o *MPM) applyExternalForce(acc tsr.Vec, dt float64) {
	dv := tsr.Scale(dt, acc)
	for i := range o.Grid.Vel {
		if o.Grid.Mass[i] > 0 {
			o.Grid.Vel[i] = tsr.Add(o.Grid.Vel[i], dv)
		}
	}
}

// applyDeformationForce computes per-particle internal forces and scatters
// them onto grid velocity
func (o *MPM) applyDeformationForce(dt float64) {
	act := o.Sched.ActiveParticles()
	parallelFor(len(act), o.Nproc, func(n int) {
		p := act[n]
		p.Mdl.ComputeForce(p)
	})
	parallelFor(len(act), o.Nproc, func(n int) {
		p := act[n]
		lo, hi := o.Grid.SupportRange(p.Pos)
		for i := lo[0]; i <= hi[0]; i++ {
			for j := lo[1]; j <= hi[1]; j++ {
				for k := lo[2]; k <= hi[2]; k++ {
					idx := o.Grid.Idx(i, j, k)
					mass := o.Grid.Mass[idx]
					if mass == 0 { // no eps here
						continue
					}
					dpos := tsr.Vec{p.Pos[0] - float64(i), p.Pos[1] - float64(j), p.Pos[2] - float64(k)}
					gw := shp.DW(dpos)
					force := tsr.MatVec(p.TmpForce, gw)
					assertVec(force, "particle force")
					o.Grid.Lock(idx)
					o.Grid.Vel[idx] = tsr.Add(o.Grid.Vel[idx], tsr.Scale(dt/mass, force))
					o.Grid.Unlock(idx)
				}
			}
		}
	})
}

// applyBoundaryConditions projects grid velocities against the boundary
// surface: friction cone outside, no-penetration inside
func (o *MPM) applyBoundaryConditions(t float64) {
	if o.Surface == nil {
		return
	}
	nodes := o.Sched.ActiveNodes()
	parallelFor(len(nodes), o.Nproc, func(n int) {
		idx := nodes[n]
		i, j, k := o.Grid.Coords(idx)
		pos := tsr.Vec{float64(i), float64(j), float64(k)}
		phi := o.Surface.Distance(pos, t)
		if phi > 1 || phi < -3 {
			return
		}
		nrm := o.Surface.Gradient(pos, t)
		bv := tsr.Scale(o.Surface.TemporalDeriv(pos, t), nrm)
		v := tsr.Sub(o.Grid.Vel[idx], bv)
		if phi > 0 { // near but outside
			pressure := math.Max(-tsr.Dot(v, nrm), 0)
			mu := o.Surface.Friction()
			if mu < 0 { // sticky
				v = tsr.Vec{}
			} else {
				tang := tsr.Sub(v, tsr.Scale(tsr.Dot(v, nrm), nrm))
				if tsr.Norm(tang) > 1e-6 {
					tang = tsr.Scale(1.0/tsr.Norm(tang), tang)
				}
				friction := -clamp(tsr.Dot(tang, v), -mu*pressure, mu*pressure)
				v = tsr.Add(v, tsr.Add(tsr.Scale(pressure, nrm), tsr.Scale(friction, tang)))
			}
		} else { // penetrating: keep outward motion only
			v = tsr.Scale(math.Max(0, tsr.Dot(v, nrm)), nrm)
		}
		o.Grid.Vel[idx] = tsr.Add(v, bv)
	})
}

// resample gathers grid velocity back onto updating particles, rebuilds the
// APIC matrix and the velocity gradient, and updates deformation gradients
func (o *MPM) resample() {
	alphaDt := 1.0
	if o.Sim.Apic {
		alphaDt = 0.0
	}
	act := o.Sched.ActiveParticles()
	parallelFor(len(act), o.Nproc, func(n int) {
		p := act[n]
		if p.State != mpart.Updating {
			return
		}
		deltaT := o.Sim.BaseDt * float64(o.curTInt-p.LastUpdate)
		var v, bv tsr.Vec
		var b, cdg tsr.Mat
		count := 0
		lo, hi := o.Grid.SupportRange(p.Pos)
		for i := lo[0]; i <= hi[0]; i++ {
			for j := lo[1]; j <= hi[1]; j++ {
				for k := lo[2]; k <= hi[2]; k++ {
					count++
					idx := o.Grid.Idx(i, j, k)
					dpos := tsr.Vec{p.Pos[0] - float64(i), p.Pos[1] - float64(j), p.Pos[2] - float64(k)}
					weight := shp.W(dpos)
					gw := shp.DW(dpos)
					gvel := o.Grid.Vel[idx]
					assertVec(gvel, "grid velocity")
					v = tsr.Add(v, tsr.Scale(weight, gvel))
					b = tsr.MatAdd(b, tsr.MatScale(weight, tsr.Outer(gvel, tsr.Scale(-1, dpos))))
					bv = tsr.Add(bv, tsr.Scale(weight, o.Grid.VelBackup[idx]))
					cdg = tsr.MatAdd(cdg, tsr.Outer(gvel, gw))
				}
			}
		}
		if count != 64 || !o.Sim.Apic {
			b = tsr.Mat{}
		}
		// approximation of exp(-deltaT*damping); std::exp is too slow here
		damping := math.Max(0, 1.0-deltaT*o.Sim.AffineDamping)
		p.ApicB = tsr.MatScale(damping, b)
		cdg = tsr.MatAdd(tsr.Ident(), tsr.MatScale(deltaT, cdg))
		p.V = tsr.Add(tsr.Scale(1.0-alphaDt, v), tsr.Scale(alphaDt, tsr.Add(tsr.Sub(v, bv), p.V)))
		dg := tsr.MatMul(cdg, tsr.MatMul(p.DgE, p.DgP))
		p.DgE = tsr.MatMul(cdg, p.DgE)
		p.DgCache = dg
	})
}

// advect advances updating particles, clamps them into the domain and applies
// the variant plasticity projection
func (o *MPM) advect() {
	parallelFor(len(o.particles), o.Nproc, func(n int) {
		p := o.particles[n]
		if p.State != mpart.Updating {
			return
		}
		elapsed := float64(o.curTInt-p.LastUpdate) * o.Sim.BaseDt
		p.Pos = tsr.Add(p.Pos, tsr.Scale(elapsed, p.V))
		p.LastUpdate = o.curTInt
		for a := 0; a < 3; a++ {
			p.Pos[a] = clamp(p.Pos[a], 0, float64(o.Sim.Res[a])-eps)
		}
		p.Mdl.ApplyPlasticity(p)
	})
}

// particleCollision resolves updating particles against the boundary surface
func (o *MPM) particleCollision(t float64) {
	if o.Surface == nil {
		return
	}
	act := o.Sched.ActiveParticles()
	parallelFor(len(act), o.Nproc, func(n int) {
		p := act[n]
		if p.State == mpart.Updating {
			p.Mdl.ResolveCollision(p, o.Surface, t)
		}
	})
}

// clamp restricts x into [lo, hi]
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
