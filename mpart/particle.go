// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mpart implements material point particles and their constitutive
// variants (elastoplastic and granular)
package mpart

import (
	"github.com/JackeryShh/taichi/lset"
	"github.com/JackeryShh/taichi/tsr"
)

// StateType is the scheduling lifecycle state of a particle
type StateType int

// scheduling states
const (
	Resting  StateType = iota // not due for update; extrapolated for display only
	Buffered                  // transitional; support neighbourhood being prepared
	Updating                  // actively integrated this step
)

// Particle holds the state of one material point
type Particle struct {

	// kinematics
	Pos  tsr.Vec // position within [0, res-eps]
	V    tsr.Vec // velocity
	Mass float64 // mass
	Vol  float64 // volume

	// deformation
	DgE     tsr.Mat // elastic deformation gradient
	DgP     tsr.Mat // plastic deformation gradient
	DgCache tsr.Mat // cached combined gradient = DgE * DgP
	ApicB   tsr.Mat // APIC affine velocity matrix

	// scratchpad
	TmpForce tsr.Mat // force tensor set by ComputeForce, consumed by the grid scatter

	// scheduling
	State      StateType // lifecycle state
	LastUpdate int64     // tick of last committed update

	// constitutive variant
	Mdl Model
}

// NewParticle returns a particle with identity deformation gradients and unit
// mass and volume
func NewParticle(mdl Model) *Particle {
	return &Particle{
		Mass:    1,
		Vol:     1,
		DgE:     tsr.Ident(),
		DgP:     tsr.Ident(),
		DgCache: tsr.Ident(),
		Mdl:     mdl,
	}
}

// resolveCollision projects a penetrating particle out of the surface and
// removes its inward normal velocity; common to all variants
func resolveCollision(p *Particle, surf lset.Surface, t float64) {
	phi := surf.Distance(p.Pos, t)
	if phi >= 0 {
		return
	}
	n := surf.Gradient(p.Pos, t)
	bv := tsr.Scale(surf.TemporalDeriv(p.Pos, t), n)
	v := tsr.Sub(p.V, bv)
	mu := surf.Friction()
	if mu < 0 { // sticky
		v = tsr.Vec{}
	} else {
		vn := tsr.Dot(v, n)
		if vn < 0 {
			v = tsr.Sub(v, tsr.Scale(vn, n))
			if mu > 0 {
				vt := tsr.Norm(v)
				if vt > 1e-12 {
					fac := 1.0 + mu*vn/vt // vn < 0
					if fac < 0 {
						fac = 0
					}
					v = tsr.Scale(fac, v)
				}
			}
		}
	}
	p.V = tsr.Add(v, bv)
	p.Pos = tsr.Sub(p.Pos, tsr.Scale(phi, n))
}
