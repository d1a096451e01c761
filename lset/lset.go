// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lset implements signed-distance boundary surfaces used as collision
// collaborators by the simulation core
package lset

import (
	"math"

	"github.com/JackeryShh/taichi/tsr"
)

// Surface is a time-dependent signed-distance boundary. Distance is negative
// inside the solid. TemporalDeriv returns the normal speed of the surface at
// (pos, t); the surface velocity vector is TemporalDeriv * Gradient. A negative
// friction coefficient means sticky contact; non-negative is a Coulomb coefficient
type Surface interface {
	Distance(pos tsr.Vec, t float64) float64
	Gradient(pos tsr.Vec, t float64) tsr.Vec
	TemporalDeriv(pos tsr.Vec, t float64) float64
	Friction() float64
}

// HalfSpace is a plane boundary with the solid on the side opposite to the
// normal. Speed moves the plane along its normal over time
type HalfSpace struct {
	Point  tsr.Vec // a point on the plane at t = 0
	Normal tsr.Vec // unit outward normal
	Speed  float64 // normal speed of the surface
	Mu     float64 // friction coefficient; negative ⇒ sticky
}

// Distance returns the signed distance from pos to the plane at time t
func (o *HalfSpace) Distance(pos tsr.Vec, t float64) float64 {
	return tsr.Dot(tsr.Sub(pos, o.Point), o.Normal) - o.Speed*t
}

// Gradient returns the plane normal
func (o *HalfSpace) Gradient(pos tsr.Vec, t float64) tsr.Vec {
	return o.Normal
}

// TemporalDeriv returns the normal speed of the plane
func (o *HalfSpace) TemporalDeriv(pos tsr.Vec, t float64) float64 {
	return o.Speed
}

// Friction returns the friction coefficient
func (o *HalfSpace) Friction() float64 { return o.Mu }

// Sphere is a spherical boundary. With Inside true the solid is outside the
// sphere (particles are contained); otherwise the sphere itself is solid
type Sphere struct {
	Center tsr.Vec
	Radius float64
	Inside bool
	Mu     float64
}

// Distance returns the signed distance from pos to the sphere surface
func (o *Sphere) Distance(pos tsr.Vec, t float64) float64 {
	d := tsr.Norm(tsr.Sub(pos, o.Center))
	if o.Inside {
		return o.Radius - d
	}
	return d - o.Radius
}

// Gradient returns the unit normal pointing away from the solid
func (o *Sphere) Gradient(pos tsr.Vec, t float64) tsr.Vec {
	r := tsr.Sub(pos, o.Center)
	n := tsr.Norm(r)
	if n < 1e-12 {
		return tsr.Vec{0, 1, 0}
	}
	if o.Inside {
		return tsr.Scale(-1.0/n, r)
	}
	return tsr.Scale(1.0/n, r)
}

// TemporalDeriv returns zero; this sphere is static
func (o *Sphere) TemporalDeriv(pos tsr.Vec, t float64) float64 { return 0 }

// Friction returns the friction coefficient
func (o *Sphere) Friction() float64 { return o.Mu }

// Union combines surfaces; the closest one (smallest distance) governs
type Union struct {
	Surfaces []Surface
}

// closest returns the member surface with the smallest distance at (pos, t)
func (o *Union) closest(pos tsr.Vec, t float64) Surface {
	var best Surface
	dmin := math.Inf(1)
	for _, s := range o.Surfaces {
		if d := s.Distance(pos, t); d < dmin {
			dmin = d
			best = s
		}
	}
	return best
}

// Distance returns the smallest member distance
func (o *Union) Distance(pos tsr.Vec, t float64) float64 {
	d := math.Inf(1)
	for _, s := range o.Surfaces {
		d = math.Min(d, s.Distance(pos, t))
	}
	return d
}

// Gradient returns the gradient of the closest member
func (o *Union) Gradient(pos tsr.Vec, t float64) tsr.Vec {
	if s := o.closest(pos, t); s != nil {
		return s.Gradient(pos, t)
	}
	return tsr.Vec{0, 1, 0}
}

// TemporalDeriv returns the normal speed of the closest member
func (o *Union) TemporalDeriv(pos tsr.Vec, t float64) float64 {
	if s := o.closest(pos, t); s != nil {
		return s.TemporalDeriv(pos, t)
	}
	return 0
}

// Friction returns the friction coefficient of the first member
func (o *Union) Friction() float64 {
	if len(o.Surfaces) > 0 {
		return o.Surfaces[0].Friction()
	}
	return 0
}
