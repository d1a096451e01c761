// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpart

import (
	"math"

	"github.com/JackeryShh/taichi/lset"
	"github.com/JackeryShh/taichi/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// DruckerPrager implements the granular particle variant: Hencky-strain
// elasticity with a Drucker-Prager cone return mapping
type DruckerPrager struct {
	E    float64 // Young's modulus
	Nu   float64 // Poisson's ratio
	Phi  float64 // friction angle [degrees]
	Coh  float64 // cohesion
	Rho  float64 // reference density
	mu   float64 // Lamé μ
	lam  float64 // Lamé λ
	alfa float64 // cone coefficient from φ
}

// add variant to factory
func init() {
	allocators["dp"] = func() Model { return new(DruckerPrager) }
}

// Init initialises the model
func (o *DruckerPrager) Init(prms utl.Params) (err error) {

	// default values
	o.E = 3.537e5
	o.Nu = 0.3
	o.Phi = 30.0
	o.Coh = 0.0
	o.Rho = 1000.0

	// parse parameters
	for _, p := range prms {
		switch p.N {
		case "youngs":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "phi":
			o.Phi = p.V
		case "c":
			o.Coh = p.V
		case "rho":
			o.Rho = p.V
		default:
			return chk.Err("dp: parameter named %q is incorrect", p.N)
		}
	}

	// derived: Lamé parameters and cone coefficient matching the
	// Mohr-Coulomb compression cone for friction angle φ
	o.mu = o.E / (2.0 * (1.0 + o.Nu))
	o.lam = o.E * o.Nu / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	si := math.Sin(o.Phi * math.Pi / 180.0)
	o.alfa = math.Sqrt(2.0/3.0) * 2.0 * si / (3.0 - si)
	return
}

// ComputeForce evaluates the Hencky-strain force tensor:
//  TmpForce = -V0 * U diag((2μ εi + λ tr(ε))/σi) Vᵀ Feᵀ
func (o *DruckerPrager) ComputeForce(p *Particle) {
	u, s, v := tsr.SVD(p.DgE)
	var eps, a tsr.Vec
	for i := 0; i < 3; i++ {
		eps[i] = math.Log(math.Max(s[i], 1e-6))
	}
	tre := eps[0] + eps[1] + eps[2]
	for i := 0; i < 3; i++ {
		a[i] = (2.0*o.mu*eps[i] + o.lam*tre) / math.Max(s[i], 1e-6)
	}
	pk := tsr.MatMul(u, tsr.MatMul(tsr.Diag(a), tsr.Transpose(v)))
	p.TmpForce = tsr.MatScale(-p.Vol, tsr.MatMul(pk, tsr.Transpose(p.DgE)))
}

// ApplyPlasticity projects the Hencky strain onto the Drucker-Prager cone:
// volume expansion returns to the apex, shear beyond the cone is scaled back
func (o *DruckerPrager) ApplyPlasticity(p *Particle) {
	u, s, v := tsr.SVD(p.DgE)
	var eps tsr.Vec
	for i := 0; i < 3; i++ {
		eps[i] = math.Log(math.Max(s[i], 1e-6))
	}
	tre := eps[0] + eps[1] + eps[2]
	var dev tsr.Vec
	for i := 0; i < 3; i++ {
		dev[i] = eps[i] - tre/3.0
	}
	devnorm := tsr.Norm(dev)
	if tre > 0 || devnorm < 1e-12 {
		// apex return: all elastic stretch removed
		s = tsr.Vec{1, 1, 1}
	} else {
		dgam := devnorm + o.alfa*(3.0*o.lam+2.0*o.mu)*tre/(2.0*o.mu) - o.Coh
		if dgam > 0 {
			for i := 0; i < 3; i++ {
				s[i] = math.Exp(eps[i] - dgam*dev[i]/devnorm)
			}
		}
	}
	var sinv tsr.Vec
	for i := 0; i < 3; i++ {
		sinv[i] = 1.0 / s[i]
	}
	p.DgE = tsr.MatMul(u, tsr.MatMul(tsr.Diag(s), tsr.Transpose(v)))
	p.DgP = tsr.MatMul(v, tsr.MatMul(tsr.Diag(sinv), tsr.MatMul(tsr.Transpose(u), p.DgCache)))
	p.DgCache = tsr.MatMul(p.DgE, p.DgP)
}

// ResolveCollision corrects the particle against the boundary surface
func (o *DruckerPrager) ResolveCollision(p *Particle, surf lset.Surface, t float64) {
	resolveCollision(p, surf, t)
}

// AllowedDt returns the elastic-wave stability bound
func (o *DruckerPrager) AllowedDt() float64 {
	c := math.Sqrt((o.lam + 2.0*o.mu) / o.Rho)
	return 1.0 / c
}
