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

// Elastoplastic implements the snow-type elastoplastic particle variant with
// singular-value clamping plasticity and a fixed-corotated elastic response
type Elastoplastic struct {
	E         float64 // Young's modulus
	Nu        float64 // Poisson's ratio
	Hardening float64 // ξ: hardening coefficient
	ThetaC    float64 // critical compression
	ThetaS    float64 // critical stretch
	Rho       float64 // reference density
	mu0       float64 // initial Lamé μ
	lam0      float64 // initial Lamé λ
}

// add variant to factory
func init() {
	allocators["ep"] = func() Model { return new(Elastoplastic) }
}

// Init initialises the model
func (o *Elastoplastic) Init(prms utl.Params) (err error) {

	// default values
	o.E = 1.4e5
	o.Nu = 0.2
	o.Hardening = 10.0
	o.ThetaC = 2.5e-2
	o.ThetaS = 7.5e-3
	o.Rho = 400.0

	// parse parameters
	for _, p := range prms {
		switch p.N {
		case "youngs":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "hardening":
			o.Hardening = p.V
		case "theta_c":
			o.ThetaC = p.V
		case "theta_s":
			o.ThetaS = p.V
		case "rho":
			o.Rho = p.V
		default:
			return chk.Err("ep: parameter named %q is incorrect", p.N)
		}
	}

	// derived: Lamé parameters
	o.mu0 = o.E / (2.0 * (1.0 + o.Nu))
	o.lam0 = o.E * o.Nu / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	return
}

// lame returns the hardened Lamé parameters for the current plastic volume change
func (o *Elastoplastic) lame(p *Particle) (mu, lam float64) {
	jp := tsr.Det(p.DgP)
	e := math.Exp(math.Min(o.Hardening*(1.0-jp), 5.0))
	return o.mu0 * e, o.lam0 * e
}

// ComputeForce evaluates the fixed-corotated force tensor:
//  TmpForce = -V0 * (2μ(Fe - Re)Feᵀ + λ(Je - 1)Je I)
func (o *Elastoplastic) ComputeForce(p *Particle) {
	mu, lam := o.lame(p)
	je := tsr.Det(p.DgE)
	re := tsr.PolarR(p.DgE)
	f := tsr.MatMul(tsr.MatScale(2.0*mu, tsr.MatSub(p.DgE, re)), tsr.Transpose(p.DgE))
	a := lam * (je - 1.0) * je
	for i := 0; i < 3; i++ {
		f[i][i] += a
	}
	p.TmpForce = tsr.MatScale(-p.Vol, f)
}

// ApplyPlasticity clamps the singular values of the elastic gradient into
// [1-θc, 1+θs] and pushes the excess into the plastic gradient, keeping the
// combined gradient unchanged
func (o *Elastoplastic) ApplyPlasticity(p *Particle) {
	u, s, v := tsr.SVD(p.DgE)
	var sinv tsr.Vec
	for i := 0; i < 3; i++ {
		if s[i] < 1.0-o.ThetaC {
			s[i] = 1.0 - o.ThetaC
		}
		if s[i] > 1.0+o.ThetaS {
			s[i] = 1.0 + o.ThetaS
		}
		sinv[i] = 1.0 / s[i]
	}
	p.DgE = tsr.MatMul(u, tsr.MatMul(tsr.Diag(s), tsr.Transpose(v)))
	p.DgP = tsr.MatMul(v, tsr.MatMul(tsr.Diag(sinv), tsr.MatMul(tsr.Transpose(u), p.DgCache)))
	p.DgCache = tsr.MatMul(p.DgE, p.DgP)
}

// ResolveCollision corrects the particle against the boundary surface
func (o *Elastoplastic) ResolveCollision(p *Particle, surf lset.Surface, t float64) {
	resolveCollision(p, surf, t)
}

// AllowedDt returns the elastic-wave stability bound
func (o *Elastoplastic) AllowedDt() float64 {
	c := math.Sqrt((o.lam0 + 2.0*o.mu0) / o.Rho)
	return 1.0 / c
}
