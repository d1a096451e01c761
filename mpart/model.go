// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpart

import (
	"github.com/JackeryShh/taichi/lset"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Model defines what particle variants must compute
type Model interface {

	// Init initialises the model with material parameters
	Init(prms utl.Params) error

	// ComputeForce evaluates the internal force tensor into p.TmpForce
	ComputeForce(p *Particle)

	// ApplyPlasticity projects the deformation gradients back onto the
	// variant's yield constraints
	ApplyPlasticity(p *Particle)

	// ResolveCollision corrects a particle against the boundary surface
	ResolveCollision(p *Particle, surf lset.Surface, t float64)

	// AllowedDt returns the stability time-step bound from material stiffness
	// (grid spacing is one)
	AllowedDt() float64
}

// allocators holds all available particle variants
var allocators = make(map[string]func() Model)

// New allocates a particle model from its type name; e.g. "ep" or "dp"
func New(name string) (Model, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("mpart: particle type %q is not available", name)
	}
	return alloc(), nil
}
