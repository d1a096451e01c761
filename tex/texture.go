// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tex implements density textures for particle seeding and the
// registry resolving texture ids
package tex

import (
	"math"

	"github.com/JackeryShh/taichi/tsr"
)

// Texture samples a scalar density field over the unit cube
type Texture interface {
	Sample(coord tsr.Vec) float64
}

// Const is a uniform density field
type Const struct {
	Val float64
}

// Sample returns the constant value
func (o Const) Sample(coord tsr.Vec) float64 { return o.Val }

// Sphere is a spherical density blob: Val inside, zero outside
type Sphere struct {
	Center tsr.Vec
	Radius float64
	Val    float64
}

// Sample returns the density at coord
func (o Sphere) Sample(coord tsr.Vec) float64 {
	if tsr.Norm(tsr.Sub(coord, o.Center)) <= o.Radius {
		return o.Val
	}
	return 0
}

// Box is an axis-aligned box density region: Val inside, zero outside
type Box struct {
	Lo, Hi tsr.Vec
	Val    float64
}

// Sample returns the density at coord
func (o Box) Sample(coord tsr.Vec) float64 {
	for i := 0; i < 3; i++ {
		if coord[i] < o.Lo[i] || coord[i] > o.Hi[i] {
			return 0
		}
	}
	return o.Val
}

// Scale multiplies the density of another texture
type Scale struct {
	Tex Texture
	Fac float64
}

// Sample returns the scaled density at coord
func (o Scale) Sample(coord tsr.Vec) float64 {
	return o.Fac * math.Max(0, o.Tex.Sample(coord))
}
