// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out collects render records from simulations for external renderers
package out

import (
	"github.com/JackeryShh/taichi/mpart"
	"github.com/JackeryShh/taichi/mpm"
	"github.com/JackeryShh/taichi/tsr"
)

// state colors (RGBA)
var (
	ColorUpdating = [4]float64{0.8, 0.1, 0.2, 0.5}
	ColorBuffered = [4]float64{0.8, 0.8, 0.2, 0.5}
	ColorResting  = [4]float64{0.8, 0.9, 1.0, 0.5}
)

// RenderParticle is one record consumed by an external renderer
type RenderParticle struct {
	Pos   tsr.Vec
	Color [4]float64
}

// Collect returns render records for all particles, in store order, centred on
// the grid. A particle not updated this step is shown at an extrapolated
// position: last committed position plus elapsed time times velocity; it is
// never physically advanced here
func Collect(m *mpm.MPM) []RenderParticle {
	res := m.Sim.Res
	center := tsr.Vec{float64(res[0]) / 2.0, float64(res[1]) / 2.0, float64(res[2]) / 2.0}
	records := make([]RenderParticle, 0, len(m.Particles()))
	for _, p := range m.Particles() {
		elapsed := float64(m.TimeInt()-p.LastUpdate) * m.Sim.BaseDt
		pos := tsr.Add(tsr.Sub(p.Pos, center), tsr.Scale(elapsed, p.V))
		color := ColorResting
		switch p.State {
		case mpart.Updating:
			color = ColorUpdating
		case mpart.Buffered:
			color = ColorBuffered
		}
		records = append(records, RenderParticle{Pos: pos, Color: color})
	}
	return records
}
