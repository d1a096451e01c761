// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"
	"sync"

	"github.com/JackeryShh/taichi/tsr"
	"github.com/cpmech/gosl/chk"
)

// Grid holds the background velocity/mass fields. Nodes are indexed by integer
// coordinates in [0,res] per axis: one node beyond the cell count on each axis
type Grid struct {
	Res [3]int // cell count per axis
	N   [3]int // node count per axis = Res + 1

	Vel       []tsr.Vec    // node velocity; momentum during scatter
	VelBackup []tsr.Vec    // snapshot of Vel for the FLIP blend
	Mass      []float64    // node mass
	locks     []sync.Mutex // one exclusive lock per node guarding accumulation
}

// NewGrid allocates grid fields for the given resolution
func NewGrid(res [3]int) *Grid {
	o := &Grid{Res: res, N: [3]int{res[0] + 1, res[1] + 1, res[2] + 1}}
	nn := o.N[0] * o.N[1] * o.N[2]
	o.Vel = make([]tsr.Vec, nn)
	o.VelBackup = make([]tsr.Vec, nn)
	o.Mass = make([]float64, nn)
	o.locks = make([]sync.Mutex, nn)
	return o
}

// Nnodes returns the total number of nodes
func (o *Grid) Nnodes() int { return o.N[0] * o.N[1] * o.N[2] }

// Idx returns the flat index of node (i,j,k)
func (o *Grid) Idx(i, j, k int) int {
	return (i*o.N[1]+j)*o.N[2] + k
}

// Coords returns the integer coordinates of flat index idx
func (o *Grid) Coords(idx int) (i, j, k int) {
	k = idx % o.N[2]
	j = (idx / o.N[2]) % o.N[1]
	i = idx / (o.N[2] * o.N[1])
	return
}

// Reset zeroes velocity and mass
func (o *Grid) Reset() {
	for i := range o.Vel {
		o.Vel[i] = tsr.Vec{}
		o.Mass[i] = 0
	}
}

// Backup snapshots the current velocity field
func (o *Grid) Backup() {
	copy(o.VelBackup, o.Vel)
}

// Lock acquires the exclusive lock of one node
func (o *Grid) Lock(idx int) { o.locks[idx].Lock() }

// Unlock releases the exclusive lock of one node
func (o *Grid) Unlock(idx int) { o.locks[idx].Unlock() }

// Normalize converts accumulated momentum into velocity: where mass is
// positive, velocity = momentum / mass; elsewhere velocity stays zero.
// Non-finite values are fatal
func (o *Grid) Normalize() {
	for i := range o.Vel {
		if o.Mass[i] > 0 {
			assertVec(o.Vel[i], "grid momentum")
			o.Vel[i] = tsr.Scale(1.0/o.Mass[i], o.Vel[i])
			assertVec(o.Vel[i], "grid velocity")
		}
	}
}

// SupportRange returns the clamped 4x4x4 node block surrounding pos
func (o *Grid) SupportRange(pos tsr.Vec) (lo, hi [3]int) {
	for a := 0; a < 3; a++ {
		base := int(math.Floor(pos[a]))
		lo[a] = base - 1
		hi[a] = base + 2
		if lo[a] < 0 {
			lo[a] = 0
		}
		if hi[a] > o.N[a]-1 {
			hi[a] = o.N[a] - 1
		}
	}
	return
}

// FullSupport tells whether the support of pos lies entirely inside the grid
func (o *Grid) FullSupport(pos tsr.Vec) bool {
	lo, hi := o.SupportRange(pos)
	return (hi[0]-lo[0]+1)*(hi[1]-lo[1]+1)*(hi[2]-lo[2]+1) == 64
}

// TotalMass sums the mass over all nodes
func (o *Grid) TotalMass() (sum float64) {
	for _, m := range o.Mass {
		sum += m
	}
	return
}

// assertVec aborts on non-finite vector values
func assertVec(v tsr.Vec, label string) {
	if !tsr.VecIsFinite(v) {
		chk.Panic("mpm: %s has non-finite values: %v", label, v)
	}
}
