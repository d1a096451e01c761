// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"github.com/JackeryShh/taichi/mpart"
	"github.com/JackeryShh/taichi/tsr"
	"github.com/cpmech/gosl/chk"
)

// Scheduler is the adaptive multi-rate time controller. It keeps an integer
// tick clock in base_delta_t units and assigns each grid region a power-of-two
// tick increment bounded by a CFL-like stability limit; particles and nodes are
// then activated so that every updating particle sees a fully populated 4x4x4
// support. All increments are powers of two and the tick counter is always a
// multiple of the increment after advancing
type Scheduler struct {

	// constants
	grid        *Grid
	baseDt      float64
	cfl         float64
	strengthMul float64
	capInt      int64 // largest allowed increment in ticks (power of two)

	// particles and grouping
	particles []*mpart.Particle
	buckets   [][]int // per-cell particle indices

	// per-step state
	dtInt  []int64 // per-node allowed increment in ticks
	active []bool  // per-node activity flag
	actP   []*mpart.Particle
	actN   []int
	tInt   int64
	minInc int64
}

// NewScheduler returns a scheduler for the given grid
func NewScheduler(grid *Grid, baseDt, cfl, strengthMul, maximumDt float64) *Scheduler {
	o := &Scheduler{
		grid:        grid,
		baseDt:      baseDt,
		cfl:         cfl,
		strengthMul: strengthMul,
		capInt:      largestPot(int64(maximumDt / baseDt)),
	}
	ncells := grid.Res[0] * grid.Res[1] * grid.Res[2]
	o.buckets = make([][]int, ncells)
	o.dtInt = make([]int64, grid.Nnodes())
	o.active = make([]bool, grid.Nnodes())
	for i := range o.dtInt {
		o.dtInt[i] = o.capInt
	}
	o.minInc = o.capInt
	return o
}

// InsertParticle registers a particle with the scheduler
func (o *Scheduler) InsertParticle(p *mpart.Particle) {
	o.particles = append(o.particles, p)
}

// cellIdx returns the flat cell index containing pos, clamped into the domain
func (o *Scheduler) cellIdx(pos tsr.Vec) int {
	var c [3]int
	for a := 0; a < 3; a++ {
		c[a] = int(pos[a])
		if c[a] < 0 {
			c[a] = 0
		}
		if c[a] > o.grid.Res[a]-1 {
			c[a] = o.grid.Res[a] - 1
		}
	}
	return (c[0]*o.grid.Res[1]+c[1])*o.grid.Res[2] + c[2]
}

// UpdateGroups re-partitions particles into grid cells
func (o *Scheduler) UpdateGroups() {
	for i := range o.buckets {
		o.buckets[i] = o.buckets[i][:0]
	}
	for i, p := range o.particles {
		c := o.cellIdx(p.Pos)
		o.buckets[c] = append(o.buckets[c], i)
	}
}

// ResetStates sets every particle back to Resting
func (o *Scheduler) ResetStates() {
	for _, p := range o.particles {
		p.State = mpart.Resting
	}
}

// Reset clears per-step transient flags and restores the increment cap
func (o *Scheduler) Reset() {
	for i := range o.active {
		o.active[i] = false
		o.dtInt[i] = o.capInt
	}
	o.actP = o.actP[:0]
	o.actN = o.actN[:0]
	o.minInc = o.capInt
}

// UpdateDtLimits recomputes per-region stable increments from a CFL-like bound
// scaled by the material-stiffness multiplier
func (o *Scheduler) UpdateDtLimits() {
	o.minInc = o.capInt
	for _, p := range o.particles {
		c := 1.0 / (p.Mdl.AllowedDt() * o.strengthMul)
		limit := o.cfl / (tsr.Norm(p.V) + c)
		inc := largestPot(int64(limit / o.baseDt))
		if inc > o.capInt {
			inc = o.capInt
		}
		if inc < o.minInc {
			o.minInc = inc
		}
		lo, hi := o.grid.SupportRange(p.Pos)
		for i := lo[0]; i <= hi[0]; i++ {
			for j := lo[1]; j <= hi[1]; j++ {
				for k := lo[2]; k <= hi[2]; k++ {
					idx := o.grid.Idx(i, j, k)
					if inc < o.dtInt[idx] {
						o.dtInt[idx] = inc
					}
				}
			}
		}
	}
}

// TickIncrement chooses the tick increment for the step starting at tInt: the
// largest power of two not exceeding the cap and the freshly computed limits,
// halved until the post-advance counter is a multiple of the increment
func (o *Scheduler) TickIncrement(tInt int64) int64 {
	g := o.minInc
	if g > o.capInt {
		g = o.capInt
	}
	for tInt%g != 0 {
		g >>= 1
	}
	if g < 1 {
		chk.Panic("mpm: scheduler produced a non-positive tick increment at t_int=%d", tInt)
	}
	return g
}

// SetTime commits the advanced tick counter
func (o *Scheduler) SetTime(tInt int64) {
	o.tInt = tInt
}

// due tells whether a particle's region must update at the current tick
func (o *Scheduler) due(p *mpart.Particle) bool {
	idx := o.nodeIdx(p.Pos)
	return o.tInt%o.dtInt[idx] == 0
}

// nodeIdx returns the flat index of the node at the corner of the cell holding pos
func (o *Scheduler) nodeIdx(pos tsr.Vec) int {
	var c [3]int
	for a := 0; a < 3; a++ {
		c[a] = int(pos[a])
		if c[a] < 0 {
			c[a] = 0
		}
		if c[a] > o.grid.Res[a]-1 {
			c[a] = o.grid.Res[a] - 1
		}
	}
	return o.grid.Idx(c[0], c[1], c[2])
}

// Expand floods activation until closure: every due particle updates, every
// node in the support of an active particle is active, and every resting
// particle overlapping an active node is buffered (its support becomes active
// too, since it must rasterize completely)
func (o *Scheduler) Expand() {
	var queue []int
	for i, p := range o.particles {
		if o.due(p) {
			p.State = mpart.Updating
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		p := o.particles[queue[len(queue)-1]]
		queue = queue[:len(queue)-1]
		lo, hi := o.grid.SupportRange(p.Pos)
		for i := lo[0]; i <= hi[0]; i++ {
			for j := lo[1]; j <= hi[1]; j++ {
				for k := lo[2]; k <= hi[2]; k++ {
					idx := o.grid.Idx(i, j, k)
					if o.active[idx] {
						continue
					}
					o.active[idx] = true
					queue = o.bufferNeighbours(i, j, k, queue)
				}
			}
		}
	}
}

// bufferNeighbours marks resting particles whose support contains node (i,j,k)
// as buffered and enqueues them for support activation
func (o *Scheduler) bufferNeighbours(i, j, k int, queue []int) []int {
	for ci := max(0, i-2); ci <= min(o.grid.Res[0]-1, i+1); ci++ {
		for cj := max(0, j-2); cj <= min(o.grid.Res[1]-1, j+1); cj++ {
			for ck := max(0, k-2); ck <= min(o.grid.Res[2]-1, k+1); ck++ {
				cell := (ci*o.grid.Res[1]+cj)*o.grid.Res[2] + ck
				for _, qi := range o.buckets[cell] {
					q := o.particles[qi]
					if q.State == mpart.Resting {
						q.State = mpart.Buffered
						queue = append(queue, qi)
					}
				}
			}
		}
	}
	return queue
}

// MarkAllUpdating is the synchronous degenerate mode: every particle updates
// and every node is considered active
func (o *Scheduler) MarkAllUpdating() {
	for _, p := range o.particles {
		p.State = mpart.Updating
	}
	for i := range o.active {
		o.active[i] = true
	}
}

// Update builds the active particle and node lists for this step
func (o *Scheduler) Update() {
	o.actP = o.actP[:0]
	o.actN = o.actN[:0]
	for _, p := range o.particles {
		if p.State != mpart.Resting {
			o.actP = append(o.actP, p)
		}
	}
	for idx, a := range o.active {
		if a {
			o.actN = append(o.actN, idx)
		}
	}
}

// ActiveParticles returns the particles taking part in this step
func (o *Scheduler) ActiveParticles() []*mpart.Particle { return o.actP }

// ActiveNodes returns the flat indices of potentially active nodes
func (o *Scheduler) ActiveNodes() []int { return o.actN }

// EnforceSmoothness reconciles neighbouring regions so their time levels
// differ by at most one octave (2:1 balance). It must run after UpdateDtLimits
// and before the increment is chosen, so activation sees the balanced field
func (o *Scheduler) EnforceSmoothness() {
	for changed := true; changed; {
		changed = false
		for idx := range o.dtInt {
			i, j, k := o.grid.Coords(idx)
			m := o.neighbourMin(i, j, k)
			if o.dtInt[idx] > 2*m {
				o.dtInt[idx] = 2 * m
				changed = true
			}
		}
	}
}

// neighbourMin returns the smallest increment among the six face neighbours
func (o *Scheduler) neighbourMin(i, j, k int) int64 {
	m := o.capInt
	for a := 0; a < 3; a++ {
		for _, d := range []int{-1, 1} {
			c := [3]int{i, j, k}
			c[a] += d
			if c[a] < 0 || c[a] > o.grid.N[a]-1 {
				continue
			}
			if v := o.dtInt[o.grid.Idx(c[0], c[1], c[2])]; v < m {
				m = v
			}
		}
	}
	return m
}

// largestPot returns the largest power of two not exceeding x (at least one)
func largestPot(x int64) int64 {
	p := int64(1)
	for p*2 <= x {
		p <<= 1
	}
	return p
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
