// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Simulation holds all input data for one simulation
type Simulation struct {

	// global information
	Desc string `json:"desc"` // description of simulation

	// domain
	Res      [3]int     `json:"resolution"`       // grid cell count per axis
	Gravity  [3]float64 `json:"gravity"`          // gravity vector
	InitialV [3]float64 `json:"initial_velocity"` // velocity given to seeded particles

	// transfer and scheduling
	Apic          bool    `json:"apic"`            // enable affine transfer
	Async         bool    `json:"async"`           // enable multi-rate scheduling
	BaseDt        float64 `json:"base_delta_t"`    // tick duration
	Cfl           float64 `json:"cfl"`             // CFL number
	StrengthDtMul float64 `json:"strength_dt_mul"` // stability-limit scaling
	AffineDamping float64 `json:"affine_damping"`  // damping rate for the APIC matrix
	MaximumDt     float64 `json:"maximum_delta_t"` // async tick-increment cap

	// particles
	DensityTex int      `json:"density_tex"` // asset id of the seeding density field
	PType      string   `json:"type"`        // particle variant: "ep" or "dp"
	MatPrms    utl.Params `json:"material"`  // material parameters

	// execution
	Nproc int `json:"nproc"` // number of workers; 0 ⇒ GOMAXPROCS
	Seed  int `json:"seed"`  // seed for particle jitter
	Steps int `json:"steps"` // number of substeps the driver runs
}

// SetDefaults sets default values; must be called before unmarshalling
func (o *Simulation) SetDefaults() {
	o.Apic = true
	o.BaseDt = 1e-6
	o.Cfl = 1.0
	o.StrengthDtMul = 1.0
	o.MaximumDt = 1e-1
	o.PType = "ep"
	o.Steps = 1
}

// Derive validates input values and computes derived quantities
func (o *Simulation) Derive() (err error) {
	for i := 0; i < 3; i++ {
		if o.Res[i] < 4 {
			return chk.Err("inp: resolution[%d]=%d is too small; need at least 4 cells per axis", i, o.Res[i])
		}
	}
	if o.BaseDt <= 0 {
		return chk.Err("inp: base_delta_t=%g must be positive", o.BaseDt)
	}
	if o.Cfl <= 0 {
		return chk.Err("inp: cfl=%g must be positive", o.Cfl)
	}
	if o.StrengthDtMul <= 0 {
		return chk.Err("inp: strength_dt_mul=%g must be positive", o.StrengthDtMul)
	}
	if o.PType != "ep" && o.PType != "dp" {
		return chk.Err("inp: particle type %q is invalid; use \"ep\" or \"dp\"", o.PType)
	}
	if !o.Async {
		// synchronous stepping always ticks one base step at a time
		o.MaximumDt = o.BaseDt
	}
	if o.MaximumDt < o.BaseDt {
		return chk.Err("inp: maximum_delta_t=%g is below base_delta_t=%g", o.MaximumDt, o.BaseDt)
	}
	return
}

// ReadSim reads a simulation file
func ReadSim(simfilepath string) *Simulation {

	// new sim
	var o Simulation

	// read file
	b := io.ReadFile(simfilepath)

	// set default values
	o.SetDefaults()

	// decode
	err := json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// derived quantities
	err = o.Derive()
	if err != nil {
		chk.Panic("ReadSim: %v", err)
	}
	return &o
}
