// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mission implements the mission-segment residual functions, the
// nonlinear segment solver and the sequencer chaining segments into a full
// flight profile
package mission

import (
	"math"

	"github.com/aeromech/goamp/mdl/battery"
	"github.com/aeromech/goamp/numerics"
)

// gravity acceleration [m/s²]
const grav = 9.80665

// unknown row labels. The slot meaning of the unknown and residual vectors
// is fixed per segment type once solving starts.
const (
	RowRotorCP      = "rotor_power_coefficient"
	RowThrottleLift = "throttle_lift"
	RowPropCP       = "propeller_power_coefficient"
	RowThrottle     = "throttle"
	RowVoltage      = "battery_voltage_under_load"
)

// Segment is one leg of a flight mission with its own boundary conditions,
// discretised time axis and unknown/residual set
type Segment interface {
	Tag() string                                          // unique identifier
	Check() error                                         // configuration validation (fail fast)
	NumPoints() int                                       // number of collocation points
	Rows() []string                                       // unknown row labels in residual order
	Setup(start Start, ops *numerics.Operators) error     // bind boundary conditions and discretisation
	Duration() float64                                    // segment duration [s] (valid after Setup)
	InitGuess() []float64                                 // initial unknown vector (warm-started)
	Evaluate(x []float64) (*Conditions, []float64, error) // conditions and residuals for x
}

// segbase holds data common to all segment types
type segbase struct {
	tag   string
	veh   *Vehicle
	npts  int
	ops   *numerics.Operators
	start Start
	dur   float64
}

func (o *segbase) Tag() string       { return o.tag }
func (o *segbase) NumPoints() int    { return o.npts }
func (o *segbase) Duration() float64 { return o.dur }

// checkBase validates the common configuration
func (o *segbase) checkBase() error {
	if o.tag == "" {
		return ErrConfig("segment has an empty tag")
	}
	if o.npts < 2 {
		return ErrConfig("segment %q has %d collocation points; at least 2 are required", o.tag, o.npts)
	}
	if o.veh == nil {
		return ErrConfig("segment %q has no vehicle", o.tag)
	}
	return o.veh.Check()
}

// bind stores the start state and operators
func (o *segbase) bind(start Start, ops *numerics.Operators, dur float64) error {
	if dur <= 0 {
		return ErrConfig("segment %q has non-positive duration %g", o.tag, dur)
	}
	o.start = start
	o.ops = ops
	o.dur = dur
	return nil
}

// guess assembles the initial unknown vector from per-row constants,
// replaced by the previous segment's converged rows when available
func (o *segbase) guess(rows []string, def map[string]float64) (x []float64) {
	n := o.npts
	x = make([]float64, len(rows)*n)
	for r, name := range rows {
		row := x[r*n : (r+1)*n]
		if warm, ok := o.start.Warm[name]; ok && len(warm) == n {
			copy(row, warm)
			continue
		}
		for i := range row {
			row[i] = def[name]
		}
	}
	return
}

// row extracts one unknown row from the packed vector
func row(x []float64, r, n int) []float64 { return x[r*n : (r+1)*n] }

// atmo fills density and temperature series for an altitude schedule
func (o *segbase) atmo(conds *Conditions) {
	for i := 0; i < o.npts; i++ {
		rho, T, _ := o.veh.Atm.Calc(conds.Altitude[i])
		conds.Density[i] = rho
		conds.AmbTemp[i] = T
	}
}

// advanceBattery runs the battery model for the commanded voltage and power
// draw series and fills the voltage-matching residual row
func (o *segbase) advanceBattery(conds *Conditions, vbat []float64, rvolt []float64) (*battery.State, error) {
	n := o.npts
	inp := &battery.Inputs{
		Current: make([]float64, n),
		Power:   make([]float64, n),
		Ambient: conds.AmbTemp,
	}
	for i := 0; i < n; i++ {
		inp.Power[i] = -conds.ElecPower[i]
		if math.Abs(vbat[i]) > 1e-8 {
			inp.Current[i] = conds.ElecPower[i] / vbat[i]
		} else {
			inp.Current[i] = math.NaN()
		}
	}
	st, err := o.veh.Bat.Advance(inp, o.start.Battery, o.ops, o.dur)
	if err != nil {
		return nil, err
	}
	vmax := o.veh.Bat.MaxVoltage()
	for i := 0; i < n; i++ {
		rvolt[i] = (vbat[i] - st.VoltageUL[i]) / vmax
	}
	conds.Battery = st
	return st, nil
}
