// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions for verifying the numerical
// models
package ana

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"
)

// RCCharge computes the transient voltage of a first-order RC branch driven
// by a constant current I. The analytic solution is:
//
//   V(t) = I·R + (V0 - I·R)·exp(-t/(R·C))
//
// which approaches the steady state V = I·R as t → ∞
type RCCharge struct {
	V0   float64     // initial voltage
	Icst float64     // constant driving current
	R    float64     // resistance
	C    float64     // capacitance
	sol  *ode.Solver // ODE solver
}

// Init initialises this structure
func (o *RCCharge) Init(v0, icst, r, c float64, withNum bool) {

	// input data
	o.V0 = v0
	o.Icst = icst
	o.R = r
	o.C = c

	// numerical solver with y := {V}
	if withNum {
		conf := ode.NewConfig("radau5", "", nil)
		conf.SetTols(1e-10, 1e-10)
		o.sol = ode.NewSolver(1, conf, func(f la.Vector, dt, t float64, y la.Vector) {
			f[0] = o.Icst/o.C - y[0]/(o.R*o.C)
		}, nil, nil)
	}
}

// Calc computes the analytic voltage at time t
func (o RCCharge) Calc(t float64) float64 {
	vss := o.Icst * o.R
	return vss + (o.V0-vss)*math.Exp(-t/(o.R*o.C))
}

// CalcNum computes the voltage at time t using the numerical method
func (o RCCharge) CalcNum(t float64) float64 {
	y := la.NewVectorSlice([]float64{o.V0})
	o.sol.Solve(y, 0, t)
	return y[0]
}
