// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package battery

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"
)

// TheveninVoltage integrates the equivalent-circuit transient voltage
//
//   dV/dt = I/C - V/(R·C)
//
// forward from vth0 across the sample times t, treating the circuit
// parameters (iCell, rTh, cTh) as piecewise constant over each interval.
// An implicit ODE solver is used so stiff (small τ = R·C) intervals do not
// require sub-stepping by the caller.
func TheveninVoltage(vth0 float64, t, iCell, rTh, cTh []float64) (v []float64, err error) {

	// checks
	n := len(t)
	if len(iCell) != n || len(rTh) != n || len(cTh) != n {
		return nil, chk.Err("thevenin series have lengths (%d,%d,%d) but %d sample times were given",
			len(iCell), len(rTh), len(cTh), n)
	}

	// dV/dt with the circuit parameters of the interval selected by iv
	iv := 1
	fcn := func(f la.Vector, dt, time float64, y la.Vector) {
		f[0] = iCell[iv]/cTh[iv] - y[0]/(rTh[iv]*cTh[iv])
	}

	// solver
	conf := ode.NewConfig("radau5", "", nil)
	conf.SetTols(1e-8, 1e-8)
	sol := ode.NewSolver(1, conf, fcn, nil, nil)
	defer sol.Free()

	// march across intervals
	v = make([]float64, n)
	v[0] = vth0
	y := la.NewVectorSlice([]float64{vth0})
	for iv = 1; iv < n; iv++ {
		dt := t[iv] - t[iv-1]
		if dt <= 0 {
			v[iv] = y[0]
			continue
		}
		if rTh[iv] <= 0 || cTh[iv] <= 0 {
			return nil, chk.Err("thevenin parameters R=%g C=%g at point %d are non-physical", rTh[iv], cTh[iv], iv)
		}
		sol.Solve(y, 0, dt)
		v[iv] = y[0]
	}
	return
}
