// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mission

import (
	"github.com/aeromech/goamp/numerics"
)

// HoverClimb implements a vertical climb on lift rotors only: constant
// climb rate between two altitudes, no forward speed. Unknowns are the
// rotor power coefficient, the lift throttle and the battery voltage under
// load; residuals are the motor/rotor torque match, the vertical force
// balance and the voltage match.
type HoverClimb struct {
	segbase
	AltitudeStart float64 // [m]
	AltitudeEnd   float64 // [m]
	ClimbRate     float64 // [m/s]

	// initial guesses
	GuessRotorCP      float64
	GuessThrottleLift float64
}

// NewHoverClimb returns a segment with default guesses
func NewHoverClimb(tag string, veh *Vehicle, npts int) *HoverClimb {
	return &HoverClimb{
		segbase:           segbase{tag: tag, veh: veh, npts: npts},
		GuessRotorCP:      0.02,
		GuessThrottleLift: 0.9,
	}
}

// Check validates the configuration
func (o *HoverClimb) Check() error {
	if err := o.checkBase(); err != nil {
		return err
	}
	if o.ClimbRate <= 0 {
		return ErrConfig("segment %q needs a positive climb rate (%g given)", o.tag, o.ClimbRate)
	}
	if o.AltitudeEnd <= o.AltitudeStart {
		return ErrConfig("segment %q needs AltitudeEnd > AltitudeStart (%g,%g given)", o.tag, o.AltitudeStart, o.AltitudeEnd)
	}
	return nil
}

// Rows returns the unknown row labels
func (o *HoverClimb) Rows() []string {
	return []string{RowRotorCP, RowThrottleLift, RowVoltage}
}

// Setup binds boundary conditions and discretisation
func (o *HoverClimb) Setup(start Start, ops *numerics.Operators) error {
	return o.bind(start, ops, (o.AltitudeEnd-o.AltitudeStart)/o.ClimbRate)
}

// InitGuess assembles the initial unknown vector
func (o *HoverClimb) InitGuess() []float64 {
	return o.guess(o.Rows(), map[string]float64{
		RowRotorCP:      o.GuessRotorCP,
		RowThrottleLift: o.GuessThrottleLift,
		RowVoltage:      o.veh.Bat.MaxVoltage(),
	})
}

// Evaluate computes conditions and residuals for the unknown vector x
func (o *HoverClimb) Evaluate(x []float64) (conds *Conditions, res []float64, err error) {
	n := o.npts
	cp := row(x, 0, n)
	thl := row(x, 1, n)
	vb := row(x, 2, n)
	res = make([]float64, 3*n)

	conds = newConditions(n)
	conds.Time = o.ops.Time(o.start.Time, o.dur)
	for i := 0; i < n; i++ {
		conds.Altitude[i] = o.AltitudeStart + o.ClimbRate*(conds.Time[i]-o.start.Time)
		conds.Speed[i] = o.ClimbRate
		conds.ClimbRate[i] = o.ClimbRate
	}
	o.atmo(conds)

	weight := o.veh.Mass * grav
	for i := 0; i < n; i++ {
		lift := o.veh.Net.Lift(cp[i], thl[i], vb[i], o.ClimbRate, conds.Density[i])
		res[0*n+i] = lift.TorqueResidual
		res[1*n+i] = (lift.Thrust - weight) / weight
		conds.RotorRPM[i] = lift.RPM
		conds.RotorThrust[i] = lift.Thrust
		conds.ElecPower[i] = lift.Power
		conds.ThrottleLift[i] = thl[i]
	}

	_, err = o.advanceBattery(conds, vb, res[2*n:3*n])
	if err != nil {
		return nil, nil, err
	}
	return
}
