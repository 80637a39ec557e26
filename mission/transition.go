// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mission

import (
	"github.com/aeromech/goamp/numerics"
)

// Transition implements the level acceleration from rotor-borne to
// wing-borne flight: both branches of the network run at once while the
// pitch attitude is scheduled linearly and lift builds on the wing. Five
// unknown rows: rotor power coefficient, lift throttle, propeller power
// coefficient, forward throttle and battery voltage under load.
type Transition struct {
	segbase
	Altitude      float64 // [m]
	AirSpeedStart float64 // [m/s]
	AirSpeedEnd   float64 // [m/s]
	Acceleration  float64 // [m/s²]
	PitchInitial  float64 // [rad]
	PitchFinal    float64 // [rad]

	// initial guesses
	GuessRotorCP      float64
	GuessThrottleLift float64
	GuessPropCP       float64
	GuessThrottle     float64
}

// NewTransition returns a segment with default guesses
func NewTransition(tag string, veh *Vehicle, npts int) *Transition {
	return &Transition{
		segbase:           segbase{tag: tag, veh: veh, npts: npts},
		GuessRotorCP:      0.03,
		GuessThrottleLift: 0.9,
		GuessPropCP:       0.14,
		GuessThrottle:     0.8,
	}
}

// Check validates the configuration
func (o *Transition) Check() error {
	if err := o.checkBase(); err != nil {
		return err
	}
	if o.Acceleration <= 0 {
		return ErrConfig("segment %q needs a positive acceleration (%g given)", o.tag, o.Acceleration)
	}
	if o.AirSpeedEnd <= o.AirSpeedStart {
		return ErrConfig("segment %q needs AirSpeedEnd > AirSpeedStart (%g,%g given)", o.tag, o.AirSpeedStart, o.AirSpeedEnd)
	}
	return nil
}

// Rows returns the unknown row labels
func (o *Transition) Rows() []string {
	return []string{RowRotorCP, RowThrottleLift, RowPropCP, RowThrottle, RowVoltage}
}

// Setup binds boundary conditions and discretisation
func (o *Transition) Setup(start Start, ops *numerics.Operators) error {
	return o.bind(start, ops, (o.AirSpeedEnd-o.AirSpeedStart)/o.Acceleration)
}

// InitGuess assembles the initial unknown vector
func (o *Transition) InitGuess() []float64 {
	return o.guess(o.Rows(), map[string]float64{
		RowRotorCP:      o.GuessRotorCP,
		RowThrottleLift: o.GuessThrottleLift,
		RowPropCP:       o.GuessPropCP,
		RowThrottle:     o.GuessThrottle,
		RowVoltage:      o.veh.Bat.MaxVoltage(),
	})
}

// Evaluate computes conditions and residuals for the unknown vector x
func (o *Transition) Evaluate(x []float64) (conds *Conditions, res []float64, err error) {
	n := o.npts
	cpr := row(x, 0, n)
	thl := row(x, 1, n)
	cpp := row(x, 2, n)
	th := row(x, 3, n)
	vb := row(x, 4, n)
	res = make([]float64, 5*n)

	conds = newConditions(n)
	conds.Time = o.ops.Time(o.start.Time, o.dur)
	for i := 0; i < n; i++ {
		x01 := (conds.Time[i] - o.start.Time) / o.dur
		conds.Altitude[i] = o.Altitude
		conds.Speed[i] = o.AirSpeedStart + o.Acceleration*(conds.Time[i]-o.start.Time)
		conds.Pitch[i] = o.PitchInitial + (o.PitchFinal-o.PitchInitial)*x01
	}
	o.atmo(conds)

	weight := o.veh.Mass * grav
	for i := 0; i < n; i++ {
		v := conds.Speed[i]
		rho := conds.Density[i]
		cl, cd := o.veh.Polar.FromAlpha(conds.Pitch[i])
		q := 0.5 * rho * v * v
		lift := q * o.veh.RefArea * cl
		drag := q * o.veh.RefArea * cd
		conds.LiftCoefficient[i] = cl
		conds.DragCoefficient[i] = cd

		// lift rotors see no axial inflow in level flight
		lb := o.veh.Net.Lift(cpr[i], thl[i], vb[i], 0, rho)
		fb := o.veh.Net.Forward(cpp[i], th[i], vb[i], v, rho)
		res[0*n+i] = lb.TorqueResidual
		res[1*n+i] = fb.TorqueResidual
		res[2*n+i] = (fb.Thrust - drag - o.veh.Mass*o.Acceleration) / weight
		res[3*n+i] = (lb.Thrust + lift - weight) / weight

		conds.RotorRPM[i] = lb.RPM
		conds.RotorThrust[i] = lb.Thrust
		conds.PropRPM[i] = fb.RPM
		conds.PropThrust[i] = fb.Thrust
		conds.ElecPower[i] = lb.Power + fb.Power
		conds.ThrottleLift[i] = thl[i]
		conds.Throttle[i] = th[i]
	}

	_, err = o.advanceBattery(conds, vb, res[4*n:5*n])
	if err != nil {
		return nil, nil, err
	}
	return
}
