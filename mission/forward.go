// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mission

import (
	"math"

	"github.com/aeromech/goamp/numerics"
)

// forward-flight segments (climb, cruise, loiter) share the same unknown
// set: propeller power coefficient, forward throttle and battery voltage
// under load. The wing carries the weight, so the lift coefficient follows
// from the load factor and the residuals are the propeller torque match,
// the along-path force balance and the voltage match.

// evalForward fills the three residual rows for a forward-flight segment.
// The Time, Altitude, Speed and ClimbRate series of conds must be set.
func (o *segbase) evalForward(conds *Conditions, accel float64, x []float64) (res []float64, err error) {
	n := o.npts
	cpp := row(x, 0, n)
	th := row(x, 1, n)
	vb := row(x, 2, n)
	res = make([]float64, 3*n)
	o.atmo(conds)

	weight := o.veh.Mass * grav
	for i := 0; i < n; i++ {
		v := conds.Speed[i]
		rho := conds.Density[i]
		sinG := conds.ClimbRate[i] / v
		if sinG > 1 {
			sinG = 1
		} else if sinG < -1 {
			sinG = -1
		}
		cosG := math.Sqrt(1 - sinG*sinG)
		q := 0.5 * rho * v * v
		cl, cd := o.veh.Polar.FromLift(weight*cosG, q, o.veh.RefArea)
		drag := q * o.veh.RefArea * cd
		conds.LiftCoefficient[i] = cl
		conds.DragCoefficient[i] = cd
		conds.Pitch[i] = math.Asin(sinG)

		fb := o.veh.Net.Forward(cpp[i], th[i], vb[i], v, rho)
		res[0*n+i] = fb.TorqueResidual
		res[1*n+i] = (fb.Thrust - drag - weight*sinG - o.veh.Mass*accel) / weight

		conds.PropRPM[i] = fb.RPM
		conds.PropThrust[i] = fb.Thrust
		conds.ElecPower[i] = fb.Power
		conds.Throttle[i] = th[i]
	}

	_, err = o.advanceBattery(conds, vb, res[2*n:3*n])
	if err != nil {
		return nil, err
	}
	return
}

// fwdRows is the unknown set shared by the forward-flight segments
func fwdRows() []string { return []string{RowPropCP, RowThrottle, RowVoltage} }

// fwdGuess assembles the shared initial unknown vector
func (o *segbase) fwdGuess(cpp, th float64) []float64 {
	return o.guess(fwdRows(), map[string]float64{
		RowPropCP:   cpp,
		RowThrottle: th,
		RowVoltage:  o.veh.Bat.MaxVoltage(),
	})
}

// ClimbConstSpeed implements a wing-borne climb at constant airspeed and
// constant rate between two altitudes
type ClimbConstSpeed struct {
	segbase
	AltitudeStart float64 // [m]
	AltitudeEnd   float64 // [m]
	ClimbRate     float64 // [m/s]
	AirSpeed      float64 // [m/s]

	GuessPropCP   float64
	GuessThrottle float64
}

// NewClimbConstSpeed returns a segment with default guesses
func NewClimbConstSpeed(tag string, veh *Vehicle, npts int) *ClimbConstSpeed {
	return &ClimbConstSpeed{
		segbase:       segbase{tag: tag, veh: veh, npts: npts},
		GuessPropCP:   0.16,
		GuessThrottle: 0.95,
	}
}

// Check validates the configuration
func (o *ClimbConstSpeed) Check() error {
	if err := o.checkBase(); err != nil {
		return err
	}
	if o.ClimbRate <= 0 {
		return ErrConfig("segment %q needs a positive climb rate (%g given)", o.tag, o.ClimbRate)
	}
	if o.AltitudeEnd <= o.AltitudeStart {
		return ErrConfig("segment %q needs AltitudeEnd > AltitudeStart (%g,%g given)", o.tag, o.AltitudeStart, o.AltitudeEnd)
	}
	if o.AirSpeed <= o.ClimbRate {
		return ErrConfig("segment %q needs AirSpeed > ClimbRate (%g,%g given)", o.tag, o.AirSpeed, o.ClimbRate)
	}
	return nil
}

// Rows returns the unknown row labels
func (o *ClimbConstSpeed) Rows() []string { return fwdRows() }

// Setup binds boundary conditions and discretisation
func (o *ClimbConstSpeed) Setup(start Start, ops *numerics.Operators) error {
	return o.bind(start, ops, (o.AltitudeEnd-o.AltitudeStart)/o.ClimbRate)
}

// InitGuess assembles the initial unknown vector
func (o *ClimbConstSpeed) InitGuess() []float64 {
	return o.fwdGuess(o.GuessPropCP, o.GuessThrottle)
}

// Evaluate computes conditions and residuals for the unknown vector x
func (o *ClimbConstSpeed) Evaluate(x []float64) (conds *Conditions, res []float64, err error) {
	conds = newConditions(o.npts)
	conds.Time = o.ops.Time(o.start.Time, o.dur)
	for i := 0; i < o.npts; i++ {
		conds.Altitude[i] = o.AltitudeStart + o.ClimbRate*(conds.Time[i]-o.start.Time)
		conds.Speed[i] = o.AirSpeed
		conds.ClimbRate[i] = o.ClimbRate
	}
	res, err = o.evalForward(conds, 0, x)
	if err != nil {
		return nil, nil, err
	}
	return
}

// ClimbLinearSpeed implements a wing-borne climb at constant rate with the
// airspeed varying linearly between two values
type ClimbLinearSpeed struct {
	segbase
	AltitudeStart float64 // [m]
	AltitudeEnd   float64 // [m]
	ClimbRate     float64 // [m/s]
	AirSpeedStart float64 // [m/s]
	AirSpeedEnd   float64 // [m/s]

	GuessPropCP   float64
	GuessThrottle float64
}

// NewClimbLinearSpeed returns a segment with default guesses
func NewClimbLinearSpeed(tag string, veh *Vehicle, npts int) *ClimbLinearSpeed {
	return &ClimbLinearSpeed{
		segbase:       segbase{tag: tag, veh: veh, npts: npts},
		GuessPropCP:   0.16,
		GuessThrottle: 0.95,
	}
}

// Check validates the configuration
func (o *ClimbLinearSpeed) Check() error {
	if err := o.checkBase(); err != nil {
		return err
	}
	if o.ClimbRate <= 0 {
		return ErrConfig("segment %q needs a positive climb rate (%g given)", o.tag, o.ClimbRate)
	}
	if o.AltitudeEnd <= o.AltitudeStart {
		return ErrConfig("segment %q needs AltitudeEnd > AltitudeStart (%g,%g given)", o.tag, o.AltitudeStart, o.AltitudeEnd)
	}
	if o.AirSpeedStart <= o.ClimbRate || o.AirSpeedEnd <= o.ClimbRate {
		return ErrConfig("segment %q needs airspeeds above the climb rate (%g,%g,%g given)", o.tag, o.AirSpeedStart, o.AirSpeedEnd, o.ClimbRate)
	}
	return nil
}

// Rows returns the unknown row labels
func (o *ClimbLinearSpeed) Rows() []string { return fwdRows() }

// Setup binds boundary conditions and discretisation
func (o *ClimbLinearSpeed) Setup(start Start, ops *numerics.Operators) error {
	return o.bind(start, ops, (o.AltitudeEnd-o.AltitudeStart)/o.ClimbRate)
}

// InitGuess assembles the initial unknown vector
func (o *ClimbLinearSpeed) InitGuess() []float64 {
	return o.fwdGuess(o.GuessPropCP, o.GuessThrottle)
}

// Evaluate computes conditions and residuals for the unknown vector x
func (o *ClimbLinearSpeed) Evaluate(x []float64) (conds *Conditions, res []float64, err error) {
	conds = newConditions(o.npts)
	conds.Time = o.ops.Time(o.start.Time, o.dur)
	accel := (o.AirSpeedEnd - o.AirSpeedStart) / o.dur
	for i := 0; i < o.npts; i++ {
		t := conds.Time[i] - o.start.Time
		conds.Altitude[i] = o.AltitudeStart + o.ClimbRate*t
		conds.Speed[i] = o.AirSpeedStart + accel*t
		conds.ClimbRate[i] = o.ClimbRate
	}
	res, err = o.evalForward(conds, accel, x)
	if err != nil {
		return nil, nil, err
	}
	return
}

// Cruise implements level wing-borne flight at constant airspeed over a
// given ground distance
type Cruise struct {
	segbase
	Altitude float64 // [m]
	AirSpeed float64 // [m/s]
	Distance float64 // [m]

	GuessPropCP   float64
	GuessThrottle float64
}

// NewCruise returns a segment with default guesses
func NewCruise(tag string, veh *Vehicle, npts int) *Cruise {
	return &Cruise{
		segbase:       segbase{tag: tag, veh: veh, npts: npts},
		GuessPropCP:   0.14,
		GuessThrottle: 0.8,
	}
}

// Check validates the configuration
func (o *Cruise) Check() error {
	if err := o.checkBase(); err != nil {
		return err
	}
	if o.AirSpeed <= 0 || o.Distance <= 0 {
		return ErrConfig("segment %q needs positive airspeed and distance (%g,%g given)", o.tag, o.AirSpeed, o.Distance)
	}
	return nil
}

// Rows returns the unknown row labels
func (o *Cruise) Rows() []string { return fwdRows() }

// Setup binds boundary conditions and discretisation
func (o *Cruise) Setup(start Start, ops *numerics.Operators) error {
	return o.bind(start, ops, o.Distance/o.AirSpeed)
}

// InitGuess assembles the initial unknown vector
func (o *Cruise) InitGuess() []float64 {
	return o.fwdGuess(o.GuessPropCP, o.GuessThrottle)
}

// Evaluate computes conditions and residuals for the unknown vector x
func (o *Cruise) Evaluate(x []float64) (conds *Conditions, res []float64, err error) {
	conds = newConditions(o.npts)
	conds.Time = o.ops.Time(o.start.Time, o.dur)
	for i := 0; i < o.npts; i++ {
		conds.Altitude[i] = o.Altitude
		conds.Speed[i] = o.AirSpeed
	}
	res, err = o.evalForward(conds, 0, x)
	if err != nil {
		return nil, nil, err
	}
	return
}

// Loiter implements level wing-borne flight at constant airspeed for a
// given time
type Loiter struct {
	segbase
	Altitude float64 // [m]
	AirSpeed float64 // [m/s]
	Time     float64 // [s]

	GuessPropCP   float64
	GuessThrottle float64
}

// NewLoiter returns a segment with default guesses
func NewLoiter(tag string, veh *Vehicle, npts int) *Loiter {
	return &Loiter{
		segbase:       segbase{tag: tag, veh: veh, npts: npts},
		GuessPropCP:   0.14,
		GuessThrottle: 0.8,
	}
}

// Check validates the configuration
func (o *Loiter) Check() error {
	if err := o.checkBase(); err != nil {
		return err
	}
	if o.AirSpeed <= 0 || o.Time <= 0 {
		return ErrConfig("segment %q needs positive airspeed and time (%g,%g given)", o.tag, o.AirSpeed, o.Time)
	}
	return nil
}

// Rows returns the unknown row labels
func (o *Loiter) Rows() []string { return fwdRows() }

// Setup binds boundary conditions and discretisation
func (o *Loiter) Setup(start Start, ops *numerics.Operators) error {
	return o.bind(start, ops, o.Time)
}

// InitGuess assembles the initial unknown vector
func (o *Loiter) InitGuess() []float64 {
	return o.fwdGuess(o.GuessPropCP, o.GuessThrottle)
}

// Evaluate computes conditions and residuals for the unknown vector x
func (o *Loiter) Evaluate(x []float64) (conds *Conditions, res []float64, err error) {
	conds = newConditions(o.npts)
	conds.Time = o.ops.Time(o.start.Time, o.dur)
	for i := 0; i < o.npts; i++ {
		conds.Altitude[i] = o.Altitude
		conds.Speed[i] = o.AirSpeed
	}
	res, err = o.evalForward(conds, 0, x)
	if err != nil {
		return nil, nil, err
	}
	return
}
