// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mission

import (
	"github.com/aeromech/goamp/mdl/aero"
	"github.com/aeromech/goamp/mdl/atmosphere"
	"github.com/aeromech/goamp/mdl/battery"
	"github.com/aeromech/goamp/mdl/propulsion"
)

// Vehicle aggregates the collaborators needed by the residual functions
type Vehicle struct {
	Mass    float64                // takeoff mass [kg]
	RefArea float64                // wing reference area [m²]
	Polar   *aero.Polar            // aerodynamic model
	Net     *propulsion.LiftCruise // propulsion network
	Bat     battery.Model          // battery model
	Atm     atmosphere.Model       // atmosphere model
}

// Check validates the vehicle definition
func (o *Vehicle) Check() error {
	if o.Mass <= 0 || o.RefArea <= 0 {
		return ErrConfig("vehicle mass=%g and reference area=%g must be positive", o.Mass, o.RefArea)
	}
	if o.Polar == nil || o.Net == nil || o.Bat == nil || o.Atm == nil {
		return ErrConfig("vehicle is missing one of the aero/propulsion/battery/atmosphere collaborators")
	}
	if err := o.Polar.Check(); err != nil {
		return ErrConfig("%v", err)
	}
	return o.Net.Check()
}

// Start holds the physical state carried into a segment by the sequencer
type Start struct {
	Time     float64              // mission time at segment start [s]
	Altitude float64              // altitude at segment start [m]
	Speed    float64              // airspeed at segment start [m/s]
	Battery  battery.Initial      // battery state at segment start
	Warm     map[string][]float64 // previous segment's converged unknown rows
}

// Conditions holds the expanded physical state at every collocation point
// of a solved segment. Frozen after the solve.
type Conditions struct {
	Time      []float64 // mission time [s]
	Altitude  []float64 // altitude [m]
	Speed     []float64 // airspeed [m/s]
	ClimbRate []float64 // vertical speed [m/s]
	Pitch     []float64 // body pitch attitude [rad]
	Density   []float64 // air density [kg/m³]
	AmbTemp   []float64 // ambient temperature [K]

	LiftCoefficient []float64 // CL
	DragCoefficient []float64 // CD

	RotorRPM     []float64 // lift rotor speed [rev/min]
	RotorThrust  []float64 // lift rotor bank thrust [N]
	PropRPM      []float64 // propeller speed [rev/min]
	PropThrust   []float64 // propeller thrust [N]
	ElecPower    []float64 // total electrical power draw [W]
	Throttle     []float64 // forward throttle
	ThrottleLift []float64 // lift throttle

	Battery *battery.State // battery state series
}

// newConditions allocates all series with n points
func newConditions(n int) (o *Conditions) {
	o = new(Conditions)
	o.Time = make([]float64, n)
	o.Altitude = make([]float64, n)
	o.Speed = make([]float64, n)
	o.ClimbRate = make([]float64, n)
	o.Pitch = make([]float64, n)
	o.Density = make([]float64, n)
	o.AmbTemp = make([]float64, n)
	o.LiftCoefficient = make([]float64, n)
	o.DragCoefficient = make([]float64, n)
	o.RotorRPM = make([]float64, n)
	o.RotorThrust = make([]float64, n)
	o.PropRPM = make([]float64, n)
	o.PropThrust = make([]float64, n)
	o.ElecPower = make([]float64, n)
	o.Throttle = make([]float64, n)
	o.ThrottleLift = make([]float64, n)
	return
}

// Result holds the converged outcome of one segment solve
type Result struct {
	Tag      string      // segment tag
	Rows     []string    // unknown row labels
	Unknowns []float64   // converged unknown vector (row-major, rows × points)
	Nit      int         // iterations used
	Conds    *Conditions // expanded physical state
}

// Results holds the outcome of a mission solve keyed by segment tag, with
// the declared order preserved in Tags
type Results struct {
	Tags     []string
	Segments map[string]*Result
}
