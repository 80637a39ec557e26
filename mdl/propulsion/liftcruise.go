// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package propulsion

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// LiftCruise implements an electric lift+cruise network: a bank of
// vertically mounted lift rotors and a forward propeller, each behind its
// own motor group, sharing one battery bus
type LiftCruise struct {
	LiftRotor Rotor // one lift rotor unit (Count holds the bank size)
	LiftMotor Motor // motor driving each lift rotor
	Propeller Rotor // forward propeller unit
	PropMotor Motor // motor driving each propeller
}

// BranchOutput holds the state of one network branch (lift bank or forward
// propeller group) at a single collocation point
type BranchOutput struct {
	Spin           float64 // rotational speed [rev/s]
	RPM            float64 // rotational speed [rev/min]
	Thrust         float64 // total branch thrust [N]
	TorqueResidual float64 // motor-vs-rotor torque mismatch [-]
	Power          float64 // total electrical power drawn [W]
}

// Check validates the network configuration
func (o *LiftCruise) Check() error {
	if o.LiftRotor.Count < 1 && o.Propeller.Count < 1 {
		return chk.Err("lift+cruise network needs at least one rotor or propeller")
	}
	for _, m := range []Motor{o.LiftMotor, o.PropMotor} {
		if m.KV <= 0 || m.R <= 0 || m.EtaESC <= 0 || m.EtaESC > 1 {
			return chk.Err("motor data KV=%g R=%g etaESC=%g is invalid", m.KV, m.R, m.EtaESC)
		}
	}
	return nil
}

// evalBranch evaluates one rotor/motor branch given the commanded power
// coefficient, throttle and bus voltage at one collocation point
func evalBranch(rot *Rotor, mot *Motor, cp, throttle, vbus, vaxial, rho float64) (out BranchOutput) {
	vin := throttle * vbus
	cLoad := cp / (2.0 * math.Pi) * rho * pow4(rot.Diameter) * rot.Diameter
	n := mot.SpinFromLoad(vin, cLoad)
	if math.IsNaN(n) || n <= 0 {
		out.Spin = math.NaN()
		out.TorqueResidual = math.NaN()
		return
	}
	thrust, torqueAero := rot.Spin(n, vaxial, rho)
	torqueMotor := cLoad * n * n

	out.Spin = n
	out.RPM = n * 60.0
	out.Thrust = thrust * rot.Count
	out.TorqueResidual = (torqueMotor - torqueAero) / (math.Abs(torqueAero) + 1e-3)
	out.Power = mot.Power(vin, n) * rot.Count
	return
}

// Lift evaluates the lift-rotor bank at one collocation point. vaxial is
// the climb speed through the rotor disks.
func (o *LiftCruise) Lift(cp, throttle, vbus, vaxial, rho float64) BranchOutput {
	return evalBranch(&o.LiftRotor, &o.LiftMotor, cp, throttle, vbus, vaxial, rho)
}

// Forward evaluates the propeller group at one collocation point. vaxial
// is the airspeed.
func (o *LiftCruise) Forward(cp, throttle, vbus, vaxial, rho float64) BranchOutput {
	return evalBranch(&o.Propeller, &o.PropMotor, cp, throttle, vbus, vaxial, rho)
}
