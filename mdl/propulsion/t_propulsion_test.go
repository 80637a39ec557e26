// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package propulsion

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func testMotor() Motor {
	return Motor{KV: 0.45, R: 0.05, I0: 4.0, EtaESC: 0.95}
}

func Test_rotor01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rotor01. static thrust and torque")

	rot := Rotor{Diameter: 2.4, Count: 8, Ct0: 0.10, Ct1: -0.06, Ct2: -0.05, Cq0: 0.0045, Cq1: 0.004, Cq2: 0.002}
	rho := 1.225
	n := 27.0

	thrust, torque := rot.Spin(n, 0, rho)
	chk.Float64(tst, "T static", 1e-10, thrust, 0.10*rho*n*n*math.Pow(2.4, 4))
	chk.Float64(tst, "Q static", 1e-10, torque, 0.0045*rho*n*n*math.Pow(2.4, 5))

	// thrust decreases with inflow for this polar
	thrustFwd, _ := rot.Spin(n, 20, rho)
	if thrustFwd >= thrust {
		tst.Errorf("thrust must drop with axial inflow\n")
	}

	// stopped rotor produces nothing
	thrust, torque = rot.Spin(0, 10, rho)
	chk.Float64(tst, "T stopped", 1e-15, thrust, 0)
	chk.Float64(tst, "Q stopped", 1e-15, torque, 0)
}

func Test_motor01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("motor01. spin from quadratic load")

	mot := testMotor()
	vin := 400.0
	cLoad := 0.25

	n := mot.SpinFromLoad(vin, cLoad)
	if math.IsNaN(n) || n <= 0 {
		tst.Errorf("no positive spin rate found\n")
		return
	}

	// at the returned spin rate, motor torque matches the load
	chk.Float64(tst, "torque match", 1e-8, mot.Torque(vin, n), cLoad*n*n)

	// no-load case: motor spins to the I0-limited speed
	n0 := mot.SpinFromLoad(vin, 0)
	if n0 <= n {
		tst.Errorf("unloaded motor must spin faster\n")
	}
}

func Test_net01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("net01. lift branch evaluation")

	net := LiftCruise{
		LiftRotor: Rotor{Diameter: 2.4, Count: 8, Ct0: 0.10, Ct1: -0.06, Ct2: -0.05, Cq0: 0.0045, Cq1: 0.004, Cq2: 0.002},
		LiftMotor: testMotor(),
		Propeller: Rotor{Diameter: 2.0, Count: 1, Ct0: 0.14, Ct1: -0.05, Ct2: -0.08, Cq0: 0.006, Cq1: 0.002, Cq2: -0.005},
		PropMotor: Motor{KV: 0.56, R: 0.04, I0: 3.0, EtaESC: 0.95},
	}
	if err := net.Check(); err != nil {
		tst.Errorf("Check failed: %v\n", err)
		return
	}

	out := net.Lift(0.025, 0.9, 480.0, 2.5, 1.225)
	if math.IsNaN(out.Spin) {
		tst.Errorf("branch did not spin\n")
		return
	}
	if out.Thrust <= 0 || out.Power <= 0 {
		tst.Errorf("non-physical branch output: T=%v P=%v\n", out.Thrust, out.Power)
		return
	}
	chk.Float64(tst, "rpm", 1e-10, out.RPM, out.Spin*60.0)

	// voltage starved branch reports NaN for the solver to catch
	out = net.Lift(0.025, 0.0, 480.0, 2.5, 1.225)
	if !math.IsNaN(out.TorqueResidual) {
		tst.Errorf("starved branch must report NaN residual\n")
	}
}
