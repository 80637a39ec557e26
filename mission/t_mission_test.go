// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mission

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/aeromech/goamp/mdl/aero"
	"github.com/aeromech/goamp/mdl/atmosphere"
	"github.com/aeromech/goamp/mdl/battery"
	"github.com/aeromech/goamp/mdl/propulsion"
)

// testVehicle returns a small electric lift+cruise aircraft
func testVehicle(tst *testing.T) *Vehicle {
	bat, err := battery.New("linimnco")
	if err != nil {
		tst.Fatalf("cannot allocate battery model: %v\n", err)
	}
	if err = bat.Init(bat.GetPrms(true)); err != nil {
		tst.Fatalf("cannot initialise battery model: %v\n", err)
	}
	atm := new(atmosphere.US1976)
	atm.Init(0)
	return &Vehicle{
		Mass:    1800.0,
		RefArea: 15.0,
		Polar: &aero.Polar{
			CL0:     0.3,
			CLalpha: 5.7,
			CD0:     0.025,
			K:       0.04,
			CLmax:   1.4,
		},
		Net: &propulsion.LiftCruise{
			LiftRotor: propulsion.Rotor{Diameter: 2.4, Count: 8, Ct0: 0.10, Ct1: -0.06, Ct2: -0.05, Cq0: 0.0045, Cq1: 0.004, Cq2: 0.002},
			LiftMotor: propulsion.Motor{KV: 0.45, R: 0.05, I0: 4.0, EtaESC: 0.95},
			Propeller: propulsion.Rotor{Diameter: 2.0, Count: 1, Ct0: 0.14, Ct1: -0.05, Ct2: -0.08, Cq0: 0.006, Cq1: 0.002, Cq2: -0.005},
			PropMotor: propulsion.Motor{KV: 0.56, R: 0.04, I0: 3.0, EtaESC: 0.95},
		},
		Bat: bat,
		Atm: atm,
	}
}

// testStart returns a full-battery start state at sea level
func testStart(veh *Vehicle) Start {
	return Start{
		Battery: battery.Initial{
			Energy:        veh.Bat.MaxEnergy(),
			CellTemp:      293.15,
			RGrowthFactor: 1.0,
		},
	}
}

// testMission assembles a profile exercising every segment type
func testMission(veh *Vehicle) *Mission {
	mis := new(Mission)

	hov := NewHoverClimb("hover_climb", veh, 8)
	hov.AltitudeStart = 0
	hov.AltitudeEnd = 40
	hov.ClimbRate = 3.0
	mis.Add(hov)

	tra := NewTransition("transition", veh, 8)
	tra.Altitude = 40
	tra.AirSpeedStart = 5.0
	tra.AirSpeedEnd = 45.0
	tra.Acceleration = 1.0
	tra.PitchInitial = 0.0
	tra.PitchFinal = 0.05
	mis.Add(tra)

	cl1 := NewClimbConstSpeed("climb_1", veh, 8)
	cl1.AltitudeStart = 40
	cl1.AltitudeEnd = 300
	cl1.ClimbRate = 4.0
	cl1.AirSpeed = 50.0
	mis.Add(cl1)

	cl2 := NewClimbLinearSpeed("climb_2", veh, 8)
	cl2.AltitudeStart = 300
	cl2.AltitudeEnd = 500
	cl2.ClimbRate = 3.0
	cl2.AirSpeedStart = 50.0
	cl2.AirSpeedEnd = 60.0
	mis.Add(cl2)

	cru := NewCruise("cruise", veh, 8)
	cru.Altitude = 500
	cru.AirSpeed = 60.0
	cru.Distance = 10e3
	mis.Add(cru)

	loi := NewLoiter("loiter", veh, 8)
	loi.Altitude = 500
	loi.AirSpeed = 50.0
	loi.Time = 120.0
	mis.Add(loi)
	return mis
}

func Test_mis01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mis01. full profile with every segment type")

	veh := testVehicle(tst)
	mis := testMission(veh)
	res, err := mis.Solve(testStart(veh), chk.Verbose)
	if err != nil {
		tst.Fatalf("mission failed: %v\n", err)
	}

	// declaration order preserved
	tags := []string{"hover_climb", "transition", "climb_1", "climb_2", "cruise", "loiter"}
	chk.IntAssert(len(res.Tags), len(tags))
	for i, tag := range tags {
		if res.Tags[i] != tag {
			tst.Fatalf("tag %d is %q; want %q\n", i, res.Tags[i], tag)
		}
		if res.Segments[tag] == nil {
			tst.Fatalf("missing result for segment %q\n", tag)
		}
	}

	// physical checks per segment
	emax := veh.Bat.MaxEnergy()
	for _, tag := range tags {
		st := res.Segments[tag].Conds.Battery
		for i, soc := range st.SOC {
			if soc < 0 || soc > 1 {
				tst.Fatalf("segment %q: SOC[%d]=%g out of [0,1]\n", tag, i, soc)
			}
			if st.Energy[i] < 0 || st.Energy[i] > emax {
				tst.Fatalf("segment %q: energy[%d]=%g out of [0,Emax]\n", tag, i, st.Energy[i])
			}
			if st.VoltageUL[i] <= 0 || st.VoltageUL[i] > veh.Bat.MaxVoltage() {
				tst.Fatalf("segment %q: voltage[%d]=%g out of range\n", tag, i, st.VoltageUL[i])
			}
		}
	}

	// discharging: energy decreases along the profile
	first := res.Segments[tags[0]].Conds.Battery
	last := res.Segments[tags[len(tags)-1]].Conds.Battery
	n := len(last.Energy)
	if last.Energy[n-1] >= first.Energy[0] {
		tst.Fatalf("battery did not discharge: %g >= %g\n", last.Energy[n-1], first.Energy[0])
	}

	// continuity: each segment starts from the previous final state
	for k := 1; k < len(tags); k++ {
		prev := res.Segments[tags[k-1]].Conds
		next := res.Segments[tags[k]].Conds
		fin := prev.Battery.Final()
		chk.Float64(tst, "energy continuity at "+tags[k], 1e-6*emax, next.Battery.Energy[0], fin.Energy)
		chk.Float64(tst, "time continuity at "+tags[k], 1e-10, next.Time[0], prev.Time[len(prev.Time)-1])
	}

	// hover carries the weight on the rotors
	hov := res.Segments["hover_climb"].Conds
	w := veh.Mass * 9.80665
	for i := range hov.RotorThrust {
		chk.Float64(tst, "hover thrust matches weight", 1e-4*w, hov.RotorThrust[i], w)
	}
}

func Test_mis02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mis02. configuration errors")

	veh := testVehicle(tst)

	// empty mission
	mis := new(Mission)
	_, err := mis.Solve(testStart(veh), false)
	if err == nil {
		tst.Fatalf("empty mission must fail\n")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		tst.Fatalf("want ConfigurationError; got %T\n", err)
	}

	// duplicate tags
	mis = new(Mission)
	for i := 0; i < 2; i++ {
		hov := NewHoverClimb("hover", veh, 8)
		hov.AltitudeEnd = 40
		hov.ClimbRate = 3.0
		mis.Add(hov)
	}
	_, err = mis.Solve(testStart(veh), false)
	if err == nil {
		tst.Fatalf("duplicate tags must fail\n")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		tst.Fatalf("want ConfigurationError; got %T\n", err)
	}

	// invalid boundary conditions
	mis = new(Mission)
	hov := NewHoverClimb("hover", veh, 8)
	hov.AltitudeStart = 100
	hov.AltitudeEnd = 40
	hov.ClimbRate = 3.0
	mis.Add(hov)
	_, err = mis.Solve(testStart(veh), false)
	if err == nil {
		tst.Fatalf("descending hover climb must fail\n")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		tst.Fatalf("want ConfigurationError; got %T\n", err)
	}

	// too few collocation points
	mis = new(Mission)
	cru := NewCruise("cruise", veh, 1)
	cru.AirSpeed = 60
	cru.Distance = 1e3
	mis.Add(cru)
	_, err = mis.Solve(testStart(veh), false)
	if err == nil {
		tst.Fatalf("single-point segment must fail\n")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		tst.Fatalf("want ConfigurationError; got %T\n", err)
	}
}

func Test_mis03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mis03. convergence failure diagnostics")

	veh := testVehicle(tst)
	mis := new(Mission)
	hov := NewHoverClimb("hover", veh, 8)
	hov.AltitudeEnd = 40
	hov.ClimbRate = 3.0
	mis.Add(hov)
	mis.Solver = new(SolverData)
	mis.Solver.SetDefault()
	mis.Solver.NmaxIt = 1
	mis.Solver.Atol = 1e-14

	_, err := mis.Solve(testStart(veh), false)
	if err == nil {
		tst.Fatalf("iteration-starved solve must fail\n")
	}
	cerr, ok := err.(*ConvergenceError)
	if !ok {
		tst.Fatalf("want ConvergenceError; got %T: %v\n", err, err)
	}
	if cerr.Tag != "hover" {
		tst.Fatalf("error tag is %q; want %q\n", cerr.Tag, "hover")
	}
	chk.IntAssert(len(cerr.X), 3*8)
	chk.IntAssert(len(cerr.R), 3*8)
}

func Test_mis04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mis04. determinism")

	veh := testVehicle(tst)
	mis := new(Mission)
	hov := NewHoverClimb("hover", veh, 8)
	hov.AltitudeEnd = 40
	hov.ClimbRate = 3.0
	mis.Add(hov)
	cru := NewCruise("cruise", veh, 8)
	cru.Altitude = 40
	cru.AirSpeed = 60
	cru.Distance = 5e3
	mis.Add(cru)

	resA, err := mis.Solve(testStart(veh), false)
	if err != nil {
		tst.Fatalf("first solve failed: %v\n", err)
	}
	resB, err := mis.Solve(testStart(veh), false)
	if err != nil {
		tst.Fatalf("second solve failed: %v\n", err)
	}
	for _, tag := range resA.Tags {
		a, b := resA.Segments[tag], resB.Segments[tag]
		chk.Array(tst, "unknowns "+tag, 1e-17, a.Unknowns, b.Unknowns)
		chk.IntAssert(a.Nit, b.Nit)
	}
}
