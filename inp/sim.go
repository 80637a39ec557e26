// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/aeromech/goamp/mdl/aero"
	"github.com/aeromech/goamp/mdl/atmosphere"
	"github.com/aeromech/goamp/mdl/battery"
	"github.com/aeromech/goamp/mdl/propulsion"
	"github.com/aeromech/goamp/mission"
)

// Data holds global data for simulations
type Data struct {
	Desc   string `json:"desc"`   // description of simulation
	DirOut string `json:"dirout"` // directory for output; e.g. /tmp/goamp
}

// BatteryData holds battery model selection and initial state
type BatteryData struct {
	Model    string     `json:"model"`    // model name; e.g. "linimnco"
	Pack     string     `json:"pack"`     // named pack in batfile; "" with empty prms means model example
	Batfile  string     `json:"batfile"`  // pack database path relative to the sim file
	Prms     dbf.Params `json:"prms"`     // inline parameters; override pack and example
	SOC      float64    `json:"soc"`      // initial state of charge; 0 means full
	CellTemp float64    `json:"celltemp"` // initial cell temperature [K]; 0 means 293.15
}

// RotorData holds one rotor/propeller definition
type RotorData struct {
	Diameter float64   `json:"diameter"` // [m]
	Count    float64   `json:"count"`    // units in the bank
	Ct       []float64 `json:"ct"`       // thrust coefficient polynomial in advance ratio
	Cq       []float64 `json:"cq"`       // torque coefficient polynomial in advance ratio
}

// MotorData holds one electric motor definition
type MotorData struct {
	KV     float64 `json:"kv"`     // speed constant [rad/(s·V)]
	R      float64 `json:"r"`      // winding resistance [Ω]
	I0     float64 `json:"i0"`     // no-load current [A]
	EtaESC float64 `json:"etaesc"` // speed controller efficiency
}

// PolarData holds the aerodynamic polar definition
type PolarData struct {
	CL0     float64 `json:"cl0"`     // lift coefficient at zero angle of attack
	CLalpha float64 `json:"clalpha"` // lift curve slope [1/rad]
	CD0     float64 `json:"cd0"`     // parasite drag coefficient
	K       float64 `json:"k"`       // induced drag factor
	DCD     float64 `json:"dcd"`     // drag coefficient increment
	CLmax   float64 `json:"clmax"`   // maximum usable lift coefficient
}

// VehicleData holds the airframe and propulsion definition
type VehicleData struct {
	Mass      float64   `json:"mass"`      // takeoff mass without payload [kg]
	RefArea   float64   `json:"refarea"`   // wing reference area [m²]
	Polar     PolarData `json:"polar"`     // aerodynamic polar
	LiftRotor RotorData `json:"liftrotor"` // lift rotor bank
	LiftMotor MotorData `json:"liftmotor"` // lift motors
	Propeller RotorData `json:"propeller"` // forward propeller group
	PropMotor MotorData `json:"propmotor"` // forward motors
}

// SegmentData holds one mission segment definition. The boundary condition
// fields used depend on the segment type.
type SegmentData struct {
	Tag    string  `json:"tag"`    // unique identifier
	Type   string  `json:"type"`   // hoverclimb, transition, climbconst, climblinear, cruise, loiter
	Npts   int     `json:"npts"`   // collocation points; 0 means 8
	Alt0   float64 `json:"alt0"`   // start altitude [m]
	Alt1   float64 `json:"alt1"`   // end altitude [m]
	Alt    float64 `json:"alt"`    // constant altitude [m]
	Rate   float64 `json:"rate"`   // climb rate [m/s]
	V0     float64 `json:"v0"`     // start airspeed [m/s]
	V1     float64 `json:"v1"`     // end airspeed [m/s]
	V      float64 `json:"v"`      // constant airspeed [m/s]
	Accel  float64 `json:"accel"`  // acceleration [m/s²]
	Pitch0 float64 `json:"pitch0"` // start pitch [rad]
	Pitch1 float64 `json:"pitch1"` // end pitch [rad]
	Dist   float64 `json:"dist"`   // ground distance [m]
	Time   float64 `json:"time"`   // duration [s]
}

// Simulation holds all simulation data
type Simulation struct {
	Data     Data               `json:"data"`     // global information
	Solver   mission.SolverData `json:"solver"`   // segment solver settings
	Battery  BatteryData        `json:"battery"`  // battery definition
	Vehicle  VehicleData        `json:"vehicle"`  // vehicle definition
	DeltaISA float64            `json:"deltaisa"` // atmosphere temperature offset [K]
	Segments []SegmentData      `json:"segments"` // mission profile

	// derived
	Key    string // simulation key; e.g. simulation filename without extension
	DirOut string // output directory
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string, erasePrev bool) *Simulation {

	// read file
	b := io.ReadFile(simfilepath)

	// set default values
	var o Simulation
	o.Solver.SetDefault()

	// decode
	err := json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q: %v", simfilepath, err)
	}

	// filename key and output directory
	fnkey := io.FnKey(filepath.Base(simfilepath))
	o.Key = fnkey
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/goamp/" + fnkey
	}
	err = os.MkdirAll(o.DirOut, 0777)
	if err != nil {
		chk.Panic("cannot create directory for output results (%s): %v", o.DirOut, err)
	}
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, fnkey))
	}

	// resolve battery parameters from the pack database
	if len(o.Battery.Prms) == 0 && o.Battery.Pack != "" {
		if o.Battery.Batfile == "" {
			chk.Panic("simulation file %q names pack %q but no batfile", simfilepath, o.Battery.Pack)
		}
		db, err := ReadBat(filepath.Dir(simfilepath), o.Battery.Batfile)
		if err != nil {
			chk.Panic("%v", err)
		}
		o.Battery.Prms = db.Get(o.Battery.Pack)
		if o.Battery.Prms == nil {
			chk.Panic("cannot find pack %q in %q", o.Battery.Pack, o.Battery.Batfile)
		}
	}
	return &o
}

// GetVehicle builds the vehicle with all collaborator models
func (o *Simulation) GetVehicle() (*mission.Vehicle, error) {
	bat, err := battery.New(o.Battery.Model)
	if err != nil {
		return nil, err
	}
	prms := o.Battery.Prms
	if len(prms) == 0 {
		prms = bat.GetPrms(true)
	}
	if err = bat.Init(prms); err != nil {
		return nil, err
	}
	atm := new(atmosphere.US1976)
	atm.Init(o.DeltaISA)

	lr, err := getRotor(&o.Vehicle.LiftRotor)
	if err != nil {
		return nil, err
	}
	pr, err := getRotor(&o.Vehicle.Propeller)
	if err != nil {
		return nil, err
	}
	veh := &mission.Vehicle{
		Mass:    o.Vehicle.Mass,
		RefArea: o.Vehicle.RefArea,
		Polar: &aero.Polar{
			CL0:       o.Vehicle.Polar.CL0,
			CLalpha:   o.Vehicle.Polar.CLalpha,
			CD0:       o.Vehicle.Polar.CD0,
			K:         o.Vehicle.Polar.K,
			Increment: o.Vehicle.Polar.DCD,
			CLmax:     o.Vehicle.Polar.CLmax,
		},
		Net: &propulsion.LiftCruise{
			LiftRotor: lr,
			LiftMotor: getMotor(&o.Vehicle.LiftMotor),
			Propeller: pr,
			PropMotor: getMotor(&o.Vehicle.PropMotor),
		},
		Bat: bat,
		Atm: atm,
	}
	return veh, veh.Check()
}

// GetStart builds the mission start state
func (o *Simulation) GetStart(veh *mission.Vehicle) mission.Start {
	soc := o.Battery.SOC
	if soc == 0 {
		soc = 1.0
	}
	temp := o.Battery.CellTemp
	if temp == 0 {
		temp = 293.15
	}
	return mission.Start{
		Battery: battery.Initial{
			Energy:        soc * veh.Bat.MaxEnergy(),
			CellTemp:      temp,
			RGrowthFactor: 1.0,
		},
	}
}

// GetMission builds the mission profile
func (o *Simulation) GetMission(veh *mission.Vehicle) (*mission.Mission, error) {
	mis := &mission.Mission{Solver: &o.Solver}
	for _, sd := range o.Segments {
		npts := sd.Npts
		if npts == 0 {
			npts = 8
		}
		switch sd.Type {
		case "hoverclimb":
			seg := mission.NewHoverClimb(sd.Tag, veh, npts)
			seg.AltitudeStart = sd.Alt0
			seg.AltitudeEnd = sd.Alt1
			seg.ClimbRate = sd.Rate
			mis.Add(seg)
		case "transition":
			seg := mission.NewTransition(sd.Tag, veh, npts)
			seg.Altitude = sd.Alt
			seg.AirSpeedStart = sd.V0
			seg.AirSpeedEnd = sd.V1
			seg.Acceleration = sd.Accel
			seg.PitchInitial = sd.Pitch0
			seg.PitchFinal = sd.Pitch1
			mis.Add(seg)
		case "climbconst":
			seg := mission.NewClimbConstSpeed(sd.Tag, veh, npts)
			seg.AltitudeStart = sd.Alt0
			seg.AltitudeEnd = sd.Alt1
			seg.ClimbRate = sd.Rate
			seg.AirSpeed = sd.V
			mis.Add(seg)
		case "climblinear":
			seg := mission.NewClimbLinearSpeed(sd.Tag, veh, npts)
			seg.AltitudeStart = sd.Alt0
			seg.AltitudeEnd = sd.Alt1
			seg.ClimbRate = sd.Rate
			seg.AirSpeedStart = sd.V0
			seg.AirSpeedEnd = sd.V1
			mis.Add(seg)
		case "cruise":
			seg := mission.NewCruise(sd.Tag, veh, npts)
			seg.Altitude = sd.Alt
			seg.AirSpeed = sd.V
			seg.Distance = sd.Dist
			mis.Add(seg)
		case "loiter":
			seg := mission.NewLoiter(sd.Tag, veh, npts)
			seg.Altitude = sd.Alt
			seg.AirSpeed = sd.V
			seg.Time = sd.Time
			mis.Add(seg)
		default:
			return nil, chk.Err("segment %q has unknown type %q", sd.Tag, sd.Type)
		}
	}
	return mis, mis.Check()
}

// String prints the simulation data as an indented JSON string
func (o *Simulation) String() string {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return "cannot print simulation data"
	}
	return string(b)
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

func getRotor(d *RotorData) (r propulsion.Rotor, err error) {
	if len(d.Ct) != 3 || len(d.Cq) != 3 {
		return r, chk.Err("rotor coefficient polynomials need exactly 3 entries (ct has %d, cq has %d)", len(d.Ct), len(d.Cq))
	}
	r = propulsion.Rotor{
		Diameter: d.Diameter,
		Count:    d.Count,
		Ct0:      d.Ct[0], Ct1: d.Ct[1], Ct2: d.Ct[2],
		Cq0: d.Cq[0], Cq1: d.Cq[1], Cq2: d.Cq[2],
	}
	return
}

func getMotor(d *MotorData) propulsion.Motor {
	return propulsion.Motor{KV: d.KV, R: d.R, I0: d.I0, EtaESC: d.EtaESC}
}
