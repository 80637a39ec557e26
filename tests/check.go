// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tests implements structures and functions to test full mission
// simulations against saved reference results
package tests

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/aeromech/goamp/inp"
	"github.com/aeromech/goamp/mission"
)

// SegmentCmp holds reference series of one segment
type SegmentCmp struct {
	Tag      string    // segment tag
	Time     []float64 // mission time [s]
	RotorRPM []float64 // lift rotor speed [rev/min]
	PropRPM  []float64 // propeller speed [rev/min]
	Voltage  []float64 // battery voltage under load [V]
	Energy   []float64 // battery energy [J]
	CellTemp []float64 // battery cell temperature [K]
	CL       []float64 // lift coefficient
}

// CmpSet is a set of comparison results, one entry per segment in mission order
type CmpSet []*SegmentCmp

// RunSim solves the mission described by a .sim file
func RunSim(simfilepath string, verbose bool) (*mission.Results, error) {
	sim := inp.ReadSim(simfilepath, false)
	veh, err := sim.GetVehicle()
	if err != nil {
		return nil, err
	}
	mis, err := sim.GetMission(veh)
	if err != nil {
		return nil, err
	}
	return mis.Solve(sim.GetStart(veh), verbose)
}

// CompareResults solves a mission and compares selected series against a
// .cmp JSON file holding the recorded reference trajectory
func CompareResults(tst *testing.T, simfilepath, cmpfname string, tol float64, verbose bool) {

	res, err := RunSim(simfilepath, verbose)
	if err != nil {
		tst.Errorf("CompareResults: mission failed: %v\n", err)
		return
	}

	// read file with comparison results
	buf, err := os.ReadFile(cmpfname)
	if err != nil {
		tst.Errorf("CompareResults: cannot read reference file:%v\n", err)
		return
	}

	var cmpSet CmpSet
	err = json.Unmarshal(buf, &cmpSet)
	if err != nil {
		tst.Errorf("CompareResults: cannot unmarshal %q\n", cmpfname)
		return
	}

	if len(cmpSet) != len(res.Tags) {
		tst.Errorf("CompareResults: reference has %d segments; mission has %d\n", len(cmpSet), len(res.Tags))
		return
	}
	for idx, cmp := range cmpSet {
		tag := res.Tags[idx]
		if cmp.Tag != tag {
			tst.Errorf("CompareResults: segment %d is %q in the reference but %q in the mission\n", idx, cmp.Tag, tag)
			return
		}
		if verbose {
			io.PfYel("\n\nsegment %q . . . . . . . . . . . . . . . . . . . . . . . . . . . .\n", tag)
		}
		c := res.Segments[tag].Conds
		chk.Array(tst, io.Sf("%s: time", tag), tol, c.Time, cmp.Time)
		chk.Array(tst, io.Sf("%s: rotor rpm", tag), tol*1e4, c.RotorRPM, cmp.RotorRPM)
		chk.Array(tst, io.Sf("%s: prop rpm", tag), tol*1e4, c.PropRPM, cmp.PropRPM)
		chk.Array(tst, io.Sf("%s: voltage", tag), tol*1e3, c.Battery.VoltageUL, cmp.Voltage)
		chk.Array(tst, io.Sf("%s: energy", tag), tol*1e9, c.Battery.Energy, cmp.Energy)
		chk.Array(tst, io.Sf("%s: cell temp", tag), tol*1e3, c.Battery.CellTemp, cmp.CellTemp)
		chk.Array(tst, io.Sf("%s: CL", tag), tol, c.LiftCoefficient, cmp.CL)
	}
}

// WriteCmp records reference results; used when the acceptance trajectory
// changes on purpose and the .cmp file must be regenerated
func WriteCmp(cmpfname string, res *mission.Results) {
	var set CmpSet
	for _, tag := range res.Tags {
		c := res.Segments[tag].Conds
		set = append(set, &SegmentCmp{
			Tag:      tag,
			Time:     c.Time,
			RotorRPM: c.RotorRPM,
			PropRPM:  c.PropRPM,
			Voltage:  c.Battery.VoltageUL,
			Energy:   c.Battery.Energy,
			CellTemp: c.Battery.CellTemp,
			CL:       c.LiftCoefficient,
		})
	}
	b, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		chk.Panic("WriteCmp: cannot encode reference results: %v", err)
	}
	io.WriteStringToFile(cmpfname, string(b))
}
