// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package battery

// State holds the full battery state at every collocation point of one
// segment. It is returned by Model.Advance and frozen afterwards; the next
// segment receives a fresh Initial extracted with Final.
type State struct {
	Energy            []float64 // current energy [J]
	CellTemp          []float64 // cell temperature [K]
	PackTemp          []float64 // pack temperature [K]
	SOC               []float64 // state of charge [-]
	DOD               []float64 // depth of discharge = 1 - SOC [-]
	Current           []float64 // pack current [A]
	CellCurrent       []float64 // per-cell current [A]
	VoltageOC         []float64 // pack open-circuit voltage [V]
	VoltageUL         []float64 // pack voltage under load [V]
	CellVoltageUL     []float64 // cell voltage under load [V]
	TheveninVoltage   []float64 // pack transient (Thevenin) voltage [V]
	InternalResist    []float64 // pack ohmic internal resistance [Ω]
	ResistiveLosses   []float64 // heat lost to resistance [W]
	LoadPower         []float64 // power delivered to the load [W]
	HeatGenerated     []float64 // total heat generation [W]
	JouleHeatFrac     []float64 // joule fraction of heat generation [-]
	EntropyHeatFrac   []float64 // entropy fraction of heat generation [-]
	ChargeThroughput  []float64 // cumulative charge throughput [Ah]
	SegmentThroughput []float64 // charge throughput within this segment [Ah]
	RGrowthFactor     float64   // aging factor carried through unchanged [-]
}

// Final extracts the scalar state carried into the next segment
func (o *State) Final() Initial {
	n := len(o.Energy) - 1
	return Initial{
		Energy:           o.Energy[n],
		CellTemp:         o.CellTemp[n],
		ChargeThroughput: o.ChargeThroughput[n],
		TheveninVoltage:  o.TheveninVoltage[n],
		RGrowthFactor:    o.RGrowthFactor,
	}
}

// newState allocates all series with n points
func newState(n int) (o *State) {
	o = new(State)
	o.Energy = make([]float64, n)
	o.CellTemp = make([]float64, n)
	o.PackTemp = make([]float64, n)
	o.SOC = make([]float64, n)
	o.DOD = make([]float64, n)
	o.Current = make([]float64, n)
	o.CellCurrent = make([]float64, n)
	o.VoltageOC = make([]float64, n)
	o.VoltageUL = make([]float64, n)
	o.CellVoltageUL = make([]float64, n)
	o.TheveninVoltage = make([]float64, n)
	o.InternalResist = make([]float64, n)
	o.ResistiveLosses = make([]float64, n)
	o.LoadPower = make([]float64, n)
	o.HeatGenerated = make([]float64, n)
	o.JouleHeatFrac = make([]float64, n)
	o.EntropyHeatFrac = make([]float64, n)
	o.ChargeThroughput = make([]float64, n)
	o.SegmentThroughput = make([]float64, n)
	return
}
