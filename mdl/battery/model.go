// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package battery implements electrochemical battery charge/discharge models
// advancing pack state (energy, temperature, resistance, voltage) across one
// mission segment
//  References:
//   [1] Automotive Industrial Systems Company of Panasonic Group, "Technical
//       Information of NCR18650G"
//   [2] Zou Y, Hu X, Ma H and Li SE (2015) Combined State of Charge and State
//       of Health estimation over lithium-ion battery cell cycle lifespan for
//       electric vehicles. Journal of Power Sources, 273, 793-803
//   [3] Incropera FP et al., Fundamentals of Heat and Mass Transfer, Ch. 7
//       (cross-flow over tube banks)
package battery

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/aeromech/goamp/numerics"
)

// DischargeMap is the injected discharge-performance response surface: it
// returns one terminal-voltage sample for a single cell given cell current
// [A], cell temperature [°C] and depth of discharge [-]. Any interpolation
// scheme may stand behind it.
type DischargeMap func(current, tempC, dod float64) float64

// Inputs holds the commanded draw series for one segment. Current is
// positive when discharging; Power is the electrical power at the pack
// terminals (negative when discharging).
type Inputs struct {
	Current []float64 // pack current [A] at each collocation point
	Power   []float64 // pack power [W] at each collocation point
	Ambient []float64 // ambient temperature [K] at each collocation point
}

// Initial holds the scalar state carried into a segment. It is produced by
// State.Final of the previous segment and never mutated by the model.
type Initial struct {
	Energy           float64 // energy at segment start [J]
	CellTemp         float64 // cell temperature at segment start [K]
	ChargeThroughput float64 // cumulative charge throughput [Ah]
	TheveninVoltage  float64 // pack-level transient voltage at segment start [V]
	RGrowthFactor    float64 // internal resistance growth factor (aging) [-]
}

// Model defines the interface for battery charge/discharge models
type Model interface {
	Init(prms dbf.Params) error      // initialises model from parameter database
	GetPrms(example bool) dbf.Params // gets (an example of) parameters
	MaxEnergy() float64              // pack energy when full [J]
	MaxVoltage() float64             // pack voltage when full [V]

	// Advance updates the battery state across one segment given the draw
	// series, the carried initial state, the segment discretisation
	// operators and the segment duration [s]
	Advance(inp *Inputs, prior Initial, ops *numerics.Operators, duration float64) (*State, error)
}

// New returns a new battery model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("battery model %q is not available in 'battery' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
