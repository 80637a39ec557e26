// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package propulsion implements electric propulsion network models: rotors,
// propellers, motors and the lift+cruise network coupling them to the
// battery
package propulsion

import (
	"math"
)

// Rotor implements a fixed-pitch rotor or propeller through quadratic
// thrust/torque coefficient polars in advance ratio J = V/(n·D), with the
// rev-per-second convention
//
//   T = Ct(J)·ρ·n²·D⁴     Q = Cq(J)·ρ·n²·D⁵
type Rotor struct {
	Diameter      float64 // rotor diameter [m]
	Count         float64 // number of identical units
	Ct0, Ct1, Ct2 float64 // thrust coefficient polar
	Cq0, Cq1, Cq2 float64 // torque coefficient polar
}

// Ct computes the thrust coefficient at advance ratio j (clipped at zero)
func (o *Rotor) Ct(j float64) float64 {
	return math.Max(o.Ct0+o.Ct1*j+o.Ct2*j*j, 0)
}

// Cq computes the torque coefficient at advance ratio j (clipped at zero)
func (o *Rotor) Cq(j float64) float64 {
	return math.Max(o.Cq0+o.Cq1*j+o.Cq2*j*j, 0)
}

// Spin computes thrust and aerodynamic torque of one unit spinning at n
// [rev/s] with axial inflow speed v [m/s] in air of density rho
func (o *Rotor) Spin(n, v, rho float64) (thrust, torque float64) {
	if n <= 0 {
		return 0, 0
	}
	j := v / (n * o.Diameter)
	d4 := pow4(o.Diameter)
	thrust = o.Ct(j) * rho * n * n * d4
	torque = o.Cq(j) * rho * n * n * d4 * o.Diameter
	return
}

// Motor implements a first-order DC motor with ESC, KV in [rad/(s·V)]
type Motor struct {
	KV     float64 // speed constant [rad/(s·V)]
	R      float64 // winding resistance [Ω]
	I0     float64 // no-load current [A]
	EtaESC float64 // ESC efficiency [-]
}

// SpinFromLoad computes the steady spin rate n [rev/s] of the motor driving
// a quadratic torque load Q = cLoad·n², given the input voltage. Matching
// motor torque (vin - ω/KV)/(R·KV) - I0/KV against the load gives a
// quadratic in n whose positive root is returned; NaN signals that the
// voltage cannot sustain the load.
func (o *Motor) SpinFromLoad(vin, cLoad float64) (n float64) {
	b := 2.0 * math.Pi / (o.KV * o.KV * o.R)
	c := o.I0/o.KV - vin/(o.KV*o.R)
	if cLoad < 1e-12 {
		if b <= 0 {
			return math.NaN()
		}
		return -c / b
	}
	disc := b*b - 4.0*cLoad*c
	if disc < 0 {
		return math.NaN()
	}
	return (-b + math.Sqrt(disc)) / (2.0 * cLoad)
}

// Current computes the motor current at spin rate n [rev/s] and input
// voltage vin
func (o *Motor) Current(vin, n float64) float64 {
	return (vin - 2.0*math.Pi*n/o.KV) / o.R
}

// Torque computes the motor shaft torque at spin rate n and voltage vin
func (o *Motor) Torque(vin, n float64) float64 {
	return (o.Current(vin, n) - o.I0) / o.KV
}

// Power computes the electrical power drawn from the bus, accounting for
// the ESC efficiency
func (o *Motor) Power(vin, n float64) float64 {
	return vin * o.Current(vin, n) / o.EtaESC
}

func pow4(x float64) float64 { return x * x * x * x }
