// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package aero implements low-order aerodynamic models returning lift and
// drag coefficients for the mission residual functions
package aero

import (
	"github.com/cpmech/gosl/chk"
)

// Polar implements a linear lift curve with a parabolic drag polar
//
//   CL = CL0 + CLα·α        CD = CD0 + k·CL² + ΔCD
//
// where ΔCD is a fixed excrescence/trim drag increment
type Polar struct {
	CL0       float64 // lift coefficient at zero angle of attack
	CLalpha   float64 // lift curve slope [1/rad]
	CD0       float64 // parasite drag coefficient
	K         float64 // induced drag factor
	Increment float64 // drag coefficient increment
	CLmax     float64 // maximum usable lift coefficient
}

// Check validates the polar
func (o *Polar) Check() error {
	if o.CD0 <= 0 || o.K < 0 || o.CLmax <= 0 {
		return chk.Err("drag polar CD0=%g k=%g CLmax=%g is invalid", o.CD0, o.K, o.CLmax)
	}
	return nil
}

// FromAlpha computes lift and drag coefficients at angle of attack α [rad]
func (o *Polar) FromAlpha(alpha float64) (cl, cd float64) {
	cl = o.CL0 + o.CLalpha*alpha
	if cl > o.CLmax {
		cl = o.CLmax
	}
	cd = o.CD0 + o.K*cl*cl + o.Increment
	return
}

// FromLift computes the coefficients needed to carry the given lift [N] at
// dynamic pressure q [Pa] and reference area s [m²]
func (o *Polar) FromLift(lift, q, s float64) (cl, cd float64) {
	cl = lift / (q * s)
	if cl > o.CLmax {
		cl = o.CLmax
	}
	cd = o.CD0 + o.K*cl*cl + o.Increment
	return
}
