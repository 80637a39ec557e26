// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package battery

import "math"

// NCR18650Map is the default discharge-performance response surface: a
// smooth surrogate fitted to the NCR18650G constant-current discharge
// curves [1]. It returns the cell terminal voltage [V] given cell current
// [A], cell temperature [°C] and depth of discharge.
//
// The surrogate captures the three dominant trends of the datasheet: the
// plateau-and-knee shape along depth of discharge, the ohmic droop with
// current, and the mild voltage recovery with temperature.
func NCR18650Map(current, tempC, dod float64) float64 {
	if dod < 0 {
		dod = 0
	}
	if dod > 1 {
		dod = 1
	}

	// plateau and end-of-discharge knee
	v := 4.13 - 0.72*dod - 0.26*dod*dod - 0.52*math.Exp(9.0*(dod-1.05))

	// droop with current and recovery with temperature
	v -= 0.030 * current
	v += 0.0012 * (tempC - 25.0) * (1.0 + 2.0*dod)

	if v < 0 {
		v = 0
	}
	return v
}
