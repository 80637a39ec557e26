// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package atmosphere implements planet atmosphere models returning
// temperature, pressure and density as functions of altitude
package atmosphere

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Model defines the interface for atmosphere models
type Model interface {
	Calc(altitude float64) (rho, T, p float64) // density [kg/m³], temperature [K], pressure [Pa]
}

// US1976 implements the lower layers (0 to 20 km) of the US Standard
// Atmosphere 1976 with an optional ISA temperature offset
type US1976 struct {
	T0       float64 // sea-level temperature [K]
	P0       float64 // sea-level pressure [Pa]
	Lapse    float64 // tropospheric lapse rate [K/m]
	DeltaISA float64 // temperature offset [K]
}

// constants
const (
	gravSL  = 9.80665 // sea-level gravity [m/s²]
	gasCtRd = 287.053 // specific gas constant of dry air [J/(kg·K)]
	tropoZ  = 11000.0 // tropopause altitude [m]
)

// Init initialises this structure with standard sea-level values
func (o *US1976) Init(deltaISA float64) {
	o.T0 = 288.15
	o.P0 = 101325.0
	o.Lapse = -0.0065
	o.DeltaISA = deltaISA
}

// Calc computes density, temperature and pressure at altitude z [m]
func (o *US1976) Calc(z float64) (rho, T, p float64) {
	if z < 0 {
		z = 0
	}
	if z <= tropoZ {
		T = o.T0 + o.Lapse*z
		p = o.P0 * math.Pow(T/o.T0, -gravSL/(o.Lapse*gasCtRd))
	} else {
		Ttp := o.T0 + o.Lapse*tropoZ
		ptp := o.P0 * math.Pow(Ttp/o.T0, -gravSL/(o.Lapse*gasCtRd))
		T = Ttp
		p = ptp * math.Exp(-gravSL*(z-tropoZ)/(gasCtRd*Ttp))
	}
	T += o.DeltaISA
	if T < 1e-8 {
		chk.Panic("atmosphere model produced non-positive temperature %g at z=%g", T, z)
	}
	rho = p / (gasCtRd * T)
	return
}
