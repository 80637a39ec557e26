// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package atmosphere

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_us1976(tst *testing.T) {

	//verbose()
	chk.PrintTitle("us1976. standard values")

	var atm US1976
	atm.Init(0)

	rho, T, p := atm.Calc(0)
	chk.Float64(tst, "ρ(0)", 1e-3, rho, 1.225)
	chk.Float64(tst, "T(0)", 1e-10, T, 288.15)
	chk.Float64(tst, "p(0)", 1e-10, p, 101325.0)

	rho, T, p = atm.Calc(1000)
	chk.Float64(tst, "T(1km)", 1e-10, T, 281.65)
	chk.Float64(tst, "p(1km)", 50.0, p, 89875.0)
	chk.Float64(tst, "ρ(1km)", 1e-3, rho, 1.112)

	// tropopause continuity
	rhoA, _, _ := atm.Calc(10999.9)
	rhoB, _, _ := atm.Calc(11000.1)
	chk.Float64(tst, "ρ continuity", 1e-4, rhoA, rhoB)
}
