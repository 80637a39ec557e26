// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

// BatDriver discharges a battery pack alone at constant power and plots
// the resulting series. Useful to inspect a pack database entry without
// flying a mission.
package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"

	"github.com/aeromech/goamp/inp"
	"github.com/aeromech/goamp/mdl/battery"
	"github.com/aeromech/goamp/numerics"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
		}
	}()

	// input parameters
	batfile := io.ArgToString(0, "../inp/data/packs.bat")
	pack := io.ArgToString(1, "ncr18650g-128s40p")
	power := io.ArgToFloat(2, 150e3)     // discharge power [W]
	duration := io.ArgToFloat(3, 1200.0) // [s]
	npts := io.ArgToInt(4, 32)

	io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"pack database", "batfile", batfile,
		"pack name", "pack", pack,
		"discharge power", "power", power,
		"duration", "duration", duration,
		"collocation points", "npts", npts,
	))

	// build model
	db, err := inp.ReadBat("", batfile)
	if err != nil {
		chk.Panic("%v", err)
	}
	prms := db.Get(pack)
	if prms == nil {
		chk.Panic("cannot find pack %q in %q", pack, batfile)
	}
	mdl, err := battery.New("linimnco")
	if err != nil {
		chk.Panic("%v", err)
	}
	if err = mdl.Init(prms); err != nil {
		chk.Panic("%v", err)
	}

	// discharge
	ops, err := numerics.New(npts)
	if err != nil {
		chk.Panic("%v", err)
	}
	inpt := &battery.Inputs{
		Current: make([]float64, npts),
		Power:   make([]float64, npts),
		Ambient: make([]float64, npts),
	}
	vguess := mdl.MaxVoltage()
	for i := 0; i < npts; i++ {
		inpt.Power[i] = -power
		inpt.Current[i] = power / vguess
		inpt.Ambient[i] = 288.15
	}
	prior := battery.Initial{Energy: mdl.MaxEnergy(), CellTemp: 293.15, RGrowthFactor: 1.0}
	st, err := mdl.Advance(inpt, prior, ops, duration)
	if err != nil {
		chk.Panic("discharge failed:\n%v", err)
	}

	// report and plot
	t := ops.Time(0, duration)
	n := npts - 1
	io.Pf("SOC end      = %.4f\n", st.SOC[n])
	io.Pf("voltage end  = %.2f V\n", st.VoltageUL[n])
	io.Pf("cell temp end= %.2f K\n", st.CellTemp[n])

	plt.Reset(true, nil)
	plt.Subplot(3, 1, 1)
	plt.Plot(t, st.SOC, &plt.A{C: "b"})
	plt.Gll("t [s]", "SOC", nil)
	plt.Subplot(3, 1, 2)
	plt.Plot(t, st.VoltageUL, &plt.A{C: "g"})
	plt.Gll("t [s]", "V underload", nil)
	plt.Subplot(3, 1, 3)
	plt.Plot(t, st.CellTemp, &plt.A{C: "r"})
	plt.Gll("t [s]", "T cell [K]", nil)
	plt.Save("/tmp/goamp", "batdriver")
	io.Pf("\nfigure saved to /tmp/goamp/batdriver.png\n")
}
