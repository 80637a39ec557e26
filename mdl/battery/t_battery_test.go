// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package battery

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/aeromech/goamp/numerics"
)

// newTestModel returns an initialised example model and operators
func newTestModel(tst *testing.T, npts int) (*LiNiMnCo, *numerics.Operators) {
	mdl := new(LiNiMnCo)
	err := mdl.Init(mdl.GetPrms(true))
	if err != nil {
		tst.Fatalf("cannot initialise model: %v\n", err)
	}
	ops, err := numerics.New(npts)
	if err != nil {
		tst.Fatalf("cannot build operators: %v\n", err)
	}
	return mdl, ops
}

// constInputs returns draw series with constant current/power
func constInputs(n int, current, power, ambient float64) *Inputs {
	inp := &Inputs{
		Current: make([]float64, n),
		Power:   make([]float64, n),
		Ambient: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		inp.Current[i] = current
		inp.Power[i] = power
		inp.Ambient[i] = ambient
	}
	return inp
}

func fullInitial(mdl Model) Initial {
	return Initial{
		Energy:        mdl.MaxEnergy(),
		CellTemp:      293.15,
		RGrowthFactor: 1.0,
	}
}

func Test_bat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bat01. nominal discharge")

	mdl, ops := newTestModel(tst, 16)
	inp := constInputs(16, 200.0, -90e3, 288.15)

	st, err := mdl.Advance(inp, fullInitial(mdl), ops, 120.0)
	if err != nil {
		tst.Errorf("Advance failed: %v\n", err)
		return
	}

	// dod complement and bounds
	for i := 0; i < ops.N; i++ {
		chk.Float64(tst, "dod=1-soc", 1e-15, st.DOD[i], 1.0-st.SOC[i])
		if st.SOC[i] < 0 || st.SOC[i] > 1 {
			tst.Errorf("soc out of bounds: %v\n", st.SOC[i])
			return
		}
	}

	// energy starts full and decreases monotonically
	chk.Float64(tst, "E[0]", 1e-8, st.Energy[0], mdl.MaxEnergy())
	for i := 1; i < ops.N; i++ {
		if st.Energy[i] > st.Energy[i-1]+1e-8 {
			tst.Errorf("energy increased during discharge\n")
			return
		}
	}

	// voltage under load is positive and below open circuit
	for i := 0; i < ops.N; i++ {
		if st.VoltageUL[i] <= 0 || st.VoltageUL[i] > mdl.MaxVoltage() {
			tst.Errorf("voltage under load %v out of range\n", st.VoltageUL[i])
			return
		}
	}

	// charge throughput grows from zero
	chk.Float64(tst, "Q[0]", 1e-15, st.ChargeThroughput[0], 0)
	if st.ChargeThroughput[ops.N-1] <= 0 {
		tst.Errorf("charge throughput did not grow\n")
	}
}

func Test_bat02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bat02. soc and energy clamps under extreme draw")

	mdl, ops := newTestModel(tst, 10)

	// draw far beyond capacity: soc must clamp to 0, dod to 1
	inp := constInputs(10, 500.0, -mdl.MaxEnergy(), 288.15)
	st, err := mdl.Advance(inp, fullInitial(mdl), ops, 600.0)
	if err != nil {
		tst.Errorf("Advance failed: %v\n", err)
		return
	}
	last := ops.N - 1
	chk.Float64(tst, "soc floor", 1e-15, st.SOC[last], 0.0)
	chk.Float64(tst, "dod ceil", 1e-15, st.DOD[last], 1.0)
	chk.Float64(tst, "E floor", 1e-15, st.Energy[last], 0.0)

	// charge beyond capacity: energy must clamp to max, soc to 1
	inp = constInputs(10, -200.0, mdl.MaxEnergy(), 288.15)
	st, err = mdl.Advance(inp, fullInitial(mdl), ops, 600.0)
	if err != nil {
		tst.Errorf("Advance failed: %v\n", err)
		return
	}
	chk.Float64(tst, "E ceil", 1e-8, st.Energy[last], mdl.MaxEnergy())
	chk.Float64(tst, "soc ceil", 1e-15, st.SOC[last], 1.0)
}

func Test_bat03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bat03. temperature band clamp")

	mdl, ops := newTestModel(tst, 10)

	// absurd heat generation via huge current: temperature stays in band
	inp := constInputs(10, 1e6, -1e9, 288.15)
	for _, t0 := range []float64{100.0, 250.0, 293.15, 400.0, 1000.0} {
		prior := fullInitial(mdl)
		prior.CellTemp = t0
		st, err := mdl.Advance(inp, prior, ops, 300.0)
		if err != nil {
			tst.Errorf("Advance failed: %v\n", err)
			return
		}
		for i := 0; i < ops.N; i++ {
			if st.CellTemp[i] < mdl.TminK || st.CellTemp[i] > mdl.TmaxK {
				tst.Errorf("cell temperature %v outside [%v,%v]\n", st.CellTemp[i], mdl.TminK, mdl.TmaxK)
				return
			}
		}
	}
}

func Test_bat04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bat04. nan energy-delta sanitisation")

	mdl, ops := newTestModel(tst, 12)

	// one poisoned collocation point
	inp := constInputs(12, 150.0, -60e3, 288.15)
	inp.Power[5] = math.NaN()

	st, err := mdl.Advance(inp, fullInitial(mdl), ops, 60.0)
	if err != nil {
		tst.Errorf("Advance failed: %v\n", err)
		return
	}
	for i := 0; i < ops.N; i++ {
		if math.IsNaN(st.Energy[i]) {
			tst.Errorf("current energy contains NaN at point %d\n", i)
			return
		}
	}

	// the sanitised delta is the finite maximum, so all points share the
	// same energy value
	for i := 1; i < ops.N; i++ {
		chk.Float64(tst, "E const", 1e-10, st.Energy[i], st.Energy[0])
	}
}

func Test_bat05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bat05. model database")

	_, err := New("linimnco")
	if err != nil {
		tst.Errorf("allocation failed: %v\n", err)
		return
	}
	_, err = New("unobtainium")
	if err == nil {
		tst.Errorf("New must fail for unknown model\n")
	}
}

func Test_bat06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bat06. cell parameter validation")

	// every cell/pack parameter is mandatory
	full := new(LiNiMnCo).GetPrms(true)
	for _, name := range []string{"cmass", "cp", "asurf", "dcell", "hcell", "aelec", "nseries", "nparallel", "htc", "emax", "vmax"} {
		var prms dbf.Params
		for _, p := range full {
			if p.N != name {
				prms = append(prms, p)
			}
		}
		if err := new(LiNiMnCo).Init(prms); err == nil {
			tst.Errorf("Init must fail without %q\n", name)
			return
		}
	}

	// zero values must be rejected at Init; a zero thermal mass would
	// otherwise surface only as NaN temperatures deep inside Advance
	for _, name := range []string{"cmass", "cp", "asurf", "dcell", "hcell", "aelec", "htc", "emax", "vmax"} {
		mdl := new(LiNiMnCo)
		prms := mdl.GetPrms(true)
		prms.Find(name).V = 0
		if err := mdl.Init(prms); err == nil {
			tst.Errorf("Init must fail with zero %q\n", name)
			return
		}
	}

	// a valid set still initialises
	mdl := new(LiNiMnCo)
	if err := mdl.Init(mdl.GetPrms(true)); err != nil {
		tst.Errorf("Init failed on valid parameters: %v\n", err)
	}
}
