// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package battery

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/aeromech/goamp/numerics"
)

// LiNiMnCo implements a charge/discharge model for 18650
// lithium-nickel-manganese-cobalt-oxide cells based on the NCR18650G
// datasheet response surface [1], the internal resistance model of [2] and a
// lumped / tube-bank thermal model [3]
type LiNiMnCo struct {

	// cell data
	CellMass      float64 // cell mass [kg]
	Cp            float64 // cell specific heat capacity [J/(kg·K)]
	SurfArea      float64 // cell surface area [m²]
	Diameter      float64 // cell diameter [m]
	Height        float64 // cell height [m]
	ElectrodeArea float64 // electrode area [m²]
	TminK         float64 // lower temperature validity bound [K]
	TmaxK         float64 // upper temperature validity bound [K]
	ImaxCell      float64 // cell current validity bound for the response surface [A]

	// pack configuration
	NSeries, NParallel float64 // electrical configuration
	NormalCount        float64 // cells normal to coolant flow
	ParallelCount      float64 // cells along coolant flow
	NormalSpacing      float64 // transverse pitch S_T [m]
	ParallelSpacing    float64 // longitudinal pitch S_L [m]
	HTC                float64 // lumped heat transfer coefficient [W/(m²·K)]
	Emax               float64 // pack energy when full [J]
	Vmax               float64 // pack voltage when full [V]

	// coolant (air) properties for the bank correlation
	AirConduct float64                  // thermal conductivity [W/(m·K)]
	AirCp      float64                  // specific heat capacity [J/(kg·K)]
	AirSpeed   float64                  // discharge cooling flow speed [m/s]
	AirDensity float64                  // density [kg/m³]
	KinVisc    func(tc float64) float64 // kinematic viscosity fit vs temperature [°C]
	Prandtl    func(tc float64) float64 // Prandtl number fit vs temperature [°C]

	// discharge performance response surface
	Map DischargeMap
}

// constants of the heat-generation model
const (
	elecConduct = 139.0   // electrical conductivity [S/m]
	faraday     = 96485.0 // Faraday constant [C/mol]
	nElectrons  = 1.0     // electrons per reaction
	celsiusOff  = 272.65  // Kelvin offset used by the datasheet fits
	reTurb      = 1.0e3   // Reynolds threshold for turbulent bank constants
	hour        = 3600.0  // [s]
)

// add model to factory
func init() {
	allocators["linimnco"] = func() Model { return new(LiNiMnCo) }
}

// Init initialises this structure. Coolant fits and the response surface
// receive NCR18650 air-cooling defaults and may be replaced afterwards.
func (o *LiNiMnCo) Init(prms dbf.Params) (err error) {

	// defaults (overridden by prms when present)
	o.TminK = celsiusOff
	o.TmaxK = celsiusOff + 50.0
	o.ImaxCell = 8.0

	e := prms.Connect(&o.CellMass, "cmass", "LiNiMnCo model")
	e += prms.Connect(&o.Cp, "cp", "LiNiMnCo model")
	e += prms.Connect(&o.SurfArea, "asurf", "LiNiMnCo model")
	e += prms.Connect(&o.Diameter, "dcell", "LiNiMnCo model")
	e += prms.Connect(&o.Height, "hcell", "LiNiMnCo model")
	e += prms.Connect(&o.ElectrodeArea, "aelec", "LiNiMnCo model")
	e += prms.Connect(&o.NSeries, "nseries", "LiNiMnCo model")
	e += prms.Connect(&o.NParallel, "nparallel", "LiNiMnCo model")
	e += prms.Connect(&o.HTC, "htc", "LiNiMnCo model")
	e += prms.Connect(&o.Emax, "emax", "LiNiMnCo model")
	e += prms.Connect(&o.Vmax, "vmax", "LiNiMnCo model")
	if e != "" {
		return chk.Err("%v", e)
	}

	// optional module/cooling parameters
	if p := prms.Find("ncount"); p != nil {
		o.NormalCount = p.V
	} else {
		o.NormalCount = o.NSeries
	}
	if p := prms.Find("pcount"); p != nil {
		o.ParallelCount = p.V
	} else {
		o.ParallelCount = o.NParallel
	}
	if p := prms.Find("nspacing"); p != nil {
		o.NormalSpacing = p.V
	} else {
		o.NormalSpacing = 1.2 * o.Diameter
	}
	if p := prms.Find("pspacing"); p != nil {
		o.ParallelSpacing = p.V
	} else {
		o.ParallelSpacing = 1.2 * o.Diameter
	}
	if p := prms.Find("tmin"); p != nil {
		o.TminK = p.V
	}
	if p := prms.Find("tmax"); p != nil {
		o.TmaxK = p.V
	}

	// air at moderate temperatures
	o.AirConduct = 0.0253
	o.AirCp = 1006.0
	o.AirSpeed = 6.0
	o.AirDensity = 1.225
	o.KinVisc = func(tc float64) float64 { return 1.34e-5 + 9.0e-8*tc }
	o.Prandtl = func(tc float64) float64 { return 0.713 - 2.0e-4*tc }
	o.Map = NCR18650Map

	// checks
	if o.Emax <= 0 {
		return chk.Err("LiNiMnCo model: 'emax' must be positive")
	}
	if o.CellMass <= 0 || o.Cp <= 0 {
		return chk.Err("LiNiMnCo model: thermal mass cmass=%g cp=%g must be positive", o.CellMass, o.Cp)
	}
	if o.SurfArea <= 0 || o.ElectrodeArea <= 0 {
		return chk.Err("LiNiMnCo model: areas asurf=%g aelec=%g must be positive", o.SurfArea, o.ElectrodeArea)
	}
	if o.Diameter <= 0 || o.Height <= 0 {
		return chk.Err("LiNiMnCo model: cell geometry dcell=%g hcell=%g is invalid", o.Diameter, o.Height)
	}
	if o.HTC <= 0 || o.Vmax <= 0 {
		return chk.Err("LiNiMnCo model: 'htc' and 'vmax' must be positive (htc=%g vmax=%g)", o.HTC, o.Vmax)
	}
	if o.NSeries < 1 || o.NParallel < 1 {
		return chk.Err("LiNiMnCo model: pack configuration %gS%gP is invalid", o.NSeries, o.NParallel)
	}
	if o.TmaxK <= o.TminK {
		return chk.Err("LiNiMnCo model: temperature band [%g,%g] is empty", o.TminK, o.TmaxK)
	}
	return
}

// GetPrms gets (an example of) parameters: an NCR18650G pack sized for a
// small electric lift+cruise aircraft
func (o *LiNiMnCo) GetPrms(example bool) dbf.Params {
	if example {
		return []*dbf.P{
			&dbf.P{N: "cmass", V: 0.048},
			&dbf.P{N: "cp", V: 1108.0},
			&dbf.P{N: "asurf", V: 4.34e-3},
			&dbf.P{N: "dcell", V: 18.5e-3},
			&dbf.P{N: "hcell", V: 65.3e-3},
			&dbf.P{N: "aelec", V: 0.0342},
			&dbf.P{N: "nseries", V: 128},
			&dbf.P{N: "nparallel", V: 40},
			&dbf.P{N: "htc", V: 35.0},
			&dbf.P{N: "emax", V: 3.36e8},
			&dbf.P{N: "vmax", V: 537.6},
		}
	}
	return []*dbf.P{
		&dbf.P{N: "cmass", V: o.CellMass},
		&dbf.P{N: "cp", V: o.Cp},
		&dbf.P{N: "asurf", V: o.SurfArea},
		&dbf.P{N: "dcell", V: o.Diameter},
		&dbf.P{N: "hcell", V: o.Height},
		&dbf.P{N: "aelec", V: o.ElectrodeArea},
		&dbf.P{N: "nseries", V: o.NSeries},
		&dbf.P{N: "nparallel", V: o.NParallel},
		&dbf.P{N: "htc", V: o.HTC},
		&dbf.P{N: "emax", V: o.Emax},
		&dbf.P{N: "vmax", V: o.Vmax},
	}
}

// MaxEnergy returns the pack energy when full
func (o *LiNiMnCo) MaxEnergy() float64 { return o.Emax }

// MaxVoltage returns the pack voltage when full
func (o *LiNiMnCo) MaxVoltage() float64 { return o.Vmax }

// Advance updates the battery state across one segment
func (o *LiNiMnCo) Advance(inp *Inputs, prior Initial, ops *numerics.Operators, duration float64) (st *State, err error) {

	// checks
	n := ops.N
	if len(inp.Current) != n || len(inp.Power) != n || len(inp.Ambient) != n {
		return nil, chk.Err("battery input series have lengths (%d,%d,%d) but the segment has %d collocation points",
			len(inp.Current), len(inp.Power), len(inp.Ambient), n)
	}
	if duration <= 0 {
		return nil, chk.Err("segment duration must be positive (%g given)", duration)
	}

	st = newState(n)
	st.RGrowthFactor = prior.RGrowthFactor
	nTotal := o.NSeries * o.NParallel
	nTotMod := o.NormalCount * o.ParallelCount

	// cell current: pack current distributed across parallel strings
	iCell := make([]float64, n)
	for i := 0; i < n; i++ {
		iCell[i] = inp.Current[i] / o.NParallel
	}

	// provisional state of charge from integrated power and prior energy
	eInt := ops.Integrate(inp.Power, duration)
	socOld := make([]float64, n)
	dodOld := make([]float64, n)
	for i := 0; i < n; i++ {
		socOld[i] = clamp((eInt[i]+prior.Energy)/o.Emax, 0, 1)
		dodOld[i] = 1.0 - socOld[i]
	}

	// clamp cell temperature into the validity band of the fits
	tCell := make([]float64, n)
	for i := 0; i < n; i++ {
		tCell[i] = clamp(prior.CellTemp, o.TminK, o.TmaxK)
	}

	// heat generation: entropy and joule terms from empirical fits
	qGen := make([]float64, n)
	for i := 0; i < n; i++ {
		s := socOld[i]
		deltaS := -496.66*pow6(s) + 1729.4*pow5(s) - 2278.0*pow4(s) +
			1382.2*s*s*s - 380.47*s*s + 46.508*s - 10.692
		iDens := iCell[i] / o.ElectrodeArea
		qEntropy := -tCell[i] * deltaS * iDens / (nElectrons * faraday)
		qJoule := iDens * iDens / elecConduct
		qGen[i] = (qJoule + qEntropy) * o.SurfArea
		if qJoule+qEntropy != 0 {
			st.JouleHeatFrac[i] = qJoule / (qJoule + qEntropy)
			st.EntropyHeatFrac[i] = qEntropy / (qJoule + qEntropy)
		}
	}

	// convective heat loss and net thermal power
	pNet := make([]float64, n)
	if nTotal == 1 {
		for i := 0; i < n; i++ {
			qConv := o.HTC * o.SurfArea * (tCell[i] - inp.Ambient[i])
			pNet[i] = (qGen[i] - qConv) * nTotal
		}
	} else {
		o.bankConvection(pNet, qGen, tCell, inp.Ambient, nTotMod)
	}

	// integrate net power through thermal mass to update temperature
	dTdt := make([]float64, n)
	for i := 0; i < n; i++ {
		dTdt[i] = pNet[i] / (o.CellMass * nTotMod * o.Cp)
	}
	tInt := ops.Integrate(dTdt, duration)
	for i := 0; i < n; i++ {
		st.CellTemp[i] = clamp(prior.CellTemp+tInt[i], o.TminK, o.TmaxK)
		st.PackTemp[i] = st.CellTemp[i]
	}

	// power at the terminals minus resistive losses
	pAct := make([]float64, n)
	for i := 0; i < n; i++ {
		st.HeatGenerated[i] = qGen[i] * nTotMod
		st.ResistiveLosses[i] = nTotal * qGen[i]
		pAct[i] = inp.Power[i] - math.Abs(st.ResistiveLosses[i])
	}

	// response surface lookup at clamped current, Celsius temperature and DOD
	for i := 0; i < n; i++ {
		iCell[i] = clamp(iCell[i], 0, o.ImaxCell)
		st.CellVoltageUL[i] = o.Map(iCell[i], tCell[i]-celsiusOff, dodOld[i])
	}

	// equivalent-circuit parameters as functions of state of charge, with
	// the ohmic resistance scaled by the aging factor
	rTh := make([]float64, n)
	cTh := make([]float64, n)
	r0 := make([]float64, n)
	r0aged := make([]float64, n)
	for i := 0; i < n; i++ {
		s := socOld[i]
		tau := 2.151*math.Exp(2.132*s) + 27.2
		rTh[i] = -1.212*math.Exp(-0.03383*s) + 1.258
		cTh[i] = tau / rTh[i]
		r0[i] = 0.01483*s*s - 0.02518*s + 0.1036
		r0aged[i] = r0[i] * prior.RGrowthFactor
	}

	// Thevenin transient voltage: initial-value ODE integration from the
	// carried per-cell value
	vth, err := TheveninVoltage(prior.TheveninVoltage/o.NSeries, ops.Time(0, duration), iCell, rTh, cTh)
	if err != nil {
		return nil, err
	}

	// open-circuit voltage per cell
	vOC := make([]float64, n)
	for i := 0; i < n; i++ {
		vOC[i] = st.CellVoltageUL[i] + vth[i] + iCell[i]*r0aged[i]
	}

	// delivered energy; NaN deltas are sanitised to the finite maximum (or
	// zero if no finite sample exists) so one bad point cannot corrupt the
	// whole segment
	eBat := sanitizeNaN(ops.Integrate(pAct, duration))

	// update energy, re-clamp and derive final SOC/DOD; the terminal
	// voltage is zeroed wherever the raw SOC went negative
	for i := 0; i < n; i++ {
		socRaw := (eBat[i] + prior.Energy) / o.Emax
		st.Energy[i] = clamp(eBat[i]+prior.Energy, 0, o.Emax)
		st.SOC[i] = clamp(st.Energy[i]/o.Emax, 0, 1)
		st.DOD[i] = 1.0 - st.SOC[i]
		if socRaw < 0 {
			st.CellVoltageUL[i] = 0
		}
	}

	// charge throughput in Amp-hours
	qInt := ops.Integrate(iCell, duration)
	for i := 0; i < n; i++ {
		st.SegmentThroughput[i] = qInt[i] / hour
		st.ChargeThroughput[i] = prior.ChargeThroughput + st.SegmentThroughput[i]
	}

	// pack-level outputs
	for i := 0; i < n; i++ {
		st.Current[i] = inp.Current[i]
		st.CellCurrent[i] = iCell[i]
		st.VoltageOC[i] = vOC[i] * o.NSeries
		st.VoltageUL[i] = st.CellVoltageUL[i] * o.NSeries
		st.TheveninVoltage[i] = vth[i] * o.NSeries
		st.InternalResist[i] = r0[i] * o.NSeries
		st.LoadPower[i] = st.VoltageUL[i] * inp.Current[i]
	}
	return
}

// bankConvection computes the net thermal power per point using the
// Zukauskas cross-flow tube-bank correlation with a log-mean temperature
// difference correction along the flow direction.
// The turbulent constants are selected only when the maximum-velocity
// Reynolds number exceeds the threshold at every collocation point; the
// whole segment otherwise uses the laminar constants.
// TODO: revisit whole-segment regime selection against per-point switching.
func (o *LiNiMnCo) bankConvection(pNet, qGen, tCell, ambient []float64, nTotMod float64) {
	n := len(pNet)
	sT, sL := o.NormalSpacing, o.ParallelSpacing
	d := o.Diameter

	// maximum velocity between cells
	sD := math.Sqrt(sT*sT + sL*sL)
	var vMax float64
	if 2*(sD-d) < (sT - d) {
		vMax = o.AirSpeed * sT / (2 * (sD - d))
	} else {
		vMax = o.AirSpeed * sT / (sT - d)
	}

	// Reynolds regime over the whole segment
	turbulent := true
	reMax := make([]float64, n)
	for i := 0; i < n; i++ {
		nu := o.KinVisc(ambient[i] - celsiusOff)
		reMax[i] = vMax * d / nu
		if reMax[i] <= reTurb {
			turbulent = false
		}
	}
	cZu, mZu := 0.51, 0.5
	if turbulent {
		cZu, mZu = 0.35*math.Pow(sT/sL, 0.2), 0.6
	}

	for i := 0; i < n; i++ {
		tFilm := 0.5 * (ambient[i] + tCell[i])
		pr := o.Prandtl(ambient[i] - celsiusOff)
		prW := o.Prandtl(tFilm - celsiusOff)
		nu := cZu * math.Pow(reMax[i], mZu) * math.Pow(pr, 0.36) * math.Pow(pr/prW, 0.25)
		h := nu * o.AirConduct / d

		// log-mean temperature difference along the flow
		twTi := tFilm - ambient[i]
		var dTlm float64
		if math.Abs(twTi) > 1e-12 {
			twTo := twTi * math.Exp(-math.Pi*d*nTotMod*h/(o.AirDensity*o.AirSpeed*o.NormalCount*sT*o.AirCp))
			dTlm = (twTi - twTo) / math.Log(twTi/twTo)
		}
		qConv := h * math.Pi * d * o.Height * 0.8 * nTotMod * dTlm
		pNet[i] = qGen[i]*nTotMod - qConv
	}
}

// auxiliary ///////////////////////////////////////////////////////////////

// clamp returns v limited to [lo,hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sanitizeNaN replaces a series containing NaN entries by a constant series
// holding the finite maximum, or zeros if no finite entry exists
func sanitizeNaN(e []float64) []float64 {
	hasNaN := false
	finiteMax := math.Inf(-1)
	hasFinite := false
	for _, v := range e {
		if math.IsNaN(v) {
			hasNaN = true
			continue
		}
		if !math.IsInf(v, 0) {
			hasFinite = true
			if v > finiteMax {
				finiteMax = v
			}
		}
	}
	if !hasNaN {
		return e
	}
	fill := 0.0
	if hasFinite {
		fill = finiteMax
	}
	for i := range e {
		e[i] = fill
	}
	return e
}

func pow4(x float64) float64 { return x * x * x * x }
func pow5(x float64) float64 { return pow4(x) * x }
func pow6(x float64) float64 { return pow5(x) * x }
