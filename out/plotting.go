// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// PltEntity stores all data for a plot entity (X vs Y)
type PltEntity struct {
	Alias string    // alias; e.g. segment tag
	X     []float64 // x-values
	Y     []float64 // y-values
	Xlbl  string    // horizontal axis label (raw; e.g. "time")
	Ylbl  string    // vertical axis label (raw; e.g. "soc")
	Style plt.A     // style
}

// SplotDat stores all data for one subplot
type SplotDat struct {
	Id      string       // unique identifier
	Title   string       // title of subplot
	Topts   *plt.A       // title options
	Xscale  float64      // x-axis scale
	Yscale  float64      // y-axis scale
	Xrange  []float64    // x range
	Yrange  []float64    // y range
	Xlbl    string       // x-axis label (formatted; e.g. "$t$")
	Ylbl    string       // y-axis label (formatted; e.g. "$SOC$")
	GllArgs *plt.A       // extra arguments for Gll such as legend placement
	Data    []*PltEntity // data and styles to be plotted
}

// subplot collection
var (
	Splots []*SplotDat
	Csplot *SplotDat
)

// Splot activates a new subplot window
func Splot(id, splotTitle string) {
	s := &SplotDat{Id: id, Title: splotTitle}
	Splots = append(Splots, s)
	Csplot = s
}

// SplotConfig configures units and scales of axes
func SplotConfig(xunit, yunit string, xscale, yscale float64) {
	if Csplot != nil {
		var xlabel, ylabel string
		if len(Csplot.Data) > 0 {
			xlabel = Csplot.Data[0].Xlbl
			ylabel = Csplot.Data[0].Ylbl
		}
		Csplot.Xlbl = GetTexLabel(xlabel, xunit)
		Csplot.Ylbl = GetTexLabel(ylabel, yunit)
		Csplot.Xscale = xscale
		Csplot.Yscale = yscale
	}
}

// Plot adds one curve to the current subplot
//  xHandle -- a series key, e.g. "time", or a slice of values
//  yHandle -- a series key, e.g. "soc", or a slice of values
//  alias   -- curve alias; "" plots the whole mission, otherwise one segment
//  args    -- formatting arguments; e.g. plt.A{C: "blue", L: "label"}
func Plot(xHandle, yHandle interface{}, alias string, args plt.A) {
	var e PltEntity
	e.Alias = alias
	e.Style = args
	e.X, e.Xlbl = getValsAndLabel(xHandle, alias)
	e.Y, e.Ylbl = getValsAndLabel(yHandle, alias)
	if len(e.X) != len(e.Y) {
		chk.Panic("lengths of x- and y-series are different. len(x)=%d, len(y)=%d, x=%v, y=%v", len(e.X), len(e.Y), xHandle, yHandle)
	}
	if Csplot == nil {
		Splot(io.Sf("%d", len(Splots)), "")
	}
	Csplot.Data = append(Csplot.Data, &e)
	SplotConfig("", "", 1, 1)
}

// Draw draws or saves the figure
//  dirout -- directory to save figure
//  fnkey  -- file name key (the extension is selected by plt.Reset). Use ""
//            to show the figure instead
//  nr     -- number of rows. Use -1 to compute best value
//  nc     -- number of columns. Use -1 to compute best value
//  split  -- split subplots into separated figures
//  extra  -- is called just after Subplot command and before any plotting
func Draw(dirout, fnkey string, nr, nc int, split bool, extra func(id string)) {
	nplots := len(Splots)
	if nr < 0 || nc < 0 {
		nr, nc = utl.BestSquare(nplots)
	}
	for k := 0; k < nplots; k++ {
		spl := Splots[k]
		if !split {
			plt.Subplot(nr, nc, k+1)
		}
		if extra != nil {
			extra(spl.Id)
		}
		if spl.Title != "" {
			plt.Title(spl.Title, spl.Topts)
		}
		for _, d := range spl.Data {
			if d.Style.L == "" {
				d.Style.L = d.Alias
			}
			d.Style.NoClip = true
			x, y := d.X, d.Y
			if math.Abs(spl.Xscale) > 0 {
				x = make([]float64, len(d.X))
				la.Vector(x).Apply(spl.Xscale, la.Vector(d.X))
			}
			if math.Abs(spl.Yscale) > 0 {
				y = make([]float64, len(d.Y))
				la.Vector(y).Apply(spl.Yscale, la.Vector(d.Y))
			}
			plt.Plot(x, y, &d.Style)
		}
		plt.Gll(spl.Xlbl, spl.Ylbl, spl.GllArgs)
		if len(spl.Xrange) == 2 {
			plt.AxisXrange(spl.Xrange[0], spl.Xrange[1])
		}
		if len(spl.Yrange) == 2 {
			plt.AxisYrange(spl.Yrange[0], spl.Yrange[1])
		}
		if split {
			savefig(dirout, fnkey, spl.Id)
			plt.Clf()
		}
	}
	if !split && fnkey != "" {
		savefig(dirout, fnkey, "")
	}
	if fnkey == "" {
		plt.Show()
	}
}

// GetTexLabel returns a TeX label for a series key
func GetTexLabel(key, unit string) string {
	l := "$"
	switch key {
	case "time":
		l += "t"
	case "altitude":
		l += "z"
	case "speed":
		l += "V"
	case "climbrate":
		l += "\\dot{z}"
	case "pitch":
		l += "\\theta"
	case "density":
		l += "\\rho"
	case "cl":
		l += "C_L"
	case "cd":
		l += "C_D"
	case "rotorrpm":
		l += "\\Omega_r"
	case "proprpm":
		l += "\\Omega_p"
	case "rotorT":
		l += "T_r"
	case "propT":
		l += "T_p"
	case "power":
		l += "P_{el}"
	case "throttle":
		l += "\\eta"
	case "throttlel":
		l += "\\eta_{lift}"
	case "energy":
		l += "E_{bat}"
	case "soc":
		l += "SOC"
	case "dod":
		l += "DOD"
	case "voltage":
		l += "V_{UL}"
	case "voltageoc":
		l += "V_{OC}"
	case "current":
		l += "I"
	case "celltemp":
		l += "T_{cell}"
	case "heatgen":
		l += "\\dot{Q}_{gen}"
	case "resistance":
		l += "R_0"
	default:
		l += key
	}
	if unit != "" {
		l += "\\;" + unit
	}
	l += "$"
	return l
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

func savefig(dirout, fnkey, id string) {
	if dirout == "" {
		dirout = "."
	}
	if id != "" {
		fnkey += "_" + id
	}
	plt.Save(dirout, fnkey)
}

func getValsAndLabel(handle interface{}, alias string) ([]float64, string) {
	switch hnd := handle.(type) {
	case []float64:
		return hnd, io.Sf("%s-data", alias)
	case string:
		if alias == "" {
			return GetRes(hnd), hnd
		}
		return GetSegRes(hnd, alias), hnd
	}
	chk.Panic("cannot get values slice with handle = %v", handle)
	return nil, ""
}
