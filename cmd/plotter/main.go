// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// plotter renders mission results saved by goamp into PNG figures, one
// per series, with one curve per segment
package main

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/aeromech/goamp/out"
)

// series drawn against mission time
var plotKeys = []string{"altitude", "speed", "soc", "voltage", "power", "celltemp", "rotorrpm", "proprpm", "throttle", "throttlel"}

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "results", ".json", true)
	dirout := io.ArgToString(1, "/tmp/goamp/figs")
	verbose := io.ArgToBool(2, true)

	if verbose {
		io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"results file path", "fnamepath", fnamepath,
			"output directory", "dirout", dirout,
			"show messages", "verbose", verbose,
		))
	}

	// load results
	if err := out.LoadResults(fnamepath); err != nil {
		chk.Panic("%v", err)
	}
	if err := os.MkdirAll(dirout, 0777); err != nil {
		chk.Panic("cannot create output directory %q: %v", dirout, err)
	}

	// one figure per series
	for _, key := range plotKeys {
		fn := filepath.Join(dirout, key+".png")
		if err := plotSeries(key, fn); err != nil {
			chk.Panic("cannot plot %q: %v", key, err)
		}
		if verbose {
			io.Pf("file <%s> written\n", fn)
		}
	}
}

// plotSeries draws one series versus time with one line per segment
func plotSeries(key, fname string) error {
	p := plot.New()
	p.Title.Text = key
	p.X.Label.Text = "t [s]"
	p.Y.Label.Text = key

	var args []interface{}
	for _, tag := range out.Results.Tags {
		t := out.GetSegRes("time", tag)
		y := out.GetSegRes(key, tag)
		xys := make(plotter.XYs, len(t))
		for i := range t {
			xys[i].X = t[i]
			xys[i].Y = y[i]
		}
		args = append(args, tag, xys)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, fname)
}
