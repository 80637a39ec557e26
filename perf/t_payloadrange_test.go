// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perf

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// analyticFly drains charge linearly with distance and payload so the
// achievable range has a closed form
func analyticFly(payload, distance float64) (float64, error) {
	perMetre := 4e-6 * (1 + payload/500.0)
	return 1.0 - perMetre*distance, nil
}

func analyticRange(payload, reserve float64) float64 {
	perMetre := 4e-6 * (1 + payload/500.0)
	return (1.0 - reserve) / perMetre
}

func Test_pr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pr01. bisection against a closed-form drain")

	swp := new(Sweep)
	swp.SetDefault()
	swp.Payloads = []float64{0, 200, 400, 600}
	swp.Fly = analyticFly
	swp.DistMax = 400e3
	swp.TolSOC = 1e-5
	swp.MaxBisect = 60

	pts, err := swp.Run(3, chk.Verbose)
	if err != nil {
		tst.Fatalf("sweep failed: %v\n", err)
	}
	chk.IntAssert(len(pts), 4)
	for i, pt := range pts {
		if pt.Err != nil {
			tst.Fatalf("point %d failed: %v\n", i, pt.Err)
		}
		want := analyticRange(pt.Payload, swp.ReserveSOC)
		chk.Float64(tst, "range", 1e-2*want, pt.Range, want)
		if pt.FinalSOC < swp.ReserveSOC {
			tst.Fatalf("point %d lands below the reserve: %g < %g\n", i, pt.FinalSOC, swp.ReserveSOC)
		}
		// heavier payloads fly shorter
		if i > 0 && pt.Range >= pts[i-1].Range {
			tst.Fatalf("range is not decreasing with payload: %g >= %g\n", pt.Range, pts[i-1].Range)
		}
	}
}

func Test_pr02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pr02. infeasible and saturated brackets")

	// reserve unreachable even at the shortest distance
	swp := new(Sweep)
	swp.SetDefault()
	swp.Payloads = []float64{100}
	swp.Fly = func(payload, distance float64) (float64, error) { return 0.0, nil }
	pts, err := swp.Run(1, false)
	if err != nil {
		tst.Fatalf("sweep failed: %v\n", err)
	}
	if pts[0].Err == nil {
		tst.Fatalf("unreachable reserve must fail\n")
	}

	// whole bracket feasible: range saturates at DistMax
	swp.Fly = func(payload, distance float64) (float64, error) { return 0.9, nil }
	pts, err = swp.Run(1, false)
	if err != nil {
		tst.Fatalf("sweep failed: %v\n", err)
	}
	if pts[0].Err != nil {
		tst.Fatalf("saturated point failed: %v\n", pts[0].Err)
	}
	chk.Float64(tst, "saturated range", 1e-17, pts[0].Range, swp.DistMax)

	// configuration errors
	swp.Payloads = nil
	if _, err = swp.Run(1, false); err == nil {
		tst.Fatalf("empty payload list must fail\n")
	}
}

func Test_pr03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pr03. concurrent runs match the serial result")

	swp := new(Sweep)
	swp.SetDefault()
	swp.Payloads = []float64{0, 100, 200, 300, 400, 500, 600, 700}
	swp.Fly = analyticFly
	swp.DistMax = 400e3
	swp.MaxBisect = 50

	serial, err := swp.Run(1, false)
	if err != nil {
		tst.Fatalf("serial sweep failed: %v\n", err)
	}
	parallel, err := swp.Run(8, false)
	if err != nil {
		tst.Fatalf("parallel sweep failed: %v\n", err)
	}
	for i := range serial {
		if math.Abs(serial[i].Range-parallel[i].Range) > 1e-12 {
			tst.Fatalf("point %d differs: %g versus %g\n", i, serial[i].Range, parallel[i].Range)
		}
		chk.Float64(tst, "soc", 1e-15, serial[i].FinalSOC, parallel[i].FinalSOC)
	}
}
