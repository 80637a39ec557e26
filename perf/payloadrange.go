// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package perf implements vehicle-level performance studies built on top of
// the mission solver
package perf

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/aeromech/goamp/mission"
)

// FlyFunc flies one mission with the given payload mass [kg] and cruise
// distance [m] and returns the battery state of charge at the end
type FlyFunc func(payload, distance float64) (finalSOC float64, err error)

// Point is one entry of the payload-range diagram
type Point struct {
	Payload  float64 // payload mass [kg]
	Range    float64 // achievable cruise distance [m]
	FinalSOC float64 // state of charge at mission end [-]
	Err      error   // failure of this point, if any
}

// Sweep finds the maximum cruise distance flyable at each payload while
// landing at or above the reserve state of charge. Distances are located
// by bisection between DistMin and DistMax.
type Sweep struct {
	Payloads   []float64 // payload masses to sweep [kg]
	Fly        FlyFunc   // mission evaluator
	ReserveSOC float64   // required state of charge at mission end [-]
	DistMin    float64   // bracket lower bound [m]
	DistMax    float64   // bracket upper bound [m]
	TolSOC     float64   // acceptable overshoot above the reserve [-]
	MaxBisect  int       // bisection iteration cap
}

// SetDefault sets default search settings
func (o *Sweep) SetDefault() {
	o.ReserveSOC = 0.2
	o.DistMin = 1e3
	o.DistMax = 200e3
	o.TolSOC = 1e-3
	o.MaxBisect = 30
}

// Check validates the sweep definition
func (o *Sweep) Check() error {
	if len(o.Payloads) == 0 {
		return chk.Err("payload-range sweep has no payloads")
	}
	if o.Fly == nil {
		return chk.Err("payload-range sweep has no mission evaluator")
	}
	if o.DistMax <= o.DistMin || o.DistMin <= 0 {
		return chk.Err("distance bracket [%g,%g] is invalid", o.DistMin, o.DistMax)
	}
	if o.ReserveSOC < 0 || o.ReserveSOC >= 1 {
		return chk.Err("reserve SOC %g is out of [0,1)", o.ReserveSOC)
	}
	return nil
}

// Run computes all points using up to nworkers concurrent missions
func (o *Sweep) Run(nworkers int, verbose bool) ([]Point, error) {
	if err := o.Check(); err != nil {
		return nil, err
	}
	if nworkers < 1 {
		nworkers = 1
	}
	if nworkers > len(o.Payloads) {
		nworkers = len(o.Payloads)
	}

	points := make([]Point, len(o.Payloads))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < nworkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				points[idx] = o.findRange(o.Payloads[idx], verbose)
			}
		}()
	}
	for idx := range o.Payloads {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	return points, nil
}

// findRange bisects the cruise distance for one payload
func (o *Sweep) findRange(payload float64, verbose bool) (pt Point) {
	pt.Payload = payload

	// the bracket must contain the reserve crossing: feasible at DistMin,
	// infeasible (or failing) at DistMax
	socLo, err := o.Fly(payload, o.DistMin)
	if err != nil {
		pt.Err = chk.Err("payload %g: shortest mission failed: %v", payload, err)
		return
	}
	if socLo < o.ReserveSOC {
		pt.Err = chk.Err("payload %g: reserve is unreachable even at %g m (SOC=%g)", payload, o.DistMin, socLo)
		return
	}
	lo, hi := o.DistMin, o.DistMax
	pt.Range, pt.FinalSOC = lo, socLo
	if socHi, err := o.Fly(payload, hi); err == nil && socHi >= o.ReserveSOC {
		pt.Range, pt.FinalSOC = hi, socHi
		return
	}

	for it := 0; it < o.MaxBisect; it++ {
		mid := 0.5 * (lo + hi)
		soc, err := o.Fly(payload, mid)
		feasible := err == nil && soc >= o.ReserveSOC
		if verbose {
			io.Pf("  . . payload=%g  dist=%g  soc=%g  feasible=%v\n", payload, mid, soc, feasible)
		}
		if feasible {
			lo = mid
			pt.Range, pt.FinalSOC = mid, soc
			if soc-o.ReserveSOC < o.TolSOC {
				return
			}
		} else {
			hi = mid
		}
	}
	return
}

// MissionFly adapts a mission factory into a FlyFunc. The factory must
// return a freshly built mission and start state for the given payload and
// cruise distance.
func MissionFly(build func(payload, distance float64) (*mission.Mission, mission.Start, error)) FlyFunc {
	return func(payload, distance float64) (float64, error) {
		mis, start, err := build(payload, distance)
		if err != nil {
			return 0, err
		}
		res, err := mis.Solve(start, false)
		if err != nil {
			return 0, err
		}
		last := res.Segments[res.Tags[len(res.Tags)-1]]
		soc := last.Conds.Battery.SOC
		return soc[len(soc)-1], nil
	}
}
