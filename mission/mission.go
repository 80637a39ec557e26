// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mission

import (
	"github.com/aeromech/goamp/numerics"
	"github.com/cpmech/gosl/io"
)

// Mission chains segments into a flight profile. Segments are solved in
// declaration order and the converged end state of each one (time,
// altitude, speed, battery) becomes the start state of the next.
type Mission struct {
	Segments []Segment
	Solver   *SolverData // nil means defaults
}

// Add appends a segment
func (o *Mission) Add(seg Segment) { o.Segments = append(o.Segments, seg) }

// Check validates the whole mission definition before any solve
func (o *Mission) Check() error {
	if len(o.Segments) == 0 {
		return ErrConfig("mission has no segments")
	}
	seen := make(map[string]bool)
	for _, seg := range o.Segments {
		if err := seg.Check(); err != nil {
			return err
		}
		if seen[seg.Tag()] {
			return ErrConfig("segment tag %q is not unique", seg.Tag())
		}
		seen[seg.Tag()] = true
	}
	return nil
}

// Solve runs the mission from the given start state. On a segment failure
// it stops and returns the results of the segments solved so far together
// with the error, tagged with the failing segment.
func (o *Mission) Solve(start Start, verbose bool) (res *Results, err error) {

	if err = o.Check(); err != nil {
		return nil, err
	}

	dat := o.Solver
	if dat == nil {
		dat = new(SolverData)
		dat.SetDefault()
	}
	sol, err := NewSolver(dat)
	if err != nil {
		return nil, err
	}

	res = &Results{Segments: make(map[string]*Result)}
	for _, seg := range o.Segments {

		n := seg.NumPoints()
		ops, e := numerics.New(n)
		if e != nil {
			return res, tagErr(e, seg.Tag())
		}
		if e := seg.Setup(start, ops); e != nil {
			return res, tagErr(e, seg.Tag())
		}
		if verbose {
			io.Pf("\n>>> segment %q  t0=%gs  Δt=%gs  n=%d\n", seg.Tag(), start.Time, seg.Duration(), n)
		}

		x := seg.InitGuess()
		var conds *Conditions
		fcn := func(xx []float64) ([]float64, error) {
			c, r, e := seg.Evaluate(xx)
			if e != nil {
				return nil, e
			}
			conds = c
			return r, nil
		}
		nit, e := sol.Solve(x, fcn, verbose)
		if e != nil {
			if conds != nil {
				res.Tags = append(res.Tags, seg.Tag())
				res.Segments[seg.Tag()] = &Result{Tag: seg.Tag(), Rows: seg.Rows(), Unknowns: x, Nit: nit, Conds: conds}
			}
			return res, tagErr(e, seg.Tag())
		}

		// final evaluation at the converged unknowns
		conds, _, e = seg.Evaluate(x)
		if e != nil {
			return res, tagErr(e, seg.Tag())
		}
		res.Tags = append(res.Tags, seg.Tag())
		res.Segments[seg.Tag()] = &Result{Tag: seg.Tag(), Rows: seg.Rows(), Unknowns: x, Nit: nit, Conds: conds}

		// chain end state into the next segment
		last := n - 1
		start.Time = conds.Time[last]
		start.Altitude = conds.Altitude[last]
		start.Speed = conds.Speed[last]
		start.Battery = conds.Battery.Final()
		start.Warm = make(map[string][]float64)
		for r, name := range seg.Rows() {
			start.Warm[name] = append([]float64{}, x[r*n:(r+1)*n]...)
		}
	}
	return res, nil
}

// tagErr stamps the segment tag into convergence and numerical errors
func tagErr(err error, tag string) error {
	switch e := err.(type) {
	case *ConvergenceError:
		e.Tag = tag
	case *NumericalError:
		e.Tag = tag
	}
	return err
}
