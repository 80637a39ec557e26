// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mission

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// ResidFunc evaluates the residual vector for the unknown vector x. It must
// be pure: identical x yields identical residuals.
type ResidFunc func(x []float64) ([]float64, error)

// SolverData holds segment solver settings
type SolverData struct {
	Type    string  `json:"type"`    // solver type; e.g. "imp"
	NmaxIt  int     `json:"nmaxit"`  // iteration cap
	Atol    float64 `json:"atol"`    // absolute tolerance on ‖R‖
	Dx      float64 `json:"dx"`      // relative finite-difference step for the Jacobian
	NdvgMax int     `json:"ndvgmax"` // max step halvings on divergence within one iteration
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.Type = "imp"
	o.NmaxIt = 50
	o.Atol = 1e-8
	o.Dx = 1e-6
	o.NdvgMax = 6
}

// Solver finds an unknown vector driving a residual function to zero
type Solver interface {
	Solve(x []float64, fcn ResidFunc, verbose bool) (nit int, err error)
}

// NewSolver returns a new segment solver
func NewSolver(dat *SolverData) (Solver, error) {
	allocator, ok := allocators[dat.Type]
	if !ok {
		return nil, ErrConfig("cannot find segment solver type named %q", dat.Type)
	}
	return allocator(dat), nil
}

// allocators holds all available solvers
var allocators = map[string]func(dat *SolverData) Solver{}

func init() {
	allocators["imp"] = func(dat *SolverData) Solver { return &Implicit{dat: dat} }
}

// Implicit implements a damped Newton iteration with a forward-difference
// Jacobian and a dense LU factorisation per iteration
type Implicit struct {
	dat *SolverData
}

// Solve iterates x in place until ‖R‖ ≤ Atol. It returns a
// ConvergenceError (holding the last x and R) after NmaxIt iterations and
// a NumericalError as soon as a non-finite value appears.
func (o *Implicit) Solve(x []float64, fcn ResidFunc, verbose bool) (nit int, err error) {

	n := len(x)
	r, err := fcn(x)
	if err != nil {
		return 0, err
	}
	if len(r) != n {
		return 0, ErrConfig("unknown and residual vectors have mismatched lengths: %d versus %d", n, len(r))
	}
	if idx := firstNonFinite(r); idx >= 0 {
		return 0, &NumericalError{It: 0, Msg: io.Sf("residual[%d] is not finite", idx)}
	}
	rnorm := la.Vector(r).Norm()

	jac := mat.NewDense(n, n, nil)
	rhs := mat.NewVecDense(n, nil)
	dx := mat.NewVecDense(n, nil)
	xp := make([]float64, n)
	xnew := make([]float64, n)

	for nit = 1; nit <= o.dat.NmaxIt; nit++ {

		// converged?
		if rnorm <= o.dat.Atol {
			if verbose {
				io.Pf("  . . converged with ‖R‖=%g after %d iterations\n", rnorm, nit-1)
			}
			return nit - 1, nil
		}

		// forward-difference Jacobian
		for j := 0; j < n; j++ {
			h := o.dat.Dx * math.Max(1.0, math.Abs(x[j]))
			copy(xp, x)
			xp[j] += h
			rp, e := fcn(xp)
			if e != nil {
				return nit, e
			}
			for i := 0; i < n; i++ {
				jac.Set(i, j, (rp[i]-r[i])/h)
			}
		}

		// Newton step
		var lu mat.LU
		lu.Factorize(jac)
		for i := 0; i < n; i++ {
			rhs.SetVec(i, -r[i])
		}
		if e := lu.SolveVecTo(dx, false, rhs); e != nil {
			return nit, &NumericalError{It: nit, Msg: io.Sf("jacobian is singular: %v", e)}
		}

		// step with halving on divergence
		lam := 1.0
		var rnew []float64
		var rnormNew float64
		accepted := false
		for k := 0; k <= o.dat.NdvgMax; k++ {
			for i := 0; i < n; i++ {
				xnew[i] = x[i] + lam*dx.AtVec(i)
			}
			rnew, err = fcn(xnew)
			if err != nil {
				return nit, err
			}
			if firstNonFinite(rnew) < 0 {
				rnormNew = la.Vector(rnew).Norm()
				if rnormNew < rnorm || k == o.dat.NdvgMax {
					accepted = true
					break
				}
			}
			lam /= 2.0
		}
		if !accepted {
			return nit, &NumericalError{It: nit, Msg: "residual remained non-finite after step halving"}
		}
		copy(x, xnew)
		r = rnew
		rnorm = rnormNew

		if idx := firstNonFinite(x); idx >= 0 {
			return nit, &NumericalError{It: nit, Msg: io.Sf("unknown[%d] is not finite", idx)}
		}
		if verbose {
			io.Pf("  . . it=%2d  ‖R‖=%13.7e  λ=%g\n", nit, rnorm, lam)
		}
	}

	if rnorm <= o.dat.Atol {
		return o.dat.NmaxIt, nil
	}
	return o.dat.NmaxIt, &ConvergenceError{Nit: o.dat.NmaxIt, X: append([]float64{}, x...), R: append([]float64{}, r...)}
}

// firstNonFinite returns the index of the first NaN/Inf entry, or -1
func firstNonFinite(v []float64) int {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return i
		}
	}
	return -1
}
