// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package numerics implements pseudo-spectral discretisation operators for
// mission segments: Chebyshev collocation points on [0,1] together with the
// corresponding differentiation and cumulative integration matrices
package numerics

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// Operators holds the discretisation operators for one segment. The points
// and matrices are non-dimensional; Integrate and Differentiate apply the
// duration scaling. Construct once per segment and reuse across all residual
// evaluations.
type Operators struct {
	N int         // number of collocation points
	X []float64   // collocation points in [0,1] (cosine spaced)
	D [][]float64 // differentiation matrix: (D f)_i ≈ df/dx at X[i]
	I [][]float64 // integration matrix: (I f)_i ≈ ∫f dx over [0,X[i]]
}

// New returns operators for n collocation points. The integration matrix is
// built by inverting the differentiation matrix with the first row and
// column removed, which pins the cumulative integral to zero at X[0].
func New(n int) (o *Operators, err error) {
	if n < 2 {
		return nil, chk.Err("cannot build collocation operators with n=%d points; at least 2 are required", n)
	}

	// cosine spaced points
	o = new(Operators)
	o.N = n
	o.X = make([]float64, n)
	for i := 0; i < n; i++ {
		o.X[i] = 0.5 * (1.0 - math.Cos(math.Pi*float64(i)/float64(n-1)))
	}

	// differentiation matrix (barycentric form with end-point weights)
	c := make([]float64, n)
	for i := 0; i < n; i++ {
		c[i] = 1.0
		if i == 0 || i == n-1 {
			c[i] = 2.0
		}
		if i%2 == 1 {
			c[i] = -c[i]
		}
	}
	o.D = utl.Alloc(n, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			o.D[i][j] = (c[i] / c[j]) / (o.X[i] - o.X[j])
			sum += o.D[i][j]
		}
		o.D[i][i] = -sum // rows of D must sum to zero
	}

	// integration matrix
	sub := mat.NewDense(n-1, n-1, nil)
	for i := 1; i < n; i++ {
		for j := 1; j < n; j++ {
			sub.Set(i-1, j-1, o.D[i][j])
		}
	}
	var inv mat.Dense
	if e := inv.Inverse(sub); e != nil {
		return nil, chk.Err("collocation differentiation matrix is singular: %v", e)
	}
	o.I = utl.Alloc(n, n)
	for i := 1; i < n; i++ {
		for j := 1; j < n; j++ {
			o.I[i][j] = inv.At(i-1, j-1)
		}
	}
	return
}

// Time returns the dimensional sample times for a segment spanning [t0,t0+T]
func (o *Operators) Time(t0, T float64) (t []float64) {
	t = make([]float64, o.N)
	for i, x := range o.X {
		t[i] = t0 + x*T
	}
	return
}

// Integrate computes the cumulative integral of f over a segment of
// duration T: out[i] ≈ ∫f dt from t0 to t[i]. out[0] is always zero.
func (o *Operators) Integrate(f []float64, T float64) (out []float64) {
	out = make([]float64, o.N)
	for i := 0; i < o.N; i++ {
		for j := 0; j < o.N; j++ {
			out[i] += o.I[i][j] * f[j]
		}
		out[i] *= T
	}
	return
}

// Differentiate computes df/dt at every collocation point for a segment of
// duration T
func (o *Operators) Differentiate(f []float64, T float64) (out []float64) {
	out = make([]float64, o.N)
	for i := 0; i < o.N; i++ {
		for j := 0; j < o.N; j++ {
			out[i] += o.D[i][j] * f[j]
		}
		out[i] /= T
	}
	return
}
