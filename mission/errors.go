// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mission

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// ConfigurationError reports invalid segment/mission setup detected before
// any iteration starts. Never retried.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

// ErrConfig returns a new ConfigurationError with a formatted message
func ErrConfig(msg string, prm ...interface{}) error {
	return &ConfigurationError{Msg: io.Sf(msg, prm...)}
}

// ConvergenceError reports that the segment solver exceeded its iteration
// cap. The last unknown and residual vectors are kept for diagnosis.
type ConvergenceError struct {
	Tag string    // segment tag (set by the sequencer)
	Nit int       // iterations performed
	X   []float64 // last unknown vector
	R   []float64 // last residual vector
}

func (e *ConvergenceError) Error() string {
	return io.Sf("segment %q did not converge after %d iterations (‖R‖=%g)", e.Tag, e.Nit, la.Vector(e.R).Norm())
}

// NumericalError reports NaN/Inf in residual or state during iteration
type NumericalError struct {
	Tag string // segment tag (set by the sequencer)
	It  int    // iteration at which the non-finite value appeared
	Msg string
}

func (e *NumericalError) Error() string {
	return io.Sf("segment %q hit a non-finite value at iteration %d: %s", e.Tag, e.It, e.Msg)
}
