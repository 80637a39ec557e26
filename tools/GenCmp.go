// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

// GenCmp solves a mission and records the reference (.cmp) trajectory used
// by the acceptance test. Run it from the tests directory after a deliberate
// change to the accepted trajectory, then inspect the diff before
// committing.
package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/aeromech/goamp/tests"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
		}
	}()

	// input parameters
	simfile := io.ArgToString(0, "data/liftcruise.sim")
	cmpfile := io.ArgToString(1, "data/liftcruise.cmp")

	io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"simulation file", "simfile", simfile,
		"reference output", "cmpfile", cmpfile,
	))

	// solve and record
	res, err := tests.RunSim(simfile, true)
	if err != nil {
		chk.Panic("mission failed:\n%v", err)
	}
	tests.WriteCmp(cmpfile, res)
	io.Pf("\nreference trajectory written to %s\n", cmpfile)
}
