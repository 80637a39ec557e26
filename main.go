// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/aeromech/goamp/inp"
	"github.com/aeromech/goamp/out"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	saveRes := io.ArgToBool(3, true)
	doprof := io.ArgToInt(4, 0)

	// message
	if verbose {
		io.PfWhite("\nGoamp Version 1.0 -- Go Aircraft Mission Performance\n")
		io.Pf("Copyright 2021 The Goamp Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
			"save results", "saveRes", saveRes,
			"profiling: 0=none 1=CPU 2=MEM", "doprof", doprof,
		))
	}

	// profiling?
	if doprof > 0 {
		defer utl.Prof(doprof == 2, !verbose)()
	}

	// simulation data
	sim := inp.ReadSim(fnamepath, erasePrev)
	veh, err := sim.GetVehicle()
	if err != nil {
		chk.Panic("cannot build vehicle:\n%v", err)
	}
	mis, err := sim.GetMission(veh)
	if err != nil {
		chk.Panic("cannot build mission:\n%v", err)
	}

	// solve mission
	res, err := mis.Solve(sim.GetStart(veh), verbose)
	if err != nil {
		if res != nil && len(res.Tags) > 0 && saveRes {
			out.SaveResults(sim.DirOut, sim.Key+"-partial", res)
			io.PfRed("partial results of %d segment(s) saved to %s\n", len(res.Tags), sim.DirOut)
		}
		chk.Panic("mission failed:\n%v", err)
	}

	// save results
	if saveRes {
		if err = out.SaveResults(sim.DirOut, sim.Key, res); err != nil {
			chk.Panic("cannot save results:\n%v", err)
		}
		if verbose {
			io.Pf("\nresults saved to %s/%s.json\n", sim.DirOut, sim.Key)
		}
	}
}
