// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements mission output handling for analyses and plotting
package out

import (
	"encoding/json"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/aeromech/goamp/mission"
)

// Global variables
var (
	Results *mission.Results // results set by Start or LoadResults
)

// Start prepares the output handler for a solved mission
func Start(res *mission.Results) {
	Results = res
	Splots = nil
	Csplot = nil
}

// SaveResults writes results as an indented JSON file into dirout
func SaveResults(dirout, fnkey string, res *mission.Results) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return chk.Err("cannot encode results: %v", err)
	}
	io.WriteStringToFileD(dirout, fnkey+".json", string(b))
	return nil
}

// LoadResults reads results from a JSON file and calls Start
func LoadResults(filename string) error {
	b := io.ReadFile(filename)
	res := new(mission.Results)
	if err := json.Unmarshal(b, res); err != nil {
		return chk.Err("cannot decode results file %q: %v", filename, err)
	}
	Start(res)
	return nil
}

// GetRes returns one series concatenated over all segments in mission
// order. See SeriesKeys for the available keys.
func GetRes(key string) (vals []float64) {
	if Results == nil {
		chk.Panic("output handler must be set up with Start or LoadResults first")
	}
	getter, ok := getters[key]
	if !ok {
		chk.Panic("cannot get series with key %q; available keys: %v", key, SeriesKeys())
	}
	for _, tag := range Results.Tags {
		vals = append(vals, getter(Results.Segments[tag].Conds)...)
	}
	return
}

// GetSegRes returns one series of a single segment
func GetSegRes(key, tag string) (vals []float64) {
	if Results == nil {
		chk.Panic("output handler must be set up with Start or LoadResults first")
	}
	getter, ok := getters[key]
	if !ok {
		chk.Panic("cannot get series with key %q; available keys: %v", key, SeriesKeys())
	}
	seg, ok := Results.Segments[tag]
	if !ok {
		chk.Panic("cannot find segment %q; available tags: %v", tag, Results.Tags)
	}
	return getter(seg.Conds)
}

// SeriesKeys returns the sorted list of available series keys
func SeriesKeys() (keys []string) {
	for key := range getters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return
}

// getters maps series keys to extraction functions
var getters = map[string]func(c *mission.Conditions) []float64{
	"time":       func(c *mission.Conditions) []float64 { return c.Time },
	"altitude":   func(c *mission.Conditions) []float64 { return c.Altitude },
	"speed":      func(c *mission.Conditions) []float64 { return c.Speed },
	"climbrate":  func(c *mission.Conditions) []float64 { return c.ClimbRate },
	"pitch":      func(c *mission.Conditions) []float64 { return c.Pitch },
	"density":    func(c *mission.Conditions) []float64 { return c.Density },
	"cl":         func(c *mission.Conditions) []float64 { return c.LiftCoefficient },
	"cd":         func(c *mission.Conditions) []float64 { return c.DragCoefficient },
	"rotorrpm":   func(c *mission.Conditions) []float64 { return c.RotorRPM },
	"rotorT":     func(c *mission.Conditions) []float64 { return c.RotorThrust },
	"proprpm":    func(c *mission.Conditions) []float64 { return c.PropRPM },
	"propT":      func(c *mission.Conditions) []float64 { return c.PropThrust },
	"power":      func(c *mission.Conditions) []float64 { return c.ElecPower },
	"throttle":   func(c *mission.Conditions) []float64 { return c.Throttle },
	"throttlel":  func(c *mission.Conditions) []float64 { return c.ThrottleLift },
	"energy":     func(c *mission.Conditions) []float64 { return c.Battery.Energy },
	"soc":        func(c *mission.Conditions) []float64 { return c.Battery.SOC },
	"dod":        func(c *mission.Conditions) []float64 { return c.Battery.DOD },
	"voltage":    func(c *mission.Conditions) []float64 { return c.Battery.VoltageUL },
	"voltageoc":  func(c *mission.Conditions) []float64 { return c.Battery.VoltageOC },
	"current":    func(c *mission.Conditions) []float64 { return c.Battery.Current },
	"celltemp":   func(c *mission.Conditions) []float64 { return c.Battery.CellTemp },
	"heatgen":    func(c *mission.Conditions) []float64 { return c.Battery.HeatGenerated },
	"resistance": func(c *mission.Conditions) []float64 { return c.Battery.InternalResist },
}
