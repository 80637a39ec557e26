// Copyright 2021 The Goamp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Pack holds the parameter set of one named battery pack
type Pack struct {
	Name  string     `json:"name"`  // name of pack
	Model string     `json:"model"` // name of model this pack belongs to; e.g. "linimnco"
	Desc  string     `json:"desc"`  // description of pack
	Prms  dbf.Params `json:"prms"`  // prms holds all model parameters for this pack
}

// BatDb holds a database of battery packs read from a (.bat) JSON file
type BatDb struct {
	Packs []*Pack `json:"packs"` // all packs
}

// ReadBat reads a battery pack database
func ReadBat(dir, fn string) (*BatDb, error) {
	b := io.ReadFile(filepath.Join(dir, fn))
	db := new(BatDb)
	if err := json.Unmarshal(b, db); err != nil {
		return nil, chk.Err("cannot unmarshal battery database %q: %v", fn, err)
	}
	return db, nil
}

// Get returns the parameters of a named pack, or nil
func (o *BatDb) Get(name string) dbf.Params {
	for _, p := range o.Packs {
		if p.Name == name {
			return p.Prms
		}
	}
	return nil
}

// String prints the database as an indented JSON string
func (o *BatDb) String() string {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return "cannot print battery database"
	}
	return string(b)
}
