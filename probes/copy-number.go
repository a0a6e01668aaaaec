// elBreak: a tool for computing breakpoint frequencies from probe data.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elbreak/blob/master/LICENSE.txt>.

package probes

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/floats"

	"github.com/exascience/elbreak/runs"
)

// Mode selects the kind of structural variant that is called.
type Mode int

const (
	// Deletion calls probes with a lowered copy number.
	Deletion Mode = iota
	// Duplication calls probes with a raised copy number.
	Duplication
)

// Modes lists all analysis modes in report order.
var Modes = []Mode{Deletion, Duplication}

func (mode Mode) String() string {
	switch mode {
	case Deletion:
		return "deletion"
	case Duplication:
		return "duplication"
	default:
		return fmt.Sprintf("Mode(%d)", int(mode))
	}
}

// ParseMode parses "deletion" or "duplication", ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "deletion", "del":
		return Deletion, nil
	case "duplication", "dup":
		return Duplication, nil
	default:
		return 0, fmt.Errorf("invalid mode %v", s)
	}
}

// Thresholds is an open copy-number interval. A probe is called when
// Min < CN < Max.
type Thresholds struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Placeholder calibrations for the simulated TAMU region data.
var (
	DefaultDeletionThresholds    = Thresholds{Min: 0, Max: 1.05}
	DefaultDuplicationThresholds = Thresholds{Min: 2.95, Max: 22.6}
)

// Called reports whether cn lies strictly between Min and Max. NaN is
// never called.
func (th Thresholds) Called(cn float64) bool {
	return cn > th.Min && cn < th.Max
}

// CopyNumbers estimates the copy number of each probe as
// gene/control*2, assuming the control probes have copy number 2.
// gene and control must have the same length.
func CopyNumbers(gene, control []float64) []float64 {
	cn := make([]float64, len(gene))
	floats.DivTo(cn, gene, control)
	floats.Scale(2, cn)
	return cn
}

// Calls returns one call per copy number.
func (th Thresholds) Calls(cn []float64) runs.CallSequence {
	set := bitset.New(uint(len(cn)))
	for i, value := range cn {
		if th.Called(value) {
			set.Set(uint(i))
		}
	}
	return runs.FromBitSet(set)
}

// Calls computes the call sequence of each sample in the table,
// keyed by sample identifier.
func (table *Table) Calls(th Thresholds) map[string]runs.CallSequence {
	if len(table.Samples) == 0 {
		return make(map[string]runs.CallSequence)
	}
	sequences := make([]runs.CallSequence, len(table.Samples))
	parallel.Range(0, len(table.Samples), 0, func(low, high int) {
		for i := low; i < high; i++ {
			sample := &table.Samples[i]
			sequences[i] = th.Calls(CopyNumbers(sample.Gene, sample.Control))
		}
	})
	result := make(map[string]runs.CallSequence, len(sequences))
	for i, seq := range sequences {
		result[table.Samples[i].ID] = seq
	}
	return result
}
