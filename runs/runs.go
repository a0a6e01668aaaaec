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

// Package runs detects runs of consecutive called probes in per-sample
// call sequences. A run marks the estimated breakpoints of a deletion or
// duplication in one sample.
package runs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// DefaultMinLength is the minimum number of consecutive called probes
// that form a run, unless configured otherwise.
const DefaultMinLength = 4

// ErrInvalidInput is returned for empty call sequences and for minimum
// run lengths smaller than 1.
var ErrInvalidInput = errors.New("invalid input")

// Run is a maximal range of consecutive called probes. First and Last
// are both inclusive probe indices.
type Run struct {
	First, Last int
}

// Len returns the number of probes covered by the run.
func (run Run) Len() int {
	return run.Last - run.First + 1
}

// Region returns the breakpoint region of the run as "first-last".
func (run Run) Region() string {
	return fmt.Sprintf("%v-%v", run.First, run.Last)
}

// SortByFirst sorts a slice of Run by First position.
func SortByFirst(runs []Run) {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].First < runs[j].First
	})
}

// A CallSequence holds the per-probe calls of one sample for one
// analysis mode. Probe i is called when bit i is set. All call
// sequences of a mode share the same probe order.
type CallSequence struct {
	calls *bitset.BitSet
}

// NewCallSequence returns a CallSequence with one probe per entry in
// calls.
func NewCallSequence(calls []bool) CallSequence {
	set := bitset.New(uint(len(calls)))
	for i, call := range calls {
		if call {
			set.Set(uint(i))
		}
	}
	return CallSequence{calls: set}
}

// FromBitSet wraps a bitset in a CallSequence. The length of the
// sequence is set.Len(). The bitset must not be modified afterwards.
func FromBitSet(set *bitset.BitSet) CallSequence {
	return CallSequence{calls: set}
}

// Len returns the number of probes in the sequence.
func (seq CallSequence) Len() int {
	if seq.calls == nil {
		return 0
	}
	return int(seq.calls.Len())
}

// Called reports whether probe i is called.
func (seq CallSequence) Called(i int) bool {
	return i >= 0 && i < seq.Len() && seq.calls.Test(uint(i))
}

// ExtractRuns returns the runs of seq that span at least minLength
// probes, sorted by First. Blocks of called probes that are shorter
// than minLength are dropped.
//
// ExtractRuns fails with ErrInvalidInput if seq is empty or minLength
// is smaller than 1.
func ExtractRuns(seq CallSequence, minLength int) ([]Run, error) {
	if minLength < 1 {
		return nil, fmt.Errorf("%w: minimum run length %v is smaller than 1", ErrInvalidInput, minLength)
	}
	n := uint(seq.Len())
	if n == 0 {
		return nil, fmt.Errorf("%w: empty call sequence", ErrInvalidInput)
	}
	var result []Run
	for i := uint(0); i < n; {
		first, ok := seq.calls.NextSet(i)
		if !ok || first >= n {
			break
		}
		// end is the first uncalled probe after the block, or n
		end, ok := seq.calls.NextClear(first)
		if !ok || end > n {
			end = n
		}
		if int(end-first) >= minLength {
			result = append(result, Run{First: int(first), Last: int(end - 1)})
		}
		i = end
	}
	return result, nil
}
