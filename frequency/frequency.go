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

// Package frequency aggregates per-sample runs into breakpoint
// frequencies per sample group, and prints them as reports.
package frequency

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/exascience/elbreak/runs"
)

// ErrUnknownGroup is returned when runs are found for a group without
// a known population.
var ErrUnknownGroup = errors.New("unknown group")

// A Row is the frequency of one breakpoint region within one group.
type Row struct {
	Group       string
	First, Last int
	// Count is the number of samples of the group with a run from
	// First to Last.
	Count      int
	Population int
	// Percent is Count relative to Population, times 100.
	Percent float64
}

// Region returns the breakpoint region of the row as "first-last".
func (row Row) Region() string {
	return runs.Run{First: row.First, Last: row.Last}.Region()
}

type regionKey struct {
	group       string
	first, last int
}

// Tally counts, for each group, the samples that have a run with the
// same breakpoints. groups maps samples onto groups; samples without a
// group are skipped. populations maps each group onto its number of
// samples.
//
// The result is sorted by group, then First, then Last. All groups
// without a population are named in the ErrUnknownGroup error.
func Tally(sampleRuns map[string][]runs.Run, groups map[string]string, populations map[string]int) ([]Row, error) {
	counts := make(map[regionKey]int)
	for sample, found := range sampleRuns {
		group, ok := groups[sample]
		if !ok || group == "" {
			continue
		}
		for _, run := range found {
			counts[regionKey{group: group, first: run.First, last: run.Last}]++
		}
	}
	rows := make([]Row, 0, len(counts))
	for key, count := range counts {
		rows = append(rows, Row{
			Group: key.group,
			First: key.first,
			Last:  key.last,
			Count: count,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		switch {
		case rows[i].Group != rows[j].Group:
			return rows[i].Group < rows[j].Group
		case rows[i].First != rows[j].First:
			return rows[i].First < rows[j].First
		default:
			return rows[i].Last < rows[j].Last
		}
	})
	var unknown []string
	for i := range rows {
		row := &rows[i]
		population := populations[row.Group]
		if population <= 0 {
			if len(unknown) == 0 || unknown[len(unknown)-1] != row.Group {
				unknown = append(unknown, row.Group)
			}
			continue
		}
		row.Population = population
		row.Percent = float64(row.Count) / float64(population) * 100
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: no population for %v", ErrUnknownGroup, strings.Join(unknown, ", "))
	}
	return rows, nil
}

// Ungrouped returns the sorted samples in sampleRuns that have no
// group.
func Ungrouped(sampleRuns map[string][]runs.Run, groups map[string]string) []string {
	var result []string
	for sample := range sampleRuns {
		if groups[sample] == "" {
			result = append(result, sample)
		}
	}
	sort.Strings(result)
	return result
}
