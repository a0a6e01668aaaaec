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

// Package probes loads microarray probe-intensity tables and turns
// them into per-sample copy-number calls.
package probes

// Layout describes where the probe table stores its data.
type Layout struct {
	// SampleColumn names the column with sample identifiers. If empty,
	// the 0-based row number identifies a sample.
	SampleColumn string `yaml:"sample-column"`
	// GroupColumn names the column with the group (e.g. ethnicity)
	// of each sample.
	GroupColumn string `yaml:"group-column"`
	// GenePrefix is the column prefix of the probes in the scanned
	// region.
	GenePrefix string `yaml:"gene-prefix"`
	// ControlPrefix is the column prefix of the control probes. Each
	// gene probe column is paired with the control probe column with
	// the same suffix.
	ControlPrefix string `yaml:"control-prefix"`
}

// DefaultLayout returns the layout of the simulated TAMU region data.
func DefaultLayout() Layout {
	return Layout{
		GroupColumn:   "ethnicity",
		GenePrefix:    "TAMU_probe_",
		ControlPrefix: "non_TAMU_probe_",
	}
}

// A Sample holds the probe intensities of one sample. Gene[i] and
// Control[i] belong to the same probe.
type Sample struct {
	ID      string
	Group   string
	Gene    []float64
	Control []float64
}

// A Table holds the samples of a probe-intensity file.
type Table struct {
	// Probes lists the gene probe names in probe index order.
	Probes  []string
	Samples []Sample
}

// Groups maps each sample that belongs to a group onto that group.
func (table *Table) Groups() map[string]string {
	groups := make(map[string]string, len(table.Samples))
	for _, sample := range table.Samples {
		if sample.Group != "" {
			groups[sample.ID] = sample.Group
		}
	}
	return groups
}

// Populations counts the samples of each group.
func (table *Table) Populations() map[string]int {
	populations := make(map[string]int)
	for _, sample := range table.Samples {
		if sample.Group != "" {
			populations[sample.Group]++
		}
	}
	return populations
}
