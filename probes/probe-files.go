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
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func isMissing(label string) bool {
	return label == "" || label == "NaN"
}

func numericColumn(df dataframe.DataFrame, name string) ([]float64, error) {
	col := df.Col(name)
	if err := col.Err; err != nil {
		return nil, err
	}
	switch col.Type() {
	case series.Float, series.Int:
		return col.Float(), nil
	default:
		return nil, fmt.Errorf("probe column %v is not numeric", name)
	}
}

// LoadTable reads a probe-intensity table in CSV format.
//
// Gene probe columns are taken in column order. The control probe
// column with the same suffix must be present for each of them.
// Sample identifiers must be unique.
func LoadTable(r io.Reader, layout Layout) (*Table, error) {
	if layout.GroupColumn == "" || layout.GenePrefix == "" || layout.ControlPrefix == "" {
		return nil, fmt.Errorf("incomplete probe table layout %+v", layout)
	}
	types := map[string]series.Type{layout.GroupColumn: series.String}
	if layout.SampleColumn != "" {
		types[layout.SampleColumn] = series.String
	}
	df := dataframe.ReadCSV(r, dataframe.HasHeader(true), dataframe.WithTypes(types))
	if df.Err != nil {
		return nil, df.Err
	}

	names := make(map[string]bool)
	for _, name := range df.Names() {
		names[name] = true
	}
	if !names[layout.GroupColumn] {
		return nil, fmt.Errorf("missing group column %v", layout.GroupColumn)
	}
	if layout.SampleColumn != "" && !names[layout.SampleColumn] {
		return nil, fmt.Errorf("missing sample column %v", layout.SampleColumn)
	}

	var geneColumns, controlColumns []string
	for _, name := range df.Names() {
		if !strings.HasPrefix(name, layout.GenePrefix) {
			continue
		}
		control := layout.ControlPrefix + name[len(layout.GenePrefix):]
		if !names[control] {
			return nil, fmt.Errorf("missing control probe column %v for probe column %v", control, name)
		}
		geneColumns = append(geneColumns, name)
		controlColumns = append(controlColumns, control)
	}
	if len(geneColumns) == 0 {
		return nil, fmt.Errorf("no probe columns with prefix %v", layout.GenePrefix)
	}
	nrow := df.Nrow()
	if nrow == 0 {
		return nil, fmt.Errorf("probe table has no samples")
	}

	table := &Table{Probes: geneColumns, Samples: make([]Sample, nrow)}
	groups := df.Col(layout.GroupColumn).Records()
	var ids []string
	if layout.SampleColumn != "" {
		ids = df.Col(layout.SampleColumn).Records()
	}
	seen := make(map[string]int, nrow)
	for i := range table.Samples {
		sample := &table.Samples[i]
		if ids != nil {
			if isMissing(ids[i]) {
				return nil, fmt.Errorf("missing sample identifier in row %v", i)
			}
			if row, ok := seen[ids[i]]; ok {
				return nil, fmt.Errorf("sample identifier %v in row %v already used in row %v", ids[i], i, row)
			}
			seen[ids[i]] = i
			sample.ID = ids[i]
		} else {
			sample.ID = strconv.Itoa(i)
		}
		if !isMissing(groups[i]) {
			sample.Group = groups[i]
		}
		sample.Gene = make([]float64, len(geneColumns))
		sample.Control = make([]float64, len(geneColumns))
	}
	for probe := range geneColumns {
		gene, err := numericColumn(df, geneColumns[probe])
		if err != nil {
			return nil, err
		}
		control, err := numericColumn(df, controlColumns[probe])
		if err != nil {
			return nil, err
		}
		for i := range table.Samples {
			table.Samples[i].Gene[probe] = gene[i]
			table.Samples[i].Control[probe] = control[i]
		}
	}
	return table, nil
}

// LoadTableFile reads a probe-intensity table from a CSV file.
func LoadTableFile(filename string, layout Layout) (table *Table, err error) {
	pathname, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	in, err := os.Open(pathname)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := in.Close(); nerr != nil {
			if err == nil {
				err = nerr
			}
		}
	}()
	table, err = LoadTable(in, layout)
	if err != nil {
		return nil, fmt.Errorf("%v, while loading probe table %v", err, filename)
	}
	return table, nil
}
