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

// Package analysis runs the breakpoint frequency analysis on a probe
// table: copy-number calls, run extraction and tallying per group.
package analysis

import (
	"context"

	"github.com/exascience/elbreak/config"
	"github.com/exascience/elbreak/frequency"
	"github.com/exascience/elbreak/probes"
	"github.com/exascience/elbreak/runs"
)

// Result is the outcome of the analysis of one mode.
type Result struct {
	Mode       probes.Mode
	Thresholds probes.Thresholds
	Batch      runs.BatchResult
	Rows       []frequency.Row
}

// Section returns the report section for the result.
func (result Result) Section() frequency.Section {
	return frequency.Section{
		Mode:       result.Mode,
		Thresholds: result.Thresholds,
		Rows:       result.Rows,
		Failures:   result.Batch.Failures,
	}
}

// ExtractRuns calls the probes of each sample for the given mode and
// extracts their runs.
func ExtractRuns(ctx context.Context, table *probes.Table, cfg config.Config, mode probes.Mode) (runs.BatchResult, error) {
	return runs.ExtractRunsBatch(ctx, table.Calls(cfg.Thresholds(mode)), cfg.MinRunLength)
}

// TallyRuns computes the breakpoint frequencies of one mode from
// per-sample runs, using the groups and populations of table.
func TallyRuns(table *probes.Table, cfg config.Config, mode probes.Mode, sampleRuns map[string][]runs.Run) (Result, error) {
	rows, err := frequency.Tally(sampleRuns, table.Groups(), cfg.MergePopulations(table.Populations()))
	if err != nil {
		return Result{}, err
	}
	return Result{
		Mode:       mode,
		Thresholds: cfg.Thresholds(mode),
		Batch:      runs.BatchResult{Runs: sampleRuns},
		Rows:       rows,
	}, nil
}

// Analyze computes the breakpoint frequencies of each mode. Samples
// that fail run extraction are listed in the Batch of the result and
// are otherwise ignored.
func Analyze(ctx context.Context, table *probes.Table, cfg config.Config, modes ...probes.Mode) ([]Result, error) {
	results := make([]Result, 0, len(modes))
	for _, mode := range modes {
		batch, err := ExtractRuns(ctx, table, cfg, mode)
		if err != nil {
			return nil, err
		}
		result, err := TallyRuns(table, cfg, mode, batch.Runs)
		if err != nil {
			return nil, err
		}
		result.Batch = batch
		results = append(results, result)
	}
	return results, nil
}
