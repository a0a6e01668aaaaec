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

package runs

import (
	"context"
	"fmt"
	"sort"

	"github.com/exascience/pargo/parallel"
)

// SampleFailure records why no runs could be extracted for a sample.
type SampleFailure struct {
	Sample string
	Err    error
}

func (f SampleFailure) Error() string {
	return fmt.Sprintf("sample %v: %v", f.Sample, f.Err)
}

func (f SampleFailure) Unwrap() error {
	return f.Err
}

// PartialBatchFailure is reported by BatchResult.Err when at least one
// sample of a batch failed. The runs of all other samples are still
// valid.
type PartialBatchFailure struct {
	Failures []SampleFailure
}

func (e *PartialBatchFailure) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("run extraction failed for 1 sample: %v", e.Failures[0])
	}
	return fmt.Sprintf("run extraction failed for %v samples, first failure: %v", len(e.Failures), e.Failures[0])
}

// BatchResult is the outcome of ExtractRunsBatch.
type BatchResult struct {
	// Runs maps each successfully processed sample onto its runs.
	Runs map[string][]Run
	// Failures lists the samples that could not be processed, sorted
	// by sample.
	Failures []SampleFailure
}

// Err returns a *PartialBatchFailure if any sample failed, nil
// otherwise.
func (r BatchResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return &PartialBatchFailure{Failures: r.Failures}
}

type partialBatch struct {
	runs      map[string][]Run
	failures  []SampleFailure
	cancelled bool
}

// ExtractRunsBatch calls ExtractRuns for each sample in parallel.
//
// A failing sample is recorded in the Failures of the result and does
// not affect any other sample. If ctx is cancelled, the samples that
// were not yet processed are recorded as failures with the context
// error, which is then also returned.
func ExtractRunsBatch(ctx context.Context, sequences map[string]CallSequence, minLength int) (BatchResult, error) {
	samples := make([]string, 0, len(sequences))
	for sample := range sequences {
		samples = append(samples, sample)
	}
	if len(samples) == 0 {
		return BatchResult{Runs: make(map[string][]Run)}, ctx.Err()
	}
	sort.Strings(samples)
	batch := parallel.RangeReduce(0, len(samples), 0, func(low, high int) interface{} {
		local := partialBatch{runs: make(map[string][]Run, high-low)}
		for i := low; i < high; i++ {
			sample := samples[i]
			if err := ctx.Err(); err != nil {
				local.failures = append(local.failures, SampleFailure{Sample: sample, Err: err})
				local.cancelled = true
				continue
			}
			runs, err := ExtractRuns(sequences[sample], minLength)
			if err != nil {
				local.failures = append(local.failures, SampleFailure{Sample: sample, Err: err})
				continue
			}
			local.runs[sample] = runs
		}
		return local
	}, func(x, y interface{}) interface{} {
		left, right := x.(partialBatch), y.(partialBatch)
		for sample, runs := range right.runs {
			left.runs[sample] = runs
		}
		left.failures = append(left.failures, right.failures...)
		left.cancelled = left.cancelled || right.cancelled
		return left
	}).(partialBatch)
	sort.Slice(batch.failures, func(i, j int) bool {
		return batch.failures[i].Sample < batch.failures[j].Sample
	})
	result := BatchResult{Runs: batch.runs, Failures: batch.failures}
	if batch.cancelled {
		return result, ctx.Err()
	}
	return result, nil
}
